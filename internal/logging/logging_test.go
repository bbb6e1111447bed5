package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel zerolog.Level
	}{
		{name: "debug level", cfg: Config{Level: "debug", Format: "json", Output: "stderr"}, wantLevel: zerolog.DebugLevel},
		{name: "warn level", cfg: Config{Level: "warn", Format: "json", Output: "stderr"}, wantLevel: zerolog.WarnLevel},
		{name: "unknown level falls back to info", cfg: Config{Level: "chatty", Format: "json", Output: "stderr"}, wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.cfg)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
		})
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := ComponentLogger(base, "estimator")
	logger.Info().Msg("ready")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "estimator", event["component"])
	assert.Equal(t, "ready", event["message"])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithContext(context.Background(), base)
	FromContext(ctx).Info().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}
