package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmoss/sprout/internal/config"
	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/estimator"
	"github.com/kmoss/sprout/internal/realtime"
	"github.com/kmoss/sprout/internal/units"
)

func keyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func TestEstimatorModelNavigation(t *testing.T) {
	t.Run("tab cycles forward through all fields", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())

		for want := 1; want < fieldCount; want++ {
			m.Update(keyMsg(tea.KeyTab))
			assert.Equal(t, want, m.focused)
		}

		// Wraps back to the first field.
		m.Update(keyMsg(tea.KeyTab))
		assert.Equal(t, fieldArea, m.focused)
	})

	t.Run("shift+tab wraps backward", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())

		m.Update(keyMsg(tea.KeyShiftTab))
		assert.Equal(t, fieldCount-1, m.focused)
	})

	t.Run("esc quits", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())

		_, cmd := m.Update(keyMsg(tea.KeyEsc))
		require.NotNil(t, cmd)
		assert.Equal(t, FormStateQuitting, m.state)
		assert.Empty(t, m.View())
	})
}

func TestEstimatorModelSelectors(t *testing.T) {
	t.Run("right arrow cycles weed size", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())
		m.setFocus(fieldWeedSize)

		require.Equal(t, dosage.Medium, m.inputs.WeedSize)
		m.Update(keyMsg(tea.KeyRight))
		assert.Equal(t, dosage.Large, m.inputs.WeedSize)
	})

	t.Run("left arrow wraps at the start", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())
		m.setFocus(fieldAreaUnit)

		require.Equal(t, units.SquareFeet, m.inputs.AreaUnit)
		m.Update(keyMsg(tea.KeyLeft))
		assert.Equal(t, units.Hectares, m.inputs.AreaUnit)
	})

	t.Run("arrow keys on a text field do not cycle", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())
		m.setFocus(fieldArea)

		before := m.inputs
		m.Update(keyMsg(tea.KeyRight))
		assert.Equal(t, before, m.inputs)
	})
}

func TestEstimatorModelTyping(t *testing.T) {
	t.Run("typed area reaches the controller", func(t *testing.T) {
		engine := estimator.New(config.Default())
		done := make(chan realtime.Snapshot, 16)

		controller := realtime.New(context.Background(), engine,
			realtime.WithDebounce(time.Millisecond),
			realtime.WithOnChange(func(s realtime.Snapshot) {
				if s.State == realtime.Succeeded {
					done <- s
				}
			}))
		defer controller.Close()

		m := NewEstimatorModel(context.Background())
		m.SetController(controller)

		m.areaInput.SetValue("2500")
		m.submitInputs()

		// SetController already submitted the defaults, so skip any
		// snapshot for the old area until the typed value lands.
		deadline := time.After(time.Second)
		for {
			select {
			case snapshot := <-done:
				require.NotNil(t, snapshot.Result)
				if snapshot.Result.Inputs.Area == 2500.0 {
					return
				}
			case <-deadline:
				t.Fatal("no calculation for the typed area observed")
			}
		}
	})

	t.Run("unparseable area surfaces an inline error", func(t *testing.T) {
		m := NewEstimatorModel(context.Background())
		m.areaInput.SetValue("lots")
		m.submitInputs()

		assert.Equal(t, "area must be a number", m.inputError)
		assert.Contains(t, m.View(), "area must be a number")
	})
}

func TestEstimatorModelSnapshot(t *testing.T) {
	t.Run("snapshot message updates the view", func(t *testing.T) {
		engine := estimator.New(config.Default())
		result, err := engine.Calculate(context.Background(), dosage.DefaultInputs(units.Imperial))
		require.NoError(t, err)

		m := NewEstimatorModel(context.Background())
		m.Update(snapshotMsg{snapshot: realtime.Snapshot{
			State:  realtime.Succeeded,
			Result: result,
		}})

		view := m.View()
		assert.Contains(t, view, result.RequiredConcentrate.Formatted)
		assert.Contains(t, view, result.TotalMixture.Formatted)
	})

	t.Run("failure keeps the previous result visible", func(t *testing.T) {
		engine := estimator.New(config.Default())
		result, err := engine.Calculate(context.Background(), dosage.DefaultInputs(units.Imperial))
		require.NoError(t, err)

		m := NewEstimatorModel(context.Background())
		m.Update(snapshotMsg{snapshot: realtime.Snapshot{
			State:  realtime.Failed,
			Result: result,
			Err:    "invalid inputs: area must be a positive number",
		}})

		view := m.View()
		assert.Contains(t, view, "area must be a positive number")
		assert.Contains(t, view, result.RequiredConcentrate.Formatted)
	})
}
