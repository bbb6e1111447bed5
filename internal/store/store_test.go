package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/units"
)

func sampleInputs() dosage.Inputs {
	return dosage.Inputs{
		Area:            2500,
		AreaUnit:        units.SquareFeet,
		WeedSize:        dosage.Large,
		ApplicationRate: 3.0,
		ApplicationUnit: units.FluidOunces,
		UnitSystem:      units.Imperial,
	}
}

func TestFileStoreSaveLoad(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	in := sampleInputs()
	require.NoError(t, s.Save(in))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, loaded)
}

func TestFileStoreLoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreExpiry(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), 10*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, s.Save(sampleInputs()))
	time.Sleep(30 * time.Millisecond)

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrExpired)
}

func TestFileStoreSaveReplaces(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	first := sampleInputs()
	require.NoError(t, s.Save(first))

	second := sampleInputs()
	second.Area = 9000
	require.NoError(t, s.Save(second))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.InDelta(t, 9000.0, loaded.Area, 1e-9)
}

func TestFileStoreClear(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	require.NoError(t, s.Save(sampleInputs()))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear()) // Idempotent.

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRequiresDirectory(t *testing.T) {
	_, err := NewFileStore("", 0)
	assert.Error(t, err)
}

func TestMergeCallerValuesWin(t *testing.T) {
	stored := sampleInputs()

	area := 500.0
	weedSize := dosage.Small

	merged := Merge(stored, Overrides{Area: &area, WeedSize: &weedSize})

	assert.InDelta(t, 500.0, merged.Area, 1e-9)
	assert.Equal(t, dosage.Small, merged.WeedSize)
	// Unsupplied fields keep stored values.
	assert.InDelta(t, stored.ApplicationRate, merged.ApplicationRate, 1e-9)
	assert.Equal(t, stored.AreaUnit, merged.AreaUnit)
	assert.Equal(t, stored.UnitSystem, merged.UnitSystem)
}

func TestMergeNoOverrides(t *testing.T) {
	stored := sampleInputs()
	assert.Equal(t, stored, Merge(stored, Overrides{}))
}
