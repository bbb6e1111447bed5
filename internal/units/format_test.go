package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{name: "half up at 1 place", value: 1.25, places: 1, want: 1.3},
		{name: "half up at 2 places", value: 2.375, places: 2, want: 2.38},
		{name: "rounds down below half", value: 2.344, places: 2, want: 2.34},
		{name: "rounds up above half", value: 2.346, places: 2, want: 2.35},
		{name: "zero places half up", value: 2.5, places: 0, want: 3},
		{name: "already exact", value: 10, places: 2, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round(tt.value, tt.places), 1e-9)
		})
	}

	assert.InDelta(t, 92.9, Round2(92.90304), 1e-9)
}

func TestFormatArea(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  AreaUnit
		want  string
	}{
		{name: "square feet get 1 decimal", value: 1000, unit: SquareFeet, want: "1,000.0 sq ft"},
		{name: "acres get 2 decimals", value: 2.5, unit: Acres, want: "2.50 acres"},
		{name: "hectares get 2 decimals", value: 1.2345, unit: Hectares, want: "1.23 ha"},
		{name: "values under 1 get 3 decimals", value: 0.4047, unit: Hectares, want: "0.405 ha"},
		{name: "square meters get 1 decimal", value: 92.90304, unit: SquareMeters, want: "92.9 sq m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatArea(tt.value, tt.unit))
		})
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  VolumeUnit
		want  string
	}{
		{name: "fluid ounces get 1 decimal", value: 2.5, unit: FluidOunces, want: "2.5 fl oz"},
		{name: "milliliters get 1 decimal", value: 1500, unit: Milliliters, want: "1,500.0 ml"},
		{name: "gallons get 1 decimal", value: 2, unit: Gallons, want: "2.0 gal"},
		{name: "sub-unit values get 3 decimals", value: 0.125, unit: Gallons, want: "0.125 gal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVolume(tt.value, tt.unit))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "43,560.0", FormatNumber(43560, 1))
	assert.Equal(t, "12.99", FormatNumber(12.99, 2))
	assert.Equal(t, "1,000,000", FormatNumber(1000000, 0))
}

func TestOptimalAreaUnit(t *testing.T) {
	tests := []struct {
		name      string
		valueSqFt float64
		system    System
		want      AreaUnit
	}{
		{name: "small imperial area stays square feet", valueSqFt: 1000, system: Imperial, want: SquareFeet},
		{name: "one acre switches to acres", valueSqFt: 43560, system: Imperial, want: Acres},
		{name: "small metric area is square meters", valueSqFt: 1000, system: Metric, want: SquareMeters},
		{name: "one hectare switches to hectares", valueSqFt: 107639.11, system: Metric, want: Hectares},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptimalAreaUnit(tt.valueSqFt, tt.system))
		})
	}
}

func TestOptimalVolumeUnit(t *testing.T) {
	assert.Equal(t, FluidOunces, OptimalVolumeUnit(2.5, Imperial))
	assert.Equal(t, Gallons, OptimalVolumeUnit(256, Imperial))
	assert.Equal(t, Milliliters, OptimalVolumeUnit(2.5, Metric))
	assert.Equal(t, Liters, OptimalVolumeUnit(256, Metric))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "19.99 USD", FormatCurrency(19.99, "USD"))
	assert.Equal(t, "1,234.50 USD", FormatCurrency(1234.499, "USD"))
}
