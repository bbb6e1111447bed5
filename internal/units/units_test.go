package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertArea(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    AreaUnit
		to      AreaUnit
		want    float64
		wantErr error
	}{
		{
			name:  "square feet to square meters",
			value: 1000,
			from:  SquareFeet,
			to:    SquareMeters,
			want:  92.90304,
		},
		{
			name:  "square meters to square feet",
			value: 100,
			from:  SquareMeters,
			to:    SquareFeet,
			want:  1076.3910416709722,
		},
		{
			name:  "acres to square feet",
			value: 1,
			from:  Acres,
			to:    SquareFeet,
			want:  43560,
		},
		{
			name:  "hectares to acres",
			value: 1,
			from:  Hectares,
			to:    Acres,
			want:  2.4710538146716534,
		},
		{
			name:  "identity square feet",
			value: 123.45,
			from:  SquareFeet,
			to:    SquareFeet,
			want:  123.45,
		},
		{
			name:  "identity zero",
			value: 0,
			from:  Hectares,
			to:    Hectares,
			want:  0,
		},
		{
			name:    "unrecognized source unit",
			value:   1,
			from:    AreaUnit(99),
			to:      SquareFeet,
			wantErr: ErrUnsupportedConversion,
		},
		{
			name:    "unrecognized target unit",
			value:   1,
			from:    SquareFeet,
			to:      AreaUnit(99),
			wantErr: ErrUnsupportedConversion,
		},
		{
			name:    "non-finite value",
			value:   math.NaN(),
			from:    SquareFeet,
			to:      SquareMeters,
			wantErr: ErrNonFiniteValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertArea(tt.value, tt.from, tt.to)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.from == tt.to {
				// Identity must be exact, not approximate.
				assert.Equal(t, tt.want, got)
				return
			}
			assert.InDelta(t, tt.want, got, math.Abs(tt.want)*1e-9)
		})
	}
}

func TestConvertAreaRoundTrip(t *testing.T) {
	pairs := []struct {
		from AreaUnit
		to   AreaUnit
	}{
		{SquareFeet, SquareMeters},
		{SquareFeet, Acres},
		{SquareFeet, Hectares},
		{SquareMeters, Hectares},
		{Acres, Hectares},
	}
	values := []float64{0.001, 1, 92.903, 1000, 43560, 1e6}

	for _, pair := range pairs {
		for _, v := range values {
			there, err := ConvertArea(v, pair.from, pair.to)
			require.NoError(t, err)
			back, err := ConvertArea(there, pair.to, pair.from)
			require.NoError(t, err)
			assert.InDelta(t, v, back, v*1e-9,
				"round trip %s -> %s -> %s for %v", pair.from, pair.to, pair.from, v)
		}
	}
}

func TestConvertVolume(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    VolumeUnit
		to      VolumeUnit
		want    float64
		wantErr error
	}{
		{
			name:  "gallons to fluid ounces",
			value: 2,
			from:  Gallons,
			to:    FluidOunces,
			want:  256,
		},
		{
			name:  "fluid ounces to milliliters",
			value: 1,
			from:  FluidOunces,
			to:    Milliliters,
			want:  29.5735295625,
		},
		{
			name:  "liters to milliliters",
			value: 1.5,
			from:  Liters,
			to:    Milliliters,
			want:  1500,
		},
		{
			name:  "identity gallons",
			value: 3.7,
			from:  Gallons,
			to:    Gallons,
			want:  3.7,
		},
		{
			name:    "unrecognized unit",
			value:   1,
			from:    VolumeUnit(42),
			to:      Liters,
			wantErr: ErrUnsupportedConversion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertVolume(tt.value, tt.from, tt.to)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, math.Abs(tt.want)*1e-9)
		})
	}
}

func TestConvertVolumeRoundTrip(t *testing.T) {
	values := []float64{0.5, 2.5, 128, 1000}
	pairs := []struct {
		from VolumeUnit
		to   VolumeUnit
	}{
		{FluidOunces, Gallons},
		{FluidOunces, Milliliters},
		{FluidOunces, Liters},
		{Gallons, Liters},
	}

	for _, pair := range pairs {
		for _, v := range values {
			there, err := ConvertVolume(v, pair.from, pair.to)
			require.NoError(t, err)
			back, err := ConvertVolume(there, pair.to, pair.from)
			require.NoError(t, err)
			assert.InDelta(t, v, back, v*1e-9)
		}
	}
}

func TestToStandard(t *testing.T) {
	area, err := ToStandardArea(1, Acres)
	require.NoError(t, err)
	assert.InDelta(t, 43560.0, area, 1e-9)

	volume, err := ToStandardVolume(1, Gallons)
	require.NoError(t, err)
	assert.InDelta(t, 128.0, volume, 1e-9)
}

func TestValidateConversion(t *testing.T) {
	assert.True(t, ValidateAreaConversion(100, SquareFeet, SquareMeters))
	assert.True(t, ValidateAreaConversion(0, Acres, Hectares))
	assert.False(t, ValidateAreaConversion(-1, SquareFeet, SquareMeters))
	assert.False(t, ValidateAreaConversion(math.Inf(1), SquareFeet, SquareMeters))
	assert.False(t, ValidateAreaConversion(100, AreaUnit(99), SquareMeters))

	assert.True(t, ValidateVolumeConversion(2.5, Gallons, Liters))
	assert.False(t, ValidateVolumeConversion(math.NaN(), Gallons, Liters))
	assert.False(t, ValidateVolumeConversion(1, FluidOunces, VolumeUnit(42)))
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		tag     string
		want    AreaUnit
		wantErr bool
	}{
		{tag: "square-feet", want: SquareFeet},
		{tag: "sqft", want: SquareFeet},
		{tag: "square-meters", want: SquareMeters},
		{tag: "acres", want: Acres},
		{tag: "ha", want: Hectares},
		{tag: "furlongs", wantErr: true},
		{tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseAreaUnit(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedConversion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	vu, err := ParseVolumeUnit("gal")
	require.NoError(t, err)
	assert.Equal(t, Gallons, vu)

	_, err = ParseVolumeUnit("cups")
	assert.ErrorIs(t, err, ErrUnsupportedConversion)

	sys, err := ParseSystem("metric")
	require.NoError(t, err)
	assert.Equal(t, Metric, sys)

	_, err = ParseSystem("nautical")
	assert.Error(t, err)
}

func TestCanonicalUnits(t *testing.T) {
	assert.Equal(t, SquareFeet, CanonicalAreaUnit(Imperial))
	assert.Equal(t, SquareMeters, CanonicalAreaUnit(Metric))
	assert.Equal(t, FluidOunces, CanonicalVolumeUnit(Imperial))
	assert.Equal(t, Milliliters, CanonicalVolumeUnit(Metric))
}
