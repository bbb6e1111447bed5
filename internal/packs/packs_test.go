package packs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmoss/sprout/internal/units"
)

func catalog() []Option {
	return []Option{
		{ID: "16oz", Volume: 16, VolumeUnit: units.FluidOunces, Price: 12.99},
		{ID: "32oz", Volume: 32, VolumeUnit: units.FluidOunces, Price: 19.99, IsPopular: true},
		{ID: "1gal", Volume: 1, VolumeUnit: units.Gallons, Price: 54.99},
	}
}

func TestRecommendQuantities(t *testing.T) {
	tests := []struct {
		name         string
		requiredFlOz float64
		pkg          string
		wantQuantity int
	}{
		{name: "exact fit", requiredFlOz: 32, pkg: "32oz", wantQuantity: 1},
		{name: "just over one package", requiredFlOz: 32.1, pkg: "32oz", wantQuantity: 2},
		{name: "small requirement still buys one", requiredFlOz: 2.5, pkg: "16oz", wantQuantity: 1},
		{name: "large requirement", requiredFlOz: 300, pkg: "1gal", wantQuantity: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := Recommend(tt.requiredFlOz, catalog())
			require.NoError(t, err)

			found := false
			for _, rec := range recs {
				if rec.PackageID == tt.pkg {
					found = true
					assert.Equal(t, tt.wantQuantity, rec.Quantity)
					assert.GreaterOrEqual(t, rec.DeliveredFlOz, tt.requiredFlOz)
				}
			}
			assert.True(t, found, "package %s missing from recommendations", tt.pkg)
		})
	}
}

func TestRecommendOptimalFlagUniqueness(t *testing.T) {
	requirements := []float64{1, 2.5, 16, 33, 100, 500}

	for _, required := range requirements {
		recs, err := Recommend(required, catalog())
		require.NoError(t, err)
		require.Len(t, recs, 3)

		optimalCount := 0
		for _, rec := range recs {
			if rec.IsOptimal {
				optimalCount++
			}
		}
		assert.Equal(t, 1, optimalCount, "required=%v", required)

		// The flagged entry is first and has the lowest efficiency.
		assert.True(t, recs[0].IsOptimal)
		for i := 1; i < len(recs); i++ {
			assert.LessOrEqual(t, recs[0].Efficiency, recs[i].Efficiency)
		}
	}
}

func TestRecommendSortedAscendingByEfficiency(t *testing.T) {
	recs, err := Recommend(100, catalog())
	require.NoError(t, err)

	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Efficiency, recs[i].Efficiency)
	}
}

func TestRecommendTieBreaking(t *testing.T) {
	// Identical price per ounce: efficiency ties, lower total cost wins,
	// then catalog order.
	options := []Option{
		{ID: "b-large", Volume: 32, VolumeUnit: units.FluidOunces, Price: 32},
		{ID: "a-small", Volume: 16, VolumeUnit: units.FluidOunces, Price: 16},
		{ID: "c-twin", Volume: 16, VolumeUnit: units.FluidOunces, Price: 16},
	}

	recs, err := Recommend(10, options)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// 16 oz packages cost 16 total vs 32 for the large; same efficiency.
	assert.Equal(t, "a-small", recs[0].PackageID)
	assert.Equal(t, "c-twin", recs[1].PackageID)
	assert.Equal(t, "b-large", recs[2].PackageID)
	assert.True(t, recs[0].IsOptimal)
	assert.False(t, recs[1].IsOptimal)
}

func TestRecommendEmptyCatalog(t *testing.T) {
	recs, err := Recommend(100, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, ok := Optimal(recs)
	assert.False(t, ok)
}

func TestRecommendQuantityMonotonicity(t *testing.T) {
	// Increasing the requirement never decreases any package's quantity.
	prev := map[string]int{}
	for required := 1.0; required <= 640; required += 7.5 {
		recs, err := Recommend(required, catalog())
		require.NoError(t, err)

		for _, rec := range recs {
			if last, ok := prev[rec.PackageID]; ok {
				assert.GreaterOrEqual(t, rec.Quantity, last,
					"required=%v package=%s", required, rec.PackageID)
			}
			prev[rec.PackageID] = rec.Quantity
		}
	}
}

func TestRecommendRejectsMalformedCatalog(t *testing.T) {
	t.Run("unknown volume unit", func(t *testing.T) {
		_, err := Recommend(10, []Option{
			{ID: "bad", Volume: 16, VolumeUnit: units.VolumeUnit(42), Price: 10},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, units.ErrUnsupportedConversion)
	})

	t.Run("non-positive volume", func(t *testing.T) {
		_, err := Recommend(10, []Option{
			{ID: "bad", Volume: 0, VolumeUnit: units.FluidOunces, Price: 10},
		})
		require.Error(t, err)
	})
}

func TestEfficiencyIsCostPerDeliveredOunce(t *testing.T) {
	recs, err := Recommend(40, []Option{
		{ID: "32oz", Volume: 32, VolumeUnit: units.FluidOunces, Price: 20},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, 2, rec.Quantity)
	assert.InDelta(t, 40.0, rec.TotalCost, 1e-9)
	assert.InDelta(t, 64.0, rec.DeliveredFlOz, 1e-9)
	assert.InDelta(t, 0.625, rec.Efficiency, 1e-9)
}
