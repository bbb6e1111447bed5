package dosage

import (
	"fmt"

	"github.com/kmoss/sprout/internal/units"
)

// Step is one audited stage of the calculation, carrying the formula and
// the numbers that went through it for UI display.
type Step struct {
	Name    string  `json:"name"`
	Formula string  `json:"formula"`
	Input   float64 `json:"input"`
	Output  float64 `json:"output"`
	Unit    string  `json:"unit"`
}

// Factors captures the constants that shaped the result. ApplicationRate
// is the post-clamp rate actually applied, not the user's raw entry.
type Factors struct {
	Multiplier                float64 `json:"multiplier"`
	ApplicationRate           float64 `json:"application_rate"`
	SprayVolumeGalPer1000SqFt float64 `json:"spray_volume_gal_per_1000_sq_ft"`
}

// Breakdown is the ordered, human-auditable account of a calculation.
type Breakdown struct {
	Steps       []Step   `json:"steps"`
	Assumptions []string `json:"assumptions"`
	Factors     Factors  `json:"factors"`
}

// Calculation is the dosage result before package recommendation. All
// volumes are in the reference unit (fluid ounces); areas in square feet.
type Calculation struct {
	RequiredConcentrateFlOz float64   `json:"required_concentrate_fl_oz"`
	TotalMixtureFlOz        float64   `json:"total_mixture_fl_oz"`
	CoverageSqFt            float64   `json:"coverage_sq_ft"`
	Breakdown               Breakdown `json:"breakdown"`
}

// Params is the static dosing configuration for Calculate.
type Params struct {
	// WeedSizes is the per-category dosing table.
	WeedSizes map[WeedSize]WeedSizeConfig

	// SprayVolumeGalPer1000SqFt is the carrier mixture constant. Zero
	// falls back to StandardSprayVolumeGalPer1000SqFt.
	SprayVolumeGalPer1000SqFt float64
}

// DefaultParams returns Params with the label dosing table and the
// standard spray volume.
func DefaultParams() Params {
	return Params{
		WeedSizes:                 DefaultWeedSizeConfigs(),
		SprayVolumeGalPer1000SqFt: StandardSprayVolumeGalPer1000SqFt,
	}
}

// Calculate computes the concentrate and mixture requirement for an
// already-validated input set.
//
// The model: convert area and rate to reference units, scale the rate by
// the weed-size multiplier, clamp the scaled rate back into the
// category's permitted range (a validated rate can still be pushed out of
// range by the multiplier; clamping is the designed fallback), then
// apply the rate per 1,000 sq ft block.
//
// Internal inconsistencies (an unknown weed size slipping past
// validation, a malformed unit tag) return an error wrapping
// ErrCalculationFailed. Nothing is silently defaulted.
func Calculate(in Inputs, p Params) (Calculation, error) {
	cfg, ok := p.WeedSizes[in.WeedSize]
	if !ok {
		return Calculation{}, fmt.Errorf("%w: %w: %q", ErrCalculationFailed, ErrUnknownWeedSize, in.WeedSize)
	}

	sprayVolumeGal := p.SprayVolumeGalPer1000SqFt
	if sprayVolumeGal == 0 {
		sprayVolumeGal = StandardSprayVolumeGalPer1000SqFt
	}

	areaSqFt, err := units.ToStandardArea(in.Area, in.AreaUnit)
	if err != nil {
		return Calculation{}, fmt.Errorf("%w: converting area: %w", ErrCalculationFailed, err)
	}

	rateFlOz, err := units.ToStandardVolume(in.ApplicationRate, in.ApplicationUnit)
	if err != nil {
		return Calculation{}, fmt.Errorf("%w: converting application rate: %w", ErrCalculationFailed, err)
	}

	adjustedRate := rateFlOz * cfg.Multiplier
	clampedRate := cfg.Rate.Clamp(adjustedRate)

	blocks := areaSqFt / referenceAreaBlockSqFt
	concentrateFlOz := blocks * clampedRate
	mixtureFlOz := blocks * sprayVolumeGal * units.FluidOuncesPerGallon

	breakdown := Breakdown{
		Steps: []Step{
			{
				Name:    "area-conversion",
				Formula: fmt.Sprintf("%.2f %s -> square feet", in.Area, in.AreaUnit.Label()),
				Input:   in.Area,
				Output:  areaSqFt,
				Unit:    units.SquareFeet.Label(),
			},
			{
				Name:    "weed-size-adjustment",
				Formula: fmt.Sprintf("%.2f fl oz x %.2f (%s), clamped to [%.1f, %.1f]",
					rateFlOz, cfg.Multiplier, in.WeedSize, cfg.Rate.Min, cfg.Rate.Max),
				Input:  rateFlOz,
				Output: clampedRate,
				Unit:   units.FluidOunces.Label(),
			},
			{
				Name:    "product-calculation",
				Formula: fmt.Sprintf("(%.2f sq ft / 1,000) x %.2f fl oz", areaSqFt, clampedRate),
				Input:   areaSqFt,
				Output:  concentrateFlOz,
				Unit:    units.FluidOunces.Label(),
			},
			{
				Name:    "mixture-calculation",
				Formula: fmt.Sprintf("(%.2f sq ft / 1,000) x %.1f gal", areaSqFt, sprayVolumeGal),
				Input:   areaSqFt,
				Output:  mixtureFlOz,
				Unit:    units.FluidOunces.Label(),
			},
		},
		Assumptions: []string{
			fmt.Sprintf("Spray volume of %.1f gallons of mixture per 1,000 sq ft", sprayVolumeGal),
			"Uniform application with a calibrated sprayer",
			"Rates follow the product label dosing table for the selected weed size",
		},
		Factors: Factors{
			Multiplier:                cfg.Multiplier,
			ApplicationRate:           clampedRate,
			SprayVolumeGalPer1000SqFt: sprayVolumeGal,
		},
	}

	return Calculation{
		RequiredConcentrateFlOz: concentrateFlOz,
		TotalMixtureFlOz:        mixtureFlOz,
		CoverageSqFt:            areaSqFt,
		Breakdown:               breakdown,
	}, nil
}
