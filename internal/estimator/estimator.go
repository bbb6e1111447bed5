// Package estimator composes unit conversion, dosage math, and package
// recommendation into one calculation engine backed by a product catalog.
package estimator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kmoss/sprout/internal/config"
	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/logging"
	"github.com/kmoss/sprout/internal/packs"
	"github.com/kmoss/sprout/internal/units"
)

// VolumeAmount is a volume with its display unit and formatted string.
type VolumeAmount struct {
	Value     float64          `json:"value"`
	Unit      units.VolumeUnit `json:"unit"`
	Formatted string           `json:"formatted"`
}

// AreaAmount is an area with its display unit and formatted string.
type AreaAmount struct {
	Value     float64        `json:"value"`
	Unit      units.AreaUnit `json:"unit"`
	Formatted string         `json:"formatted"`
}

// Result is one completed calculation. Created fresh on every successful
// run and never mutated afterwards; the next input set supersedes it.
type Result struct {
	// CalculationID is a ULID identifying this calculation for cart
	// payloads and audit trails.
	CalculationID string `json:"calculation_id"`

	ProductID   string    `json:"product_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Inputs echoes the value set that produced this result.
	Inputs dosage.Inputs `json:"inputs"`

	RequiredConcentrate VolumeAmount `json:"required_concentrate"`
	TotalMixture        VolumeAmount `json:"total_mixture"`
	Coverage            AreaAmount   `json:"coverage"`

	// EstimatedCost is the optimal recommendation's total cost, zero
	// when the catalog is empty.
	EstimatedCost float64 `json:"estimated_cost"`
	Currency      string  `json:"currency"`

	Recommendations []packs.Recommendation `json:"recommendations"`
	Breakdown       dosage.Breakdown       `json:"breakdown"`
}

// InvalidInputsError reports that a calculation was refused because the
// inputs failed validation. It carries every violation.
type InvalidInputsError struct {
	Result dosage.ValidationResult
}

// Error implements the error interface.
func (e *InvalidInputsError) Error() string {
	return "invalid inputs: " + strings.Join(e.Result.Messages(), "; ")
}

// Engine runs calculations against one product catalog. Safe for
// concurrent use: the catalog is read-only after construction.
type Engine struct {
	product config.ProductConfig
	params  dosage.Params
}

// New creates an Engine for a product.
func New(product config.ProductConfig) *Engine {
	return &Engine{
		product: product,
		params:  product.DosageParams(),
	}
}

// Product returns the catalog the engine was built with.
func (e *Engine) Product() config.ProductConfig {
	return e.product
}

// Validate checks an input set against the catalog's dosing table,
// accumulating every violation.
func (e *Engine) Validate(in dosage.Inputs) dosage.ValidationResult {
	return dosage.ValidateInputs(in, e.params.WeedSizes)
}

// Calculate validates in, runs the dosage model, ranks the catalog's
// packages against the requirement, and assembles the result.
//
// Validation failures return *InvalidInputsError. Internal faults
// propagate wrapped in dosage.ErrCalculationFailed; nothing is caught
// here — the realtime controller is the sole catch point.
func (e *Engine) Calculate(ctx context.Context, in dosage.Inputs) (*Result, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Str("component", "estimator").
		Str("operation", "calculate").
		Str("product_id", e.product.ID).
		Float64("area", in.Area).
		Str("area_unit", in.AreaUnit.String()).
		Str("weed_size", in.WeedSize.String()).
		Float64("application_rate", in.ApplicationRate).
		Msg("starting calculation")

	if validation := e.Validate(in); !validation.Valid {
		return nil, &InvalidInputsError{Result: validation}
	}

	calc, err := dosage.Calculate(in, e.params)
	if err != nil {
		return nil, err
	}

	recs, err := packs.Recommend(calc.RequiredConcentrateFlOz, e.product.PackageSizes)
	if err != nil {
		return nil, fmt.Errorf("%w: ranking packages: %w", dosage.ErrCalculationFailed, err)
	}

	estimatedCost := 0.0
	if optimal, ok := packs.Optimal(recs); ok {
		estimatedCost = optimal.TotalCost
	}

	result := &Result{
		CalculationID:       ulid.Make().String(),
		ProductID:           e.product.ID,
		GeneratedAt:         time.Now().UTC(),
		Inputs:              in,
		RequiredConcentrate: displayVolume(calc.RequiredConcentrateFlOz, in.UnitSystem),
		TotalMixture:        displayVolume(calc.TotalMixtureFlOz, in.UnitSystem),
		Coverage:            displayArea(calc.CoverageSqFt, in.UnitSystem),
		EstimatedCost:       estimatedCost,
		Currency:            e.product.Currency,
		Recommendations:     recs,
		Breakdown:           calc.Breakdown,
	}

	log.Info().
		Str("component", "estimator").
		Str("operation", "calculate").
		Str("calculation_id", result.CalculationID).
		Float64("required_fl_oz", calc.RequiredConcentrateFlOz).
		Float64("estimated_cost", estimatedCost).
		Int("recommendations", len(recs)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("calculation complete")

	return result, nil
}

// displayVolume converts a reference-unit volume to the nicest display
// unit for the system. Conversion between table units cannot fail here.
func displayVolume(valueFlOz float64, system units.System) VolumeAmount {
	unit := units.OptimalVolumeUnit(valueFlOz, system)
	value, _ := units.ConvertVolume(valueFlOz, units.FluidOunces, unit)
	return VolumeAmount{
		Value:     value,
		Unit:      unit,
		Formatted: units.FormatVolume(value, unit),
	}
}

func displayArea(valueSqFt float64, system units.System) AreaAmount {
	unit := units.OptimalAreaUnit(valueSqFt, system)
	value, _ := units.ConvertArea(valueSqFt, units.SquareFeet, unit)
	return AreaAmount{
		Value:     value,
		Unit:      unit,
		Formatted: units.FormatArea(value, unit),
	}
}
