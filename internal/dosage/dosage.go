// Package dosage computes herbicide concentrate and spray mixture
// requirements from a treatment area, a weed-size category, and an
// application rate.
//
// The dosing model is the multiplier model: rates are expressed as
// concentrate volume per 1,000 sq ft, scaled by a weed-size multiplier
// and clamped into the category's permitted range. A water-volume model
// (carrier liters per hectare) exists in the field literature but is not
// implemented here; mixing the two constant sets produces nonsense, so
// this package commits to one.
package dosage

import (
	"encoding/json"
	"fmt"

	"github.com/kmoss/sprout/internal/units"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is().
var (
	// ErrUnknownWeedSize indicates a weed-size tag with no configuration.
	ErrUnknownWeedSize = constError("unknown weed size")

	// ErrCalculationFailed wraps any internal fault during calculation.
	// It is fatal for the request, not the process.
	ErrCalculationFailed = constError("dosage calculation failed")
)

// Global area bounds in the reference unit (square feet).
const (
	// MinAreaSqFt is the smallest treatable area.
	MinAreaSqFt = 1.0

	// MaxAreaSqFt is the largest treatable area (10 acres). Larger jobs
	// are commercial-scale and outside the product label.
	MaxAreaSqFt = 435600.0
)

// StandardSprayVolumeGalPer1000SqFt is the carrier mixture applied per
// 1,000 sq ft regardless of concentrate dose.
const StandardSprayVolumeGalPer1000SqFt = 2.0

// referenceAreaBlockSqFt is the per-1,000-sq-ft block the label rates are
// quoted against.
const referenceAreaBlockSqFt = 1000.0

// WeedSize is the coarse weed growth category driving the rate multiplier.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type WeedSize int

const (
	// Small is newly emerged weeds under 3 inches.
	Small WeedSize = iota
	// Medium is actively growing weeds, 3-6 inches.
	Medium
	// Large is established weeds, 6-12 inches.
	Large
	// ExtraLarge is mature or woody weeds over 12 inches.
	ExtraLarge
)

// String returns the canonical tag for a WeedSize.
func (w WeedSize) String() string {
	switch w {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	case ExtraLarge:
		return "extra-large"
	default:
		return fmt.Sprintf("WeedSize(%d)", int(w))
	}
}

// ParseWeedSize resolves a weed-size tag.
func ParseWeedSize(tag string) (WeedSize, error) {
	switch tag {
	case "small":
		return Small, nil
	case "medium":
		return Medium, nil
	case "large":
		return Large, nil
	case "extra-large", "xl":
		return ExtraLarge, nil
	default:
		return Small, fmt.Errorf("%w: %q", ErrUnknownWeedSize, tag)
	}
}

// AllWeedSizes lists the categories in ascending growth order.
func AllWeedSizes() []WeedSize {
	return []WeedSize{Small, Medium, Large, ExtraLarge}
}

// RateRange is the permitted application-rate window for a weed size, in
// fluid ounces per 1,000 sq ft.
type RateRange struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Default float64 `json:"default" yaml:"default"`
}

// Clamp pins rate into the range.
func (r RateRange) Clamp(rate float64) float64 {
	if rate < r.Min {
		return r.Min
	}
	if rate > r.Max {
		return r.Max
	}
	return rate
}

// Contains reports whether rate lies within the range, inclusive.
func (r RateRange) Contains(rate float64) bool {
	return rate >= r.Min && rate <= r.Max
}

// WeedSizeConfig is the static dosing configuration for one weed size.
type WeedSizeConfig struct {
	// Multiplier scales the user's base rate for this category.
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`

	// Rate bounds the application rate before and after scaling.
	Rate RateRange `json:"rate" yaml:"rate"`
}

// DefaultWeedSizeConfigs returns the label dosing table. Loaded once and
// read-only thereafter.
func DefaultWeedSizeConfigs() map[WeedSize]WeedSizeConfig {
	return map[WeedSize]WeedSizeConfig{
		Small:      {Multiplier: 1.0, Rate: RateRange{Min: 1.0, Max: 3.0, Default: 2.0}},
		Medium:     {Multiplier: 1.25, Rate: RateRange{Min: 1.5, Max: 4.0, Default: 2.0}},
		Large:      {Multiplier: 1.5, Rate: RateRange{Min: 2.0, Max: 5.0, Default: 3.0}},
		ExtraLarge: {Multiplier: 2.0, Rate: RateRange{Min: 2.5, Max: 6.0, Default: 4.0}},
	}
}

// Inputs is one calculation request as entered by the user. Values are
// replaced wholesale on every change; the struct is never mutated in
// place.
type Inputs struct {
	Area            float64          `json:"area"`
	AreaUnit        units.AreaUnit   `json:"area_unit"`
	WeedSize        WeedSize         `json:"weed_size"`
	ApplicationRate float64          `json:"application_rate"`
	ApplicationUnit units.VolumeUnit `json:"application_unit"`
	UnitSystem      units.System     `json:"unit_system"`
}

// DefaultInputs returns a minimal valid input set for a system.
func DefaultInputs(system units.System) Inputs {
	in := Inputs{
		Area:            1000,
		AreaUnit:        units.CanonicalAreaUnit(system),
		WeedSize:        Medium,
		ApplicationRate: DefaultWeedSizeConfigs()[Medium].Rate.Default,
		ApplicationUnit: units.CanonicalVolumeUnit(system),
		UnitSystem:      system,
	}
	if system == units.Metric {
		converted, err := in.ToSystem(units.Metric)
		if err == nil {
			return converted
		}
	}
	return in
}

// ToSystem converts the input set to the target measurement system's
// canonical units, rounding both numeric fields to 2 decimal places.
// No-op when already in the target system.
func (in Inputs) ToSystem(target units.System) (Inputs, error) {
	if in.UnitSystem == target {
		return in, nil
	}

	targetAreaUnit := units.CanonicalAreaUnit(target)
	targetVolumeUnit := units.CanonicalVolumeUnit(target)

	area, err := units.ConvertArea(in.Area, in.AreaUnit, targetAreaUnit)
	if err != nil {
		return Inputs{}, err
	}
	rate, err := units.ConvertVolume(in.ApplicationRate, in.ApplicationUnit, targetVolumeUnit)
	if err != nil {
		return Inputs{}, err
	}

	out := in
	out.Area = units.Round2(area)
	out.AreaUnit = targetAreaUnit
	out.ApplicationRate = units.Round2(rate)
	out.ApplicationUnit = targetVolumeUnit
	out.UnitSystem = target
	return out, nil
}

// MarshalJSON implements json.Marshaler to output WeedSize as its tag.
func (w WeedSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON implements json.Unmarshaler to parse WeedSize from a tag.
func (w *WeedSize) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("parsing weed size: %w", err)
	}
	parsed, err := ParseWeedSize(tag)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for catalog files.
func (w *WeedSize) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tag string
	if err := unmarshal(&tag); err != nil {
		return fmt.Errorf("parsing weed size: %w", err)
	}
	parsed, err := ParseWeedSize(tag)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for catalog files.
func (w WeedSize) MarshalYAML() (interface{}, error) {
	return w.String(), nil
}
