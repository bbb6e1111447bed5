// Package units provides area and volume conversion for the dosage engine.
//
// Conversion factors are declarative lookup tables rather than branching
// logic so the factor set stays auditable and reversibility is easy to
// test. The reference units are square feet (area) and fluid ounces
// (volume); every calculation in the engine normalizes to those before
// doing arithmetic.
package units

import (
	"encoding/json"
	"fmt"
	"math"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. These can be compared with errors.Is().
var (
	// ErrUnsupportedConversion indicates a conversion between units with
	// no table entry, typically a malformed unit tag in a catalog file.
	ErrUnsupportedConversion = constError("unsupported unit conversion")

	// ErrNonFiniteValue indicates an Inf or NaN input value.
	ErrNonFiniteValue = constError("value is not finite")
)

// AreaUnit identifies a supported area unit.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type AreaUnit int

const (
	// SquareFeet is the reference area unit.
	SquareFeet AreaUnit = iota
	// SquareMeters is the metric small-area unit.
	SquareMeters
	// Acres is the imperial large-area unit.
	Acres
	// Hectares is the metric large-area unit.
	Hectares
)

// VolumeUnit identifies a supported volume unit.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type VolumeUnit int

const (
	// FluidOunces is the reference volume unit.
	FluidOunces VolumeUnit = iota
	// Gallons is the imperial large-volume unit.
	Gallons
	// Milliliters is the metric small-volume unit.
	Milliliters
	// Liters is the metric large-volume unit.
	Liters
)

// System identifies a measurement system for display and input defaults.
type System int

const (
	// Imperial uses square feet/acres and fluid ounces/gallons.
	Imperial System = iota
	// Metric uses square meters/hectares and milliliters/liters.
	Metric
)

// Area conversion factors to square feet.
const (
	SquareMetersPerSquareFoot = 0.09290304
	SquareFeetPerSquareMeter  = 10.763910416709722
	SquareFeetPerAcre         = 43560.0
	SquareFeetPerHectare      = 107639.10416709722
)

// Volume conversion factors to fluid ounces.
const (
	MillilitersPerFluidOunce = 29.5735295625
	FluidOuncesPerMilliliter = 0.03381402270184299
	FluidOuncesPerGallon     = 128.0
	FluidOuncesPerLiter      = 33.81402270184299
)

// areaToReference maps each area unit to its factor into square feet.
var areaToReference = map[AreaUnit]float64{
	SquareFeet:   1.0,
	SquareMeters: SquareFeetPerSquareMeter,
	Acres:        SquareFeetPerAcre,
	Hectares:     SquareFeetPerHectare,
}

// volumeToReference maps each volume unit to its factor into fluid ounces.
var volumeToReference = map[VolumeUnit]float64{
	FluidOunces: 1.0,
	Gallons:     FluidOuncesPerGallon,
	Milliliters: FluidOuncesPerMilliliter,
	Liters:      FluidOuncesPerLiter,
}

// String returns the canonical tag for an AreaUnit.
func (u AreaUnit) String() string {
	switch u {
	case SquareFeet:
		return "square-feet"
	case SquareMeters:
		return "square-meters"
	case Acres:
		return "acres"
	case Hectares:
		return "hectares"
	default:
		return fmt.Sprintf("AreaUnit(%d)", int(u))
	}
}

// Label returns the short display label for an AreaUnit.
func (u AreaUnit) Label() string {
	switch u {
	case SquareFeet:
		return "sq ft"
	case SquareMeters:
		return "sq m"
	case Acres:
		return "acres"
	case Hectares:
		return "ha"
	default:
		return u.String()
	}
}

// String returns the canonical tag for a VolumeUnit.
func (u VolumeUnit) String() string {
	switch u {
	case FluidOunces:
		return "fluid-ounces"
	case Gallons:
		return "gallons"
	case Milliliters:
		return "milliliters"
	case Liters:
		return "liters"
	default:
		return fmt.Sprintf("VolumeUnit(%d)", int(u))
	}
}

// Label returns the short display label for a VolumeUnit.
func (u VolumeUnit) Label() string {
	switch u {
	case FluidOunces:
		return "fl oz"
	case Gallons:
		return "gal"
	case Milliliters:
		return "ml"
	case Liters:
		return "L"
	default:
		return u.String()
	}
}

// String returns the canonical tag for a System.
func (s System) String() string {
	if s == Metric {
		return "metric"
	}
	return "imperial"
}

// ParseAreaUnit resolves a unit tag to an AreaUnit.
// Returns ErrUnsupportedConversion for unrecognized tags.
func ParseAreaUnit(tag string) (AreaUnit, error) {
	switch tag {
	case "square-feet", "sqft", "sq-ft", "ft2":
		return SquareFeet, nil
	case "square-meters", "sqm", "sq-m", "m2":
		return SquareMeters, nil
	case "acres", "acre", "ac":
		return Acres, nil
	case "hectares", "hectare", "ha":
		return Hectares, nil
	default:
		return SquareFeet, fmt.Errorf("%w: unknown area unit %q", ErrUnsupportedConversion, tag)
	}
}

// ParseVolumeUnit resolves a unit tag to a VolumeUnit.
// Returns ErrUnsupportedConversion for unrecognized tags.
func ParseVolumeUnit(tag string) (VolumeUnit, error) {
	switch tag {
	case "fluid-ounces", "fl-oz", "floz", "oz":
		return FluidOunces, nil
	case "gallons", "gallon", "gal":
		return Gallons, nil
	case "milliliters", "milliliter", "ml":
		return Milliliters, nil
	case "liters", "liter", "l":
		return Liters, nil
	default:
		return FluidOunces, fmt.Errorf("%w: unknown volume unit %q", ErrUnsupportedConversion, tag)
	}
}

// ParseSystem resolves a system tag. Unrecognized tags error; parsing is
// strict because the tag comes from configuration, not free-form input.
func ParseSystem(tag string) (System, error) {
	switch tag {
	case "imperial":
		return Imperial, nil
	case "metric":
		return Metric, nil
	default:
		return Imperial, fmt.Errorf("%w: unknown unit system %q", ErrUnsupportedConversion, tag)
	}
}

// ConvertArea converts value between area units. Identity when from == to.
// Returns ErrUnsupportedConversion when either unit has no table entry and
// ErrNonFiniteValue for Inf/NaN inputs.
func ConvertArea(value float64, from, to AreaUnit) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrNonFiniteValue
	}
	if from == to {
		if _, ok := areaToReference[from]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnsupportedConversion, from)
		}
		return value, nil
	}

	fromFactor, ok := areaToReference[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedConversion, from)
	}
	toFactor, ok := areaToReference[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedConversion, to)
	}

	return value * fromFactor / toFactor, nil
}

// ConvertVolume converts value between volume units. Same contract as
// ConvertArea.
func ConvertVolume(value float64, from, to VolumeUnit) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrNonFiniteValue
	}
	if from == to {
		if _, ok := volumeToReference[from]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnsupportedConversion, from)
		}
		return value, nil
	}

	fromFactor, ok := volumeToReference[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedConversion, from)
	}
	toFactor, ok := volumeToReference[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedConversion, to)
	}

	return value * fromFactor / toFactor, nil
}

// ToStandardArea converts value to square feet, the engine's reference
// area unit.
func ToStandardArea(value float64, unit AreaUnit) (float64, error) {
	return ConvertArea(value, unit, SquareFeet)
}

// ToStandardVolume converts value to fluid ounces, the engine's reference
// volume unit.
func ToStandardVolume(value float64, unit VolumeUnit) (float64, error) {
	return ConvertVolume(value, unit, FluidOunces)
}

// ValidateAreaConversion reports whether value can be converted between
// the two area units: the value must be finite and non-negative and both
// units must have table entries. Pure predicate, no error path.
func ValidateAreaConversion(value float64, from, to AreaUnit) bool {
	if math.IsInf(value, 0) || math.IsNaN(value) || value < 0 {
		return false
	}
	_, okFrom := areaToReference[from]
	_, okTo := areaToReference[to]
	return okFrom && okTo
}

// ValidateVolumeConversion is the volume-family counterpart of
// ValidateAreaConversion.
func ValidateVolumeConversion(value float64, from, to VolumeUnit) bool {
	if math.IsInf(value, 0) || math.IsNaN(value) || value < 0 {
		return false
	}
	_, okFrom := volumeToReference[from]
	_, okTo := volumeToReference[to]
	return okFrom && okTo
}

// CanonicalAreaUnit returns the input area unit for a measurement system.
func CanonicalAreaUnit(s System) AreaUnit {
	if s == Metric {
		return SquareMeters
	}
	return SquareFeet
}

// CanonicalVolumeUnit returns the input volume unit for a measurement
// system.
func CanonicalVolumeUnit(s System) VolumeUnit {
	if s == Metric {
		return Milliliters
	}
	return FluidOunces
}

// MarshalJSON implements json.Marshaler to output AreaUnit as its tag.
func (u AreaUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements json.Unmarshaler to parse AreaUnit from a tag.
func (u *AreaUnit) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("parsing area unit: %w", err)
	}
	parsed, err := ParseAreaUnit(tag)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalJSON implements json.Marshaler to output VolumeUnit as its tag.
func (u VolumeUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements json.Unmarshaler to parse VolumeUnit from a tag.
func (u *VolumeUnit) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("parsing volume unit: %w", err)
	}
	parsed, err := ParseVolumeUnit(tag)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalJSON implements json.Marshaler to output System as its tag.
func (s System) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler to parse System from a tag.
func (s *System) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("parsing unit system: %w", err)
	}
	parsed, err := ParseSystem(tag)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for catalog files.
func (u *VolumeUnit) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tag string
	if err := unmarshal(&tag); err != nil {
		return fmt.Errorf("parsing volume unit: %w", err)
	}
	parsed, err := ParseVolumeUnit(tag)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for catalog files.
func (u VolumeUnit) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}
