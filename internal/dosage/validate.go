package dosage

import (
	"fmt"
	"math"

	"github.com/kmoss/sprout/internal/units"
)

// ValidationError describes one input violating one bound. Validation
// errors are expected and recoverable; the caller surfaces them and lets
// the user correct the input.
type ValidationError struct {
	// Field is the input field in violation ("area", "application_rate").
	Field string `json:"field"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationResult collects every violation found in an input set.
// Validation never short-circuits: a request with a bad area and a bad
// rate reports both.
type ValidationResult struct {
	// Valid is true when no errors were found.
	Valid bool `json:"valid"`

	// Errors lists every violation, in field order.
	Errors []ValidationError `json:"errors"`
}

// Messages returns the error messages as a plain string list.
func (r ValidationResult) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// ValidateInputs checks in against the global area bounds and the
// weed-size rate range in weedSizes. All violations are accumulated.
func ValidateInputs(in Inputs, weedSizes map[WeedSize]WeedSizeConfig) ValidationResult {
	result := ValidationResult{Valid: true, Errors: make([]ValidationError, 0)}

	validateArea(&result, in)
	validateRate(&result, in, weedSizes)

	return result
}

func validateArea(result *ValidationResult, in Inputs) {
	if math.IsInf(in.Area, 0) || math.IsNaN(in.Area) || in.Area <= 0 {
		result.addError("area", "area must be a positive number")
		return
	}

	stdArea, err := units.ToStandardArea(in.Area, in.AreaUnit)
	if err != nil {
		result.addError("area", fmt.Sprintf("area unit is not recognized: %v", err))
		return
	}

	if stdArea < MinAreaSqFt {
		result.addError("area", fmt.Sprintf(
			"area must be at least %s", units.FormatArea(MinAreaSqFt, units.SquareFeet)))
	}
	if stdArea > MaxAreaSqFt {
		result.addError("area", fmt.Sprintf(
			"area must be at most %s", units.FormatArea(MaxAreaSqFt, units.SquareFeet)))
	}
}

func validateRate(result *ValidationResult, in Inputs, weedSizes map[WeedSize]WeedSizeConfig) {
	if math.IsInf(in.ApplicationRate, 0) || math.IsNaN(in.ApplicationRate) || in.ApplicationRate <= 0 {
		result.addError("application_rate", "application rate must be a positive number")
		return
	}

	cfg, ok := weedSizes[in.WeedSize]
	if !ok {
		result.addError("weed_size", fmt.Sprintf("weed size %q has no dosing configuration", in.WeedSize))
		return
	}

	// Bounds are quoted in the reference volume unit; compare there.
	stdRate, err := units.ToStandardVolume(in.ApplicationRate, in.ApplicationUnit)
	if err != nil {
		result.addError("application_rate", fmt.Sprintf("application rate unit is not recognized: %v", err))
		return
	}

	if !cfg.Rate.Contains(stdRate) {
		result.addError("application_rate", fmt.Sprintf(
			"application rate for %s weeds must be between %.1f and %.1f fl oz per 1,000 sq ft",
			in.WeedSize, cfg.Rate.Min, cfg.Rate.Max))
	}
}
