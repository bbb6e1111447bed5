package config

import (
	"fmt"

	"github.com/kmoss/sprout/internal/units"
)

// ValidationResult contains the results of catalog validation.
type ValidationResult struct {
	// Valid is true if no errors were found. Warnings do not affect
	// validity.
	Valid bool `json:"valid"`

	// Errors are blocking issues that prevent using the catalog.
	Errors []ValidationIssue `json:"errors"`

	// Warnings are non-blocking issues worth reviewing.
	Warnings []ValidationIssue `json:"warnings"`
}

// ValidationIssue points at one configuration field.
type ValidationIssue struct {
	// Field is the configuration field, e.g. "package_sizes[1].price".
	Field string `json:"field"`

	// Message describes the issue.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationIssue) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks a product configuration for blocking errors and
// advisories. Every issue is collected; validation never stops at the
// first problem.
func Validate(cfg *ProductConfig) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   make([]ValidationIssue, 0),
		Warnings: make([]ValidationIssue, 0),
	}

	addError := func(field, message string) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationIssue{Field: field, Message: message})
	}
	addWarning := func(field, message string) {
		result.Warnings = append(result.Warnings, ValidationIssue{Field: field, Message: message})
	}

	if cfg.ID == "" {
		addError("id", "product id is required")
	}
	if cfg.Name == "" {
		addError("name", "product name is required")
	}
	if cfg.SKU == "" {
		addWarning("sku", "product sku is empty; cart payloads will carry a blank sku")
	}
	if len(cfg.Currency) != currencyCodeLen {
		addError("currency", fmt.Sprintf("currency must be a 3-letter ISO code, got %q", cfg.Currency))
	}
	if cfg.ConcentrationRatio <= 0 || cfg.ConcentrationRatio > 1 {
		addError("concentration_ratio", fmt.Sprintf(
			"concentration ratio must be in (0, 1], got %v", cfg.ConcentrationRatio))
	}
	if cfg.SprayVolumeGalPer1000SqFt < 0 {
		addError("spray_volume_gal_per_1000_sq_ft", "spray volume cannot be negative")
	}

	if len(cfg.PackageSizes) == 0 {
		addWarning("package_sizes", "no package sizes configured; recommendations will be empty")
	}

	seenIDs := make(map[string]int)
	for i, pkg := range cfg.PackageSizes {
		field := fmt.Sprintf("package_sizes[%d]", i)
		if pkg.ID == "" {
			addError(field+".id", "package id is required")
		} else if prev, dup := seenIDs[pkg.ID]; dup {
			addError(field+".id", fmt.Sprintf("duplicate package id %q (first seen at index %d)", pkg.ID, prev))
		} else {
			seenIDs[pkg.ID] = i
		}
		if !units.ValidateVolumeConversion(pkg.Volume, pkg.VolumeUnit, units.FluidOunces) || pkg.Volume <= 0 {
			addError(field+".volume", fmt.Sprintf("package volume must be a positive volume, got %v", pkg.Volume))
		}
		if pkg.Price <= 0 {
			addError(field+".price", fmt.Sprintf("package price must be positive, got %v", pkg.Price))
		}
	}

	for i, row := range cfg.ApplicationRates {
		field := fmt.Sprintf("application_rates[%d]", i)
		if row.Multiplier <= 0 {
			addError(field+".multiplier", fmt.Sprintf("multiplier must be positive, got %v", row.Multiplier))
		}
		if row.Rate.Min <= 0 || row.Rate.Max < row.Rate.Min {
			addError(field+".rate", fmt.Sprintf(
				"rate range must satisfy 0 < min <= max, got [%v, %v]", row.Rate.Min, row.Rate.Max))
			continue
		}
		if !row.Rate.Contains(row.Rate.Default) {
			addError(field+".rate.default", fmt.Sprintf(
				"default rate %v is outside [%v, %v]", row.Rate.Default, row.Rate.Min, row.Rate.Max))
		}
	}

	return result
}
