package units

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across hosts.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Display unit selection cutoffs. At or above the cutoff the larger unit
// of the family reads better.
const (
	// AcreDisplayCutoffSqFt switches square feet to acres (1 acre).
	AcreDisplayCutoffSqFt = SquareFeetPerAcre

	// HectareDisplayCutoffSqM switches square meters to hectares (1 ha).
	HectareDisplayCutoffSqM = 10000.0

	// GallonDisplayCutoffFlOz switches fluid ounces to gallons (1 gal).
	GallonDisplayCutoffFlOz = FluidOuncesPerGallon

	// LiterDisplayCutoffMl switches milliliters to liters (1 L).
	LiterDisplayCutoffMl = 1000.0
)

// FormatNumber formats a float with the given precision and thousand
// separators. Example: FormatNumber(43560, 1) returns "43,560.0".
func FormatNumber(value float64, precision int) string {
	formatted := strconv.FormatFloat(Round(value, precision), 'f', precision, 64)

	intPart, decPart, hasDec := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	grouped := printer.Sprintf("%d", n)
	if hasDec {
		return grouped + "." + decPart
	}
	return grouped
}

// displayPrecision implements the shared precision rule: values under 1
// get 3 decimal places, acres and hectares get 2, everything else 1.
func displayPrecision(value float64, largeAreaUnit bool) int {
	if value < 1 {
		return 3
	}
	if largeAreaUnit {
		return 2
	}
	return 1
}

// FormatArea renders value as "<number> <label>" with unit- and
// magnitude-dependent precision.
func FormatArea(value float64, unit AreaUnit) string {
	precision := displayPrecision(value, unit == Acres || unit == Hectares)
	return FormatNumber(value, precision) + " " + unit.Label()
}

// FormatVolume renders value as "<number> <label>" using the same
// precision rule as FormatArea.
func FormatVolume(value float64, unit VolumeUnit) string {
	precision := displayPrecision(value, false)
	return FormatNumber(value, precision) + " " + unit.Label()
}

// OptimalAreaUnit picks the display unit for an area given in square
// feet: the large unit of the system once the value crosses the cutoff,
// the small unit otherwise.
func OptimalAreaUnit(valueSqFt float64, system System) AreaUnit {
	if system == Metric {
		sqm := valueSqFt * SquareMetersPerSquareFoot
		if sqm >= HectareDisplayCutoffSqM {
			return Hectares
		}
		return SquareMeters
	}
	if valueSqFt >= AcreDisplayCutoffSqFt {
		return Acres
	}
	return SquareFeet
}

// OptimalVolumeUnit picks the display unit for a volume given in fluid
// ounces.
func OptimalVolumeUnit(valueFlOz float64, system System) VolumeUnit {
	if system == Metric {
		ml := valueFlOz * MillilitersPerFluidOunce
		if ml >= LiterDisplayCutoffMl {
			return Liters
		}
		return Milliliters
	}
	if valueFlOz >= GallonDisplayCutoffFlOz {
		return Gallons
	}
	return FluidOunces
}

// FormatCurrency renders a cost amount with its ISO currency code.
func FormatCurrency(amount float64, currency string) string {
	return fmt.Sprintf("%s %s", FormatNumber(amount, 2), currency)
}
