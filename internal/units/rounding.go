package units

import "math"

// Rounding is centralized here so stored and displayed values cannot
// drift: system translation, formatting, and cost math all round through
// the same policy.

// Round rounds half-up to the given number of decimal places.
func Round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Floor(value*factor+0.5) / factor
}

// Round2 rounds half-up to 2 decimal places, the policy used for stored
// values and currency amounts.
func Round2(value float64) float64 {
	return Round(value, 2)
}
