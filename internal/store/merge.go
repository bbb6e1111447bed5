package store

import (
	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/units"
)

// Overrides carries explicitly caller-supplied input fields. Nil fields
// were not supplied and keep the stored value.
type Overrides struct {
	Area            *float64
	AreaUnit        *units.AreaUnit
	WeedSize        *dosage.WeedSize
	ApplicationRate *float64
	ApplicationUnit *units.VolumeUnit
	UnitSystem      *units.System
}

// Merge layers explicit overrides on top of a stored input set.
// Caller-supplied values always win over stored values on conflict.
func Merge(stored dosage.Inputs, o Overrides) dosage.Inputs {
	merged := stored
	if o.Area != nil {
		merged.Area = *o.Area
	}
	if o.AreaUnit != nil {
		merged.AreaUnit = *o.AreaUnit
	}
	if o.WeedSize != nil {
		merged.WeedSize = *o.WeedSize
	}
	if o.ApplicationRate != nil {
		merged.ApplicationRate = *o.ApplicationRate
	}
	if o.ApplicationUnit != nil {
		merged.ApplicationUnit = *o.ApplicationUnit
	}
	if o.UnitSystem != nil {
		merged.UnitSystem = *o.UnitSystem
	}
	return merged
}
