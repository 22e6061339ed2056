// Package units implements the unit registry and converters behind
// ingredient normalization: every convertible quantity is stored in a
// single base unit per measurement class (tablespoons for volume, ounces
// for weight) so quantities from different recipes can be summed directly,
// and is re-expressed in a display unit at read time according to the
// viewer's metric preference.
//
// All tables are fixed at compile time and every function is a pure
// computation over its inputs, safe for unrestricted concurrent use.
package units

import (
	"fmt"
	"strings"
)

// Class is the measurement class of a unit.
type Class int

const (
	ClassUnknown Class = iota
	ClassVolume
	ClassWeight
	ClassCount
)

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case ClassVolume:
		return "volume"
	case ClassWeight:
		return "weight"
	case ClassCount:
		return "count"
	}
	return "unknown"
}

// Base unit names. Normalized quantities are always stored in these.
const (
	BaseVolumeUnit = "tbsp"
	BaseWeightUnit = "oz"
)

// Conversion constants for metric display.
const (
	mlPerTbsp  = 14.7868
	gramsPerOz = 28.3495
)

// volumeToTbsp maps volume units to their factor in tablespoons.
var volumeToTbsp = map[string]float64{
	// US customary
	"tsp":    1.0 / 3.0,
	"tbsp":   1,
	"fl oz":  2,
	"cup":    16,
	"pint":   32,
	"quart":  64,
	"gallon": 256,

	// Metric (1 tbsp = 14.7868 ml)
	"ml": 1 / mlPerTbsp,
	"l":  1000 / mlPerTbsp,
}

// weightToOz maps weight units to their factor in ounces.
var weightToOz = map[string]float64{
	// US customary
	"oz": 1,
	"lb": 16,

	// Metric (1 oz = 28.3495 g)
	"g":  1 / gramsPerOz,
	"kg": 1000 / gramsPerOz,
}

// countUnits are discrete, non-convertible units.
var countUnits = map[string]struct{}{
	"whole":   {},
	"clove":   {},
	"stalk":   {},
	"package": {},
	"slice":   {},
	"bunch":   {},
	"fillet":  {},
	"pinch":   {},
}

// Classify reports the measurement class of a unit name. Lookup is
// case-insensitive; units absent from every table classify as ClassUnknown
// and pass through conversion untouched.
func Classify(unit string) Class {
	u := strings.ToLower(unit)
	if _, ok := volumeToTbsp[u]; ok {
		return ClassVolume
	}
	if _, ok := weightToOz[u]; ok {
		return ClassWeight
	}
	if _, ok := countUnits[u]; ok {
		return ClassCount
	}
	return ClassUnknown
}

// UnsupportedUnitError reports a unit absent from the factor table it was
// looked up in. Callers fall back to the raw quantity and unit; it never
// aborts a recipe save or grocery list.
type UnsupportedUnitError struct {
	Unit  string
	Class Class
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported %s unit: %s", e.Class, e.Unit)
}
