package units

import (
	"math"
	"strings"
)

// customPlurals overrides default pluralization for irregular unit names.
var customPlurals = map[string]string{
	"whole":   "whole",
	"clove":   "cloves",
	"stalk":   "stalks",
	"package": "packages",
	"slice":   "slices",
	"slices":  "slices",
	"bunch":   "bunches",
	"fillet":  "fillets",
	"pinch":   "pinches",
}

// Pluralize inflects a unit name for the given amount. Equality to one is
// epsilon-tolerant (0.01) to absorb float rounding from conversion, and
// metric ml/g are never pluralized. Units without an irregular form get a
// trailing "s".
func Pluralize(unit string, amount float64) string {
	if unit == "" {
		return ""
	}

	normalized := strings.ToLower(unit)
	if normalized == "ml" || normalized == "g" {
		return unit
	}

	if math.Abs(amount-1) <= 0.01 {
		return unit
	}

	if plural, ok := customPlurals[normalized]; ok {
		return plural
	}
	return unit + "s"
}
