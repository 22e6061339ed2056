package units

import (
	"math"
	"strings"
)

// Display is a quantity re-expressed in a human-facing unit.
type Display struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// VolumeToBase converts a volume quantity to tablespoons.
func VolumeToBase(quantity float64, unit string) (float64, error) {
	factor, ok := volumeToTbsp[strings.ToLower(unit)]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: unit, Class: ClassVolume}
	}
	return quantity * factor, nil
}

// WeightToBase converts a weight quantity to ounces.
func WeightToBase(quantity float64, unit string) (float64, error) {
	factor, ok := weightToOz[strings.ToLower(unit)]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: unit, Class: ClassWeight}
	}
	return quantity * factor, nil
}

// displayFractions are the rounding steps for imperial volume display.
// Everything else rounds to 1/100.
var displayFractions = map[string]float64{
	"tbsp": 0.25,
	"tsp":  0.125,
	"cup":  0.25, // rarely hit, keeps cup amounts tidy
}

func roundToFraction(value float64, unit string) float64 {
	step, ok := displayFractions[unit]
	if !ok {
		step = 0.01
	}
	return math.Round(value/step) * step
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// imperialVolumeLadder is ordered largest to smallest; the first unit whose
// factor fits the amount wins.
var imperialVolumeLadder = []struct {
	unit   string
	factor float64
}{
	{"cup", 16},
	{"tbsp", 1},
	{"tsp", 1.0 / 3.0},
}

// BestVolumeUnit picks a display unit for a base (tablespoon) amount.
//
// Imperial descends cup, tbsp, tsp and rounds to the unit's fraction step;
// amounts under one teaspoon fall back to teaspoons. Metric renders
// milliliters, rounded to 1 decimal below 10 ml and to the nearest 10 ml
// at or above, bumping a rounded-away tiny amount up to 1 ml so a real
// quantity never displays as zero.
func BestVolumeUnit(amount float64, preferMetric bool) Display {
	if preferMetric {
		ml := amount * mlPerTbsp
		if ml < 10 {
			ml = math.Round(ml*10) / 10
		} else {
			ml = math.Round(ml/10) * 10
		}
		if ml == 0 && amount > 0 {
			ml = 1
		}
		return Display{Amount: ml, Unit: "ml"}
	}

	for _, u := range imperialVolumeLadder {
		if amount >= u.factor {
			return Display{Amount: roundToFraction(amount/u.factor, u.unit), Unit: u.unit}
		}
	}
	// below one tsp: tbsp -> tsp is *3
	return Display{Amount: round2(amount * 3), Unit: "tsp"}
}

// BestWeightUnit picks a display unit for a base (ounce) amount.
//
// Imperial descends lb, oz with 2-decimal rounding. Metric renders grams
// rounded to the nearest 5 g, switching to kilograms (2 decimals) at
// 1000 g and above.
func BestWeightUnit(amount float64, preferMetric bool) Display {
	if preferMetric {
		grams := math.Round(amount*gramsPerOz/5) * 5
		if grams >= 1000 {
			return Display{Amount: round2(grams / 1000), Unit: "kg"}
		}
		return Display{Amount: grams, Unit: "g"}
	}

	if amount >= 16 {
		return Display{Amount: round2(amount / 16), Unit: "lb"}
	}
	if amount >= 1 {
		return Display{Amount: round2(amount), Unit: "oz"}
	}
	return Display{Amount: amount, Unit: "oz"}
}

// Normalized is the outcome of normalizing a raw quantity/unit pair at
// write time. Converted reports whether a base conversion applied; when it
// is false the raw values are carried through unchanged (count units,
// unknown units, or a factor-table miss) and the caller persists those.
type Normalized struct {
	Quantity  float64
	Unit      string
	Converted bool
}

// Normalize converts a raw quantity/unit to its class base unit.
// Conversion is a best-effort enrichment: any unit that cannot be
// converted comes back unconverted rather than as an error, so a recipe
// save never fails on an odd unit.
func Normalize(quantity float64, unit string) Normalized {
	lower := strings.ToLower(unit)
	passthrough := Normalized{Quantity: quantity, Unit: lower}

	switch Classify(unit) {
	case ClassVolume:
		base, err := VolumeToBase(quantity, lower)
		if err != nil {
			return passthrough
		}
		return Normalized{Quantity: base, Unit: BaseVolumeUnit, Converted: true}
	case ClassWeight:
		base, err := WeightToBase(quantity, lower)
		if err != nil {
			return passthrough
		}
		return Normalized{Quantity: base, Unit: BaseWeightUnit, Converted: true}
	default:
		return passthrough
	}
}
