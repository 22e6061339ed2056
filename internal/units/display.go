package units

import "strconv"

// FormattedQuantity is the display rendering of an ingredient quantity:
// the numeric amount in the chosen display unit, the pluralized unit name,
// and the two joined for direct rendering (e.g. "2 cups").
type FormattedQuantity struct {
	Quantity  float64 `json:"displayQuantity"`
	Unit      string  `json:"displayUnit"`
	Formatted string  `json:"formattedQuantity"`
}

// ForDisplay re-expresses a stored quantity/unit pair for presentation.
// The pair is expected to be the line's effective values (normalized when
// present, raw otherwise); count and unknown units pass through unchanged.
func ForDisplay(quantity float64, unit string, preferMetric bool) FormattedQuantity {
	d := Display{Amount: quantity, Unit: unit}

	switch Classify(unit) {
	case ClassVolume:
		d = BestVolumeUnit(quantity, preferMetric)
	case ClassWeight:
		d = BestWeightUnit(quantity, preferMetric)
	}

	unitName := Pluralize(d.Unit, d.Amount)
	formatted := FormatAmount(d.Amount)
	if unitName != "" {
		formatted += " " + unitName
	}

	return FormattedQuantity{Quantity: d.Amount, Unit: unitName, Formatted: formatted}
}

// FormatAmount renders a display amount without trailing zeros.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
