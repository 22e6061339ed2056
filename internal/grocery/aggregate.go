// Package grocery builds a consolidated grocery list from a set of
// recipes. Ingredient lines are merged per (ingredient, effective unit),
// summed in their base units, re-expressed in the viewer's preferred
// display units and grouped under human-readable store-section labels.
//
// Aggregation is a pure fold over its inputs: it never touches storage and
// a malformed line degrades to a warning, never to a failed list.
package grocery

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/prepmyweek/prepmyweek-api/internal/units"
)

// Line is one ingredient's usage within one recipe, as stored.
// NormalizedQuantity/NormalizedUnit are set when the write path converted
// the raw pair to a base unit; aggregation prefers them over the raw
// values ("effective" quantity and unit).
type Line struct {
	IngredientID       uint64
	Name               string
	Quantity           *float64
	Unit               string
	NormalizedQuantity *float64
	NormalizedUnit     *string
	StoreSection       string
}

// Recipe is the slice of lines contributed by one recipe. Only the
// ingredients matter to aggregation; identity and metadata stay with the
// caller.
type Recipe struct {
	Ingredients []Line
}

// Entry is one merged row of the grocery list. It exists only for the
// duration of a response.
type Entry struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	StoreSection string  `json:"storeSection"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// List maps display section labels to their merged, ordered entries.
type List map[string][]Entry

// sectionLabels maps internal store-section keys to shopper-facing labels.
// Unmapped keys pass through verbatim.
var sectionLabels = map[string]string{
	"DAIRY":         "Dairy Aisle",
	"BEVERAGE":      "Beverages",
	"DELI":          "Deli Aisle",
	"BREAKFAST":     "Breakfast",
	"MEAT_SEAFOOD":  "Meat & Seafood Aisle",
	"BAKING":        "Bread or Bakery Aisle",
	"CHEESE":        "Cheese Aisle",
	"CANNED":        "Canned Goods",
	"DRY_GOOD":      "Dry Goods",
	"SNACK":         "Snack Aisle",
	"PRODUCE":       "Produce Section",
	"FROZEN":        "Frozen Foods",
	"INTERNATIONAL": "International Foods",
	"SPICES":        "Spice Aisle",
	"OTHER":         "Other",
}

func formatSectionName(raw string) string {
	if label, ok := sectionLabels[raw]; ok {
		return label
	}
	return raw
}

// Warn is called for lines skipped during aggregation. Swappable so the
// package stays free of I/O in tests.
var Warn = func(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// merged accumulates one (ingredient, unit) bucket while input is consumed.
type merged struct {
	id       uint64
	name     string
	quantity float64
	unit     string
	section  string
}

// Aggregate merges the ingredient lines of the given recipes into a
// grocery list.
//
// Lines merge when they share ingredient ID and effective unit, regardless
// of recipe; the section they land in is the one they were first seen
// with. Lines with a missing or NaN effective quantity are skipped with a
// warning. Summed base quantities are converted to best display units per
// preferMetric, pluralized, and each section is ordered alphabetically by
// the last word of the ingredient name (first-seen order breaks ties) so
// variants like "red bell pepper" and "green bell pepper" shelve together.
func Aggregate(recipes []Recipe, preferMetric bool) List {
	byKey := make(map[string]*merged)
	order := make([]*merged, 0)

	for _, recipe := range recipes {
		for _, line := range recipe.Ingredients {
			section := line.StoreSection
			if section == "" {
				section = "Other"
			}
			name := line.Name
			if name == "" {
				name = "Unknown"
			}

			quantity := line.Quantity
			if line.NormalizedQuantity != nil {
				quantity = line.NormalizedQuantity
			}
			unit := line.Unit
			if line.NormalizedUnit != nil {
				unit = *line.NormalizedUnit
			}

			if quantity == nil || math.IsNaN(*quantity) {
				Warn("grocery: skipping ingredient %q: no usable quantity", name)
				continue
			}

			// Merging is global: a later occurrence in another section still
			// folds into the first-seen row, so the first section wins.
			key := fmt.Sprintf("%d-%s", line.IngredientID, unit)
			if existing, ok := byKey[key]; ok {
				existing.quantity += *quantity
				continue
			}

			m := &merged{
				id:       line.IngredientID,
				name:     name,
				quantity: *quantity,
				unit:     unit,
				section:  section,
			}
			byKey[key] = m
			order = append(order, m)
		}
	}

	result := make(List)

	for _, m := range order {
		display := units.Display{Amount: m.quantity, Unit: m.unit}

		switch units.Classify(m.unit) {
		case units.ClassVolume:
			display = units.BestVolumeUnit(m.quantity, preferMetric)
		case units.ClassWeight:
			display = units.BestWeightUnit(m.quantity, preferMetric)
		}

		label := formatSectionName(m.section)
		result[label] = append(result[label], Entry{
			ID:           m.id,
			Name:         m.name,
			StoreSection: m.section,
			Quantity:     display.Amount,
			Unit:         units.Pluralize(display.Unit, display.Amount),
		})
	}

	for label := range result {
		entries := result[label]
		sort.SliceStable(entries, func(i, j int) bool {
			return lastWord(entries[i].Name) < lastWord(entries[j].Name)
		})
		result[label] = entries
	}

	return result
}

func lastWord(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
