package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func line(id uint64, name string, qty float64, unit, section string) Line {
	return Line{
		IngredientID: id,
		Name:         name,
		Quantity:     fptr(qty),
		Unit:         unit,
		StoreSection: section,
	}
}

func normalized(l Line, qty float64, unit string) Line {
	l.NormalizedQuantity = fptr(qty)
	l.NormalizedUnit = sptr(unit)
	return l
}

func TestAggregateMergesCountUnits(t *testing.T) {
	recipes := []Recipe{
		{Ingredients: []Line{line(1, "garlic", 1, "clove", "PRODUCE")}},
		{Ingredients: []Line{line(1, "garlic", 1, "clove", "PRODUCE")}},
	}

	list := Aggregate(recipes, false)
	entries, ok := list["Produce Section"]
	require.True(t, ok, "expected Produce Section, got %v", list)
	require.Len(t, entries, 1)

	assert.Equal(t, "garlic", entries[0].Name)
	assert.InDelta(t, 2, entries[0].Quantity, 1e-9)
	assert.Equal(t, "cloves", entries[0].Unit)
}

func TestAggregateMergesNormalizedVolume(t *testing.T) {
	// Two half-cups stored as 8 tbsp each merge to "1 cup", singular.
	recipes := []Recipe{
		{Ingredients: []Line{normalized(line(2, "flour", 0.5, "cup", "BAKING"), 8, "tbsp")}},
		{Ingredients: []Line{normalized(line(2, "flour", 0.5, "cup", "BAKING"), 8, "tbsp")}},
	}

	list := Aggregate(recipes, false)
	entries := list["Bread or Bakery Aisle"]
	require.Len(t, entries, 1)

	assert.InDelta(t, 1, entries[0].Quantity, 1e-9)
	assert.Equal(t, "cup", entries[0].Unit)
}

func TestAggregateSameIngredientDifferentUnits(t *testing.T) {
	// An unconvertible unit keeps its own row next to the normalized one.
	recipes := []Recipe{
		{Ingredients: []Line{
			normalized(line(3, "butter", 4, "oz", "DAIRY"), 4, "oz"),
			line(3, "butter", 1, "stick", "DAIRY"),
		}},
	}

	list := Aggregate(recipes, false)
	entries := list["Dairy Aisle"]
	assert.Len(t, entries, 2)
}

func TestAggregateDoubling(t *testing.T) {
	recipes := []Recipe{
		{Ingredients: []Line{normalized(line(4, "milk", 1, "cup", "DAIRY"), 16, "tbsp")}},
	}

	single := Aggregate(recipes, false)["Dairy Aisle"]
	double := Aggregate(append(recipes, recipes...), false)["Dairy Aisle"]
	require.Len(t, single, 1)
	require.Len(t, double, 1)

	assert.InDelta(t, single[0].Quantity*2, double[0].Quantity, 1e-9)
}

func TestAggregateSkipsMissingQuantity(t *testing.T) {
	var warnings []string
	oldWarn := Warn
	Warn = func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	defer func() { Warn = oldWarn }()

	recipes := []Recipe{
		{Ingredients: []Line{{IngredientID: 5, Name: "mystery", Unit: "cup", StoreSection: "OTHER"}}},
	}

	list := Aggregate(recipes, false)
	assert.Empty(t, list)
	assert.Len(t, warnings, 1)
}

func TestAggregateDefaultsSectionAndName(t *testing.T) {
	recipes := []Recipe{
		{Ingredients: []Line{line(6, "", 1, "whole", "")}},
	}

	list := Aggregate(recipes, false)
	entries, ok := list["Other"]
	require.True(t, ok, "expected Other section, got %v", list)
	assert.Equal(t, "Unknown", entries[0].Name)
}

func TestAggregateFirstSeenSectionWins(t *testing.T) {
	recipes := []Recipe{
		{Ingredients: []Line{line(7, "basil", 1, "bunch", "PRODUCE")}},
		{Ingredients: []Line{line(7, "basil", 1, "bunch", "SPICES")}},
	}

	list := Aggregate(recipes, false)
	require.Len(t, list["Produce Section"], 1)
	assert.InDelta(t, 2, list["Produce Section"][0].Quantity, 1e-9)
	assert.Empty(t, list["Spice Aisle"])
}

func TestAggregateOrdersByLastWord(t *testing.T) {
	recipes := []Recipe{
		{Ingredients: []Line{
			line(10, "zucchini", 1, "whole", "PRODUCE"),
			line(11, "red bell pepper", 1, "whole", "PRODUCE"),
			line(12, "green bell pepper", 1, "whole", "PRODUCE"),
			line(13, "carrot", 2, "whole", "PRODUCE"),
		}},
	}

	entries := Aggregate(recipes, false)["Produce Section"]
	require.Len(t, entries, 4)

	// Sorted by last word: carrot, pepper, pepper, zucchini — and the two
	// peppers keep their first-seen order.
	assert.Equal(t, "carrot", entries[0].Name)
	assert.Equal(t, "red bell pepper", entries[1].Name)
	assert.Equal(t, "green bell pepper", entries[2].Name)
	assert.Equal(t, "zucchini", entries[3].Name)
}

func TestAggregateMetricDisplay(t *testing.T) {
	recipes := []Recipe{
		{Ingredients: []Line{normalized(line(20, "sugar", 1, "cup", "BAKING"), 16, "tbsp")}},
	}

	entries := Aggregate(recipes, true)["Bread or Bakery Aisle"]
	require.Len(t, entries, 1)

	// 16 tbsp = 236.59 ml, rounded to the nearest 10.
	assert.Equal(t, "ml", entries[0].Unit)
	assert.InDelta(t, 240, entries[0].Quantity, 1e-9)
}

func TestFormatSectionName(t *testing.T) {
	assert.Equal(t, "Meat & Seafood Aisle", formatSectionName("MEAT_SEAFOOD"))
	assert.Equal(t, "Frozen Foods", formatSectionName("FROZEN"))
	assert.Equal(t, "Bulk Bins", formatSectionName("Bulk Bins"))
}
