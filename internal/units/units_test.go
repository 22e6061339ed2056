package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		unit string
		want Class
	}{
		{"tsp", ClassVolume},
		{"tbsp", ClassVolume},
		{"TBSP", ClassVolume},
		{"fl oz", ClassVolume},
		{"cup", ClassVolume},
		{"gallon", ClassVolume},
		{"ml", ClassVolume},
		{"l", ClassVolume},
		{"oz", ClassWeight},
		{"lb", ClassWeight},
		{"G", ClassWeight},
		{"kg", ClassWeight},
		{"clove", ClassCount},
		{"Pinch", ClassCount},
		{"whole", ClassCount},
		{"smidgen", ClassUnknown},
		{"", ClassUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.unit), "unit %q", tt.unit)
	}
}

func TestVolumeToBase(t *testing.T) {
	tests := []struct {
		quantity float64
		unit     string
		want     float64
	}{
		{3, "tsp", 1},
		{1, "tbsp", 1},
		{1, "cup", 16},
		{2, "fl oz", 4},
		{1, "quart", 64},
		{1, "gallon", 256},
	}
	for _, tt := range tests {
		got, err := VolumeToBase(tt.quantity, tt.unit)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "%g %s", tt.quantity, tt.unit)
	}

	// Metric round trip: a liter is 1000 ml worth of tablespoons.
	liter, err := VolumeToBase(1, "l")
	require.NoError(t, err)
	milliliters, err := VolumeToBase(1000, "ml")
	require.NoError(t, err)
	assert.InDelta(t, liter, milliliters, 1e-9)

	_, err = VolumeToBase(1, "clove")
	var unsupported *UnsupportedUnitError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ClassVolume, unsupported.Class)
}

func TestWeightToBase(t *testing.T) {
	got, err := WeightToBase(2, "lb")
	require.NoError(t, err)
	assert.InDelta(t, 32, got, 1e-9)

	got, err = WeightToBase(1000, "g")
	require.NoError(t, err)
	kilo, err := WeightToBase(1, "kg")
	require.NoError(t, err)
	assert.InDelta(t, kilo, got, 1e-9)
}

func TestBestVolumeUnitImperial(t *testing.T) {
	tests := []struct {
		amount     float64
		wantAmount float64
		wantUnit   string
	}{
		{32, 2, "cup"},           // 2 cups
		{16, 1, "cup"},           // exactly one cup
		{8, 8, "tbsp"},           // under a cup stays tbsp
		{0.5, 1.5, "tsp"},        // between tsp and tbsp
		{1.0 / 3.0, 1, "tsp"},    // exactly one tsp
		{0.1, 0.3, "tsp"},        // below one tsp: raw *3, round2
		{20, 1.25, "cup"},        // quarter-cup step
	}
	for _, tt := range tests {
		got := BestVolumeUnit(tt.amount, false)
		assert.Equal(t, tt.wantUnit, got.Unit, "amount %g", tt.amount)
		assert.InDelta(t, tt.wantAmount, got.Amount, 1e-9, "amount %g", tt.amount)
	}
}

func TestBestVolumeUnitMetric(t *testing.T) {
	// 1 tbsp = 14.7868 ml, at or above 10 ml rounds to nearest 10.
	got := BestVolumeUnit(1, true)
	assert.Equal(t, Display{Amount: 10, Unit: "ml"}, got)

	// Below 10 ml keeps one decimal.
	got = BestVolumeUnit(0.5, true)
	assert.Equal(t, Display{Amount: 7.4, Unit: "ml"}, got)

	// A tiny real amount never renders as zero.
	got = BestVolumeUnit(0.001, true)
	assert.Equal(t, Display{Amount: 1, Unit: "ml"}, got)
}

func TestBestWeightUnitImperial(t *testing.T) {
	got := BestWeightUnit(32, false)
	assert.Equal(t, Display{Amount: 2, Unit: "lb"}, got)

	got = BestWeightUnit(8, false)
	assert.Equal(t, Display{Amount: 8, Unit: "oz"}, got)

	// Below one ounce passes through unrounded.
	got = BestWeightUnit(0.123, false)
	assert.Equal(t, Display{Amount: 0.123, Unit: "oz"}, got)
}

func TestBestWeightUnitMetric(t *testing.T) {
	// 1 oz = 28.3495 g, nearest 5 g.
	got := BestWeightUnit(1, true)
	assert.Equal(t, Display{Amount: 30, Unit: "g"}, got)

	// 1000 g and above switches to kg.
	kg := BestWeightUnit(36, true) // 1020.582 g -> 1020 g -> 1.02 kg
	assert.Equal(t, "kg", kg.Unit)
	assert.InDelta(t, 1.02, kg.Amount, 1e-9)
}

func TestNormalize(t *testing.T) {
	n := Normalize(2, "Cup")
	assert.True(t, n.Converted)
	assert.Equal(t, BaseVolumeUnit, n.Unit)
	assert.InDelta(t, 32, n.Quantity, 1e-9)

	n = Normalize(1.5, "lb")
	assert.True(t, n.Converted)
	assert.Equal(t, BaseWeightUnit, n.Unit)
	assert.InDelta(t, 24, n.Quantity, 1e-9)

	// Count and unknown units pass through with a lowered unit name.
	n = Normalize(3, "Clove")
	assert.False(t, n.Converted)
	assert.Equal(t, "clove", n.Unit)
	assert.InDelta(t, 3, n.Quantity, 1e-9)

	n = Normalize(1, "smidgen")
	assert.False(t, n.Converted)
	assert.Equal(t, "smidgen", n.Unit)
}

func TestNormalizeRoundTrip(t *testing.T) {
	// Sum in base units, then re-display: 1 cup + 8 tbsp = 1.5 cups.
	a := Normalize(1, "cup")
	b := Normalize(8, "tbsp")
	require.True(t, a.Converted)
	require.True(t, b.Converted)

	got := BestVolumeUnit(a.Quantity+b.Quantity, false)
	assert.Equal(t, Display{Amount: 1.5, Unit: "cup"}, got)
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		unit   string
		amount float64
		want   string
	}{
		{"cup", 2, "cups"},
		{"cup", 1, "cup"},
		{"cup", 1.005, "cup"}, // within epsilon of singular
		{"clove", 3, "cloves"},
		{"pinch", 2, "pinches"},
		{"bunch", 2, "bunches"},
		{"whole", 4, "whole"},
		{"ml", 250, "ml"}, // metric symbols never pluralize
		{"g", 500, "g"},
		{"", 2, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Pluralize(tt.unit, tt.amount), "%g %s", tt.amount, tt.unit)
	}
}

func TestForDisplay(t *testing.T) {
	// 32 tbsp imperial -> "2 cups"
	fq := ForDisplay(32, "tbsp", false)
	assert.Equal(t, "2 cups", fq.Formatted)
	assert.Equal(t, "cups", fq.Unit)
	assert.InDelta(t, 2, fq.Quantity, 1e-9)

	// Count units render as-is.
	fq = ForDisplay(2, "clove", false)
	assert.Equal(t, "2 cloves", fq.Formatted)

	// Metric weight.
	fq = ForDisplay(1, "oz", true)
	assert.Equal(t, "30 g", fq.Formatted)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2", FormatAmount(2))
	assert.Equal(t, "1.5", FormatAmount(1.5))
	assert.Equal(t, "0.25", FormatAmount(0.25))
}

func TestUnsupportedUnitError(t *testing.T) {
	err := &UnsupportedUnitError{Unit: "smidgen", Class: ClassVolume}
	assert.Equal(t, "unsupported volume unit: smidgen", err.Error())
}

func TestRoundToFractionSteps(t *testing.T) {
	// tsp rounds on eighths, tbsp and cup on quarters.
	assert.InDelta(t, 1.125, roundToFraction(1.1, "tsp"), 1e-9)
	assert.InDelta(t, 1.25, roundToFraction(1.2, "tbsp"), 1e-9)
	assert.InDelta(t, 1.01, roundToFraction(1.012, "oz"), 1e-9)
	assert.False(t, math.IsNaN(roundToFraction(0, "tsp")))
}
