package usecase

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	converter := NewUnitConverter()

	tests := []struct {
		name     string
		quantity float64
		fromUnit string
		toUnit   string
		expected float64
		ok       bool
	}{
		{
			name:     "grams to kilograms",
			quantity: 1500,
			fromUnit: "g",
			toUnit:   "kg",
			expected: 1.5,
			ok:       true,
		},
		{
			name:     "kilograms to grams",
			quantity: 2,
			fromUnit: "kg",
			toUnit:   "g",
			expected: 2000,
			ok:       true,
		},
		{
			name:     "milliliters to liters",
			quantity: 250,
			fromUnit: "ml",
			toUnit:   "l",
			expected: 0.25,
			ok:       true,
		},
		{
			name:     "cups to milliliters",
			quantity: 2,
			fromUnit: "cup",
			toUnit:   "ml",
			expected: 473.176,
			ok:       true,
		},
		{
			name:     "tablespoons to teaspoons",
			quantity: 1,
			fromUnit: "tbsp",
			toUnit:   "tsp",
			expected: 3.0,
			ok:       true,
		},
		{
			name:     "identity conversion",
			quantity: 42,
			fromUnit: "g",
			toUnit:   "g",
			expected: 42,
			ok:       true,
		},
		{
			name:     "identity conversion for unknown unit",
			quantity: 3,
			fromUnit: "bunch",
			toUnit:   "bunch",
			expected: 3,
			ok:       true,
		},
		{
			name:     "alias spelling converts",
			quantity: 1000,
			fromUnit: "gramos",
			toUnit:   "kilo",
			expected: 1,
			ok:       true,
		},
		{
			name:     "weight to volume is incompatible",
			quantity: 100,
			fromUnit: "g",
			toUnit:   "ml",
			expected: 0,
			ok:       false,
		},
		{
			name:     "piece to weight is incompatible",
			quantity: 2,
			fromUnit: "piece",
			toUnit:   "kg",
			expected: 0,
			ok:       false,
		},
		{
			name:     "unknown unit to known unit is incompatible",
			quantity: 1,
			fromUnit: "bunch",
			toUnit:   "g",
			expected: 0,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := converter.Convert(tt.quantity, tt.fromUnit, tt.toUnit)
			if ok != tt.ok {
				t.Errorf("Convert(%v, %q, %q) ok = %v, expected %v",
					tt.quantity, tt.fromUnit, tt.toUnit, ok, tt.ok)
			}
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("Convert(%v, %q, %q) = %v, expected %v",
					tt.quantity, tt.fromUnit, tt.toUnit, result, tt.expected)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	converter := NewUnitConverter()

	pairs := []struct {
		from string
		to   string
	}{
		{"g", "kg"},
		{"kg", "g"},
		{"ml", "l"},
		{"tsp", "tbsp"},
		{"cup", "ml"},
		{"cup", "tsp"},
		{"piece", "piece"},
	}

	for _, p := range pairs {
		t.Run(p.from+"_"+p.to, func(t *testing.T) {
			original := 123.45
			there, ok := converter.Convert(original, p.from, p.to)
			if !ok {
				t.Fatalf("Convert(%q, %q) unexpectedly incompatible", p.from, p.to)
			}
			back, ok := converter.Convert(there, p.to, p.from)
			if !ok {
				t.Fatalf("Convert(%q, %q) unexpectedly incompatible", p.to, p.from)
			}
			if math.Abs(back-original) > 1e-9 {
				t.Errorf("round trip %q->%q->%q = %v, expected %v", p.from, p.to, p.from, back, original)
			}
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	converter := NewUnitConverter()

	tests := []struct {
		input    string
		expected string
	}{
		{"grams", "g"},
		{"GRAMOS", "g"},
		{"Kilo", "kg"},
		{"litros", "l"},
		{"LT", "l"},
		{"cucharada", "tbsp"},
		{"cucharaditas", "tsp"},
		{"tazas", "cup"},
		{"unidades", "piece"},
		{"PIEZA", "piece"},
		{" piece ", "piece"},
		{"botella", "botella"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := converter.NormalizeUnit(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeUnit(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCalculatePricePerUnit(t *testing.T) {
	converter := NewUnitConverter()

	tests := []struct {
		name          string
		priceCents    int64
		packageSize   float64
		packageUnit   string
		expectedPrice int64
		expectedUnit  string
	}{
		{
			name:          "500g package normalizes to price per kg",
			priceCents:    450,
			packageSize:   500,
			packageUnit:   "g",
			expectedPrice: 900,
			expectedUnit:  "kg",
		},
		{
			name:          "2kg package",
			priceCents:    1099,
			packageSize:   2,
			packageUnit:   "kg",
			expectedPrice: 550,
			expectedUnit:  "kg",
		},
		{
			name:          "750ml bottle normalizes to price per liter",
			priceCents:    199,
			packageSize:   750,
			packageUnit:   "ml",
			expectedPrice: 265,
			expectedUnit:  "l",
		},
		{
			name:          "one liter package",
			priceCents:    250,
			packageSize:   1,
			packageUnit:   "l",
			expectedPrice: 250,
			expectedUnit:  "l",
		},
		{
			name:          "six pieces",
			priceCents:    300,
			packageSize:   6,
			packageUnit:   "piece",
			expectedPrice: 50,
			expectedUnit:  "piece",
		},
		{
			name:          "spanish unit spelling",
			priceCents:    480,
			packageSize:   6,
			packageUnit:   "unidades",
			expectedPrice: 80,
			expectedUnit:  "piece",
		},
		{
			name:          "zero package size yields zero",
			priceCents:    450,
			packageSize:   0,
			packageUnit:   "g",
			expectedPrice: 0,
			expectedUnit:  "kg",
		},
		{
			name:          "unknown unit prices per that unit",
			priceCents:    120,
			packageSize:   4,
			packageUnit:   "bunch",
			expectedPrice: 30,
			expectedUnit:  "bunch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, unit := converter.CalculatePricePerUnit(tt.priceCents, tt.packageSize, tt.packageUnit)
			if price != tt.expectedPrice {
				t.Errorf("CalculatePricePerUnit() price = %d, expected %d", price, tt.expectedPrice)
			}
			if unit != tt.expectedUnit {
				t.Errorf("CalculatePricePerUnit() unit = %q, expected %q", unit, tt.expectedUnit)
			}
		})
	}
}

func TestQuantityToBuy(t *testing.T) {
	converter := NewUnitConverter()

	tests := []struct {
		name            string
		quantityNeeded  float64
		unitNeeded      string
		packageQuantity float64
		packageUnit     string
		expected        int
		ok              bool
	}{
		{
			name:            "needed fits in one package",
			quantityNeeded:  200,
			unitNeeded:      "g",
			packageQuantity: 500,
			packageUnit:     "g",
			expected:        1,
			ok:              true,
		},
		{
			name:            "needed spans two packages after conversion",
			quantityNeeded:  1,
			unitNeeded:      "kg",
			packageQuantity: 500,
			packageUnit:     "g",
			expected:        2,
			ok:              true,
		},
		{
			name:            "exact multiple",
			quantityNeeded:  1000,
			unitNeeded:      "ml",
			packageQuantity: 500,
			packageUnit:     "ml",
			expected:        2,
			ok:              true,
		},
		{
			name:            "volume recipe unit against liter package",
			quantityNeeded:  2,
			unitNeeded:      "cup",
			packageQuantity: 1,
			packageUnit:     "l",
			expected:        1,
			ok:              true,
		},
		{
			name:            "incompatible units default to one package",
			quantityNeeded:  2,
			unitNeeded:      "piece",
			packageQuantity: 500,
			packageUnit:     "g",
			expected:        1,
			ok:              false,
		},
		{
			name:            "zero package quantity defaults to one package",
			quantityNeeded:  100,
			unitNeeded:      "g",
			packageQuantity: 0,
			packageUnit:     "g",
			expected:        1,
			ok:              true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := converter.QuantityToBuy(tt.quantityNeeded, tt.unitNeeded, tt.packageQuantity, tt.packageUnit)
			if result != tt.expected {
				t.Errorf("QuantityToBuy() = %d, expected %d", result, tt.expected)
			}
			if ok != tt.ok {
				t.Errorf("QuantityToBuy() ok = %v, expected %v", ok, tt.ok)
			}
		})
	}
}
