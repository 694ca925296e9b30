package usecase

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mercalista/backend/internal/domain"
)

// Unit families. Conversion is only defined within a family; cross-family
// conversion reports incompatible rather than erroring.
const (
	familyWeight  = "weight"
	familyVolume  = "volume"
	familyCount   = "count"
	familyUnknown = "unknown"
)

// toBaseFactor maps each known unit to its factor into the family base unit:
// grams for weight, milliliters for volume, pieces for count.
var toBaseFactor = map[string]float64{
	domain.UnitGram:       1,
	domain.UnitKilogram:   1000,
	domain.UnitMilliliter: 1,
	domain.UnitLiter:      1000,
	domain.UnitTeaspoon:   4.92892,
	domain.UnitTablespoon: 14.7868,
	domain.UnitCup:        236.588,
	domain.UnitPiece:      1,
}

var unitFamilies = map[string]string{
	domain.UnitGram:       familyWeight,
	domain.UnitKilogram:   familyWeight,
	domain.UnitMilliliter: familyVolume,
	domain.UnitLiter:      familyVolume,
	domain.UnitTeaspoon:   familyVolume,
	domain.UnitTablespoon: familyVolume,
	domain.UnitCup:        familyVolume,
	domain.UnitPiece:      familyCount,
}

// unitAliases maps common English and Spanish unit spellings to canonical
// unit identifiers
var unitAliases = map[string]string{
	"gram":         domain.UnitGram,
	"grams":        domain.UnitGram,
	"gr":           domain.UnitGram,
	"gramo":        domain.UnitGram,
	"gramos":       domain.UnitGram,
	"kilogram":     domain.UnitKilogram,
	"kilograms":    domain.UnitKilogram,
	"kilo":         domain.UnitKilogram,
	"kilos":        domain.UnitKilogram,
	"milliliter":   domain.UnitMilliliter,
	"milliliters":  domain.UnitMilliliter,
	"mililitro":    domain.UnitMilliliter,
	"mililitros":   domain.UnitMilliliter,
	"liter":        domain.UnitLiter,
	"liters":       domain.UnitLiter,
	"litre":        domain.UnitLiter,
	"litres":       domain.UnitLiter,
	"litro":        domain.UnitLiter,
	"litros":       domain.UnitLiter,
	"lt":           domain.UnitLiter,
	"teaspoon":     domain.UnitTeaspoon,
	"teaspoons":    domain.UnitTeaspoon,
	"cucharadita":  domain.UnitTeaspoon,
	"cucharaditas": domain.UnitTeaspoon,
	"tablespoon":   domain.UnitTablespoon,
	"tablespoons":  domain.UnitTablespoon,
	"cucharada":    domain.UnitTablespoon,
	"cucharadas":   domain.UnitTablespoon,
	"cups":         domain.UnitCup,
	"taza":         domain.UnitCup,
	"tazas":        domain.UnitCup,
	"pieces":       domain.UnitPiece,
	"pc":           domain.UnitPiece,
	"un":           domain.UnitPiece,
	"unit":         domain.UnitPiece,
	"units":        domain.UnitPiece,
	"unidad":       domain.UnitPiece,
	"unidades":     domain.UnitPiece,
	"pieza":        domain.UnitPiece,
	"piezas":       domain.UnitPiece,
}

// UnitConverter performs conversions between compatible measurement units
// and computes normalized price-per-unit figures
type UnitConverter struct{}

// NewUnitConverter creates a new unit converter
func NewUnitConverter() *UnitConverter {
	return &UnitConverter{}
}

// NormalizeUnit maps a raw unit spelling to its canonical identifier.
// Unknown spellings are returned lowercased and trimmed.
func (c *UnitConverter) NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitAliases[u]; ok {
		return canonical
	}
	return u
}

// family returns the unit family for a canonical unit
func (c *UnitConverter) family(unit string) string {
	if f, ok := unitFamilies[unit]; ok {
		return f
	}
	return familyUnknown
}

// Compatible reports whether two units can be converted into each other
func (c *UnitConverter) Compatible(fromUnit, toUnit string) bool {
	_, ok := c.Convert(1, fromUnit, toUnit)
	return ok
}

// Convert converts a quantity between units. The boolean result is false
// when the units belong to different families (cannot compare); callers
// treat that as "incompatible", not as an error.
func (c *UnitConverter) Convert(quantity float64, fromUnit, toUnit string) (float64, bool) {
	from := c.NormalizeUnit(fromUnit)
	to := c.NormalizeUnit(toUnit)

	// Identity conversion always succeeds, even for unknown units
	if from == to {
		return quantity, true
	}

	fromFamily := c.family(from)
	toFamily := c.family(to)
	if fromFamily == familyUnknown || toFamily == familyUnknown || fromFamily != toFamily {
		return 0, false
	}

	return quantity * toBaseFactor[from] / toBaseFactor[to], true
}

// CalculatePricePerUnit normalizes a package price to a comparable reference
// unit: cents per kilogram for weight, cents per liter for volume, cents per
// piece for count. Returns the rounded price and the reference unit. A
// non-positive package size yields zero.
func (c *UnitConverter) CalculatePricePerUnit(priceCents int64, packageSize float64, packageUnit string) (int64, string) {
	unit := c.NormalizeUnit(packageUnit)
	refUnit, refScale := referenceUnit(c.family(unit))
	if refUnit == "" {
		refUnit = unit
	}
	if packageSize <= 0 {
		return 0, refUnit
	}

	baseQuantity := packageSize
	if factor, ok := toBaseFactor[unit]; ok {
		baseQuantity = packageSize * factor
	}

	// Exact decimal division so rounding happens once, at the cent boundary
	perRef := decimal.NewFromInt(priceCents).
		Mul(decimal.NewFromInt(refScale)).
		Div(decimal.NewFromFloat(baseQuantity)).
		Round(0)

	return perRef.IntPart(), refUnit
}

// referenceUnit returns the display unit and base-unit scale used for
// price-per-unit comparison within a family
func referenceUnit(family string) (string, int64) {
	switch family {
	case familyWeight:
		return domain.UnitKilogram, 1000
	case familyVolume:
		return domain.UnitLiter, 1000
	case familyCount:
		return domain.UnitPiece, 1
	default:
		return "", 1
	}
}

// QuantityToBuy computes how many packages cover a needed quantity. When the
// needed unit cannot be converted to the package unit the result is a
// conservative single package and ok is false.
func (c *UnitConverter) QuantityToBuy(quantityNeeded float64, unitNeeded string, packageQuantity float64, packageUnit string) (int, bool) {
	converted, ok := c.Convert(quantityNeeded, unitNeeded, packageUnit)
	if !ok {
		return 1, false
	}
	if packageQuantity <= 0 || converted <= 0 {
		return 1, true
	}

	packages := int(math.Ceil(converted / packageQuantity))
	if packages < 1 {
		packages = 1
	}
	return packages, true
}
