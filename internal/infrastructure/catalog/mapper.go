package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mercalista/backend/internal/domain"
)

// wireUnits maps the spellings supermarket feeds use to canonical units.
// Semantic aliases inside ingredient text are the matching engine's job;
// this table only covers feed abbreviations.
var wireUnits = map[string]string{
	"g":          "g",
	"gr":         "g",
	"grs":        "g",
	"gramos":     "g",
	"kg":         "kg",
	"kgs":        "kg",
	"kilo":       "kg",
	"ml":         "ml",
	"mililitros": "ml",
	"l":          "l",
	"lt":         "l",
	"litro":      "l",
	"litros":     "l",
	"ud":         "piece",
	"uds":        "piece",
	"un":         "piece",
	"unidad":     "piece",
	"unidades":   "piece",
	"pieza":      "piece",
	"piezas":     "piece",
	"piece":      "piece",
	"pieces":     "piece",
}

// MapProducts converts catalog payloads to domain products, dropping rows the
// engine cannot price or buy
func MapProducts(payloads []productPayload) []domain.Product {
	products := make([]domain.Product, 0, len(payloads))
	for _, payload := range payloads {
		if product, ok := mapProduct(payload); ok {
			products = append(products, product)
		}
	}
	return products
}

// mapProduct converts one payload row. Rows without a name, out of stock, or
// with an unparseable or non-positive price are dropped.
func mapProduct(p productPayload) (domain.Product, bool) {
	name := strings.TrimSpace(p.Name)
	if name == "" || !p.InStock {
		return domain.Product{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil || !price.IsPositive() {
		return domain.Product{}, false
	}
	priceCents := price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	packageSize := p.PackageSize
	if packageSize <= 0 {
		packageSize = 1
	}

	return domain.Product{
		ID:              p.ID,
		Name:            name,
		PriceCents:      priceCents,
		Unit:            normalizeWireUnit(p.Unit),
		PackageQuantity: packageSize,
		Category:        p.Category,
		SupermarketID:   p.SupermarketID,
		InStock:         true,
	}, true
}

// normalizeWireUnit lowercases a feed unit spelling and maps it to the
// canonical unit; unknown spellings pass through lowercased
func normalizeWireUnit(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := wireUnits[key]; ok {
		return canonical
	}
	return key
}
