package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProducts(t *testing.T) {
	payloads := []productPayload{
		{
			ID:            "p1",
			Name:          "Tomate Pera",
			Price:         "1.25",
			Unit:          "GR",
			PackageSize:   500,
			Category:      "verduras",
			SupermarketID: "mercadona",
			InStock:       true,
		},
		{
			ID:      "p2",
			Name:    "Tomate Rama",
			Price:   "1.99",
			Unit:    "GR",
			InStock: false, // out of stock
		},
		{
			ID:      "p3",
			Name:    "",
			Price:   "2.00",
			InStock: true, // blank name
		},
		{
			ID:      "p4",
			Name:    "Tomate Frito",
			Price:   "gratis",
			InStock: true, // unparseable price
		},
		{
			ID:      "p5",
			Name:    "Tomate Triturado",
			Price:   "0.00",
			InStock: true, // non-positive price
		},
	}

	products := MapProducts(payloads)

	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Tomate Pera", products[0].Name)
	assert.Equal(t, int64(125), products[0].PriceCents)
	assert.Equal(t, "g", products[0].Unit)
	assert.Equal(t, float64(500), products[0].PackageQuantity)
	assert.Equal(t, "verduras", products[0].Category)
	assert.Equal(t, "mercadona", products[0].SupermarketID)
}

func TestMapProduct_PriceConversion(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"1.25", 125},
		{"0.89", 89},
		{"2.50", 250},
		{"10", 1000},
		{"0.999", 100}, // rounds to nearest cent
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			product, ok := mapProduct(productPayload{
				ID:      "p1",
				Name:    "Arroz",
				Price:   tt.price,
				Unit:    "kg",
				InStock: true,
			})
			require.True(t, ok)
			assert.Equal(t, tt.want, product.PriceCents)
		})
	}
}

func TestMapProduct_DefaultsPackageSize(t *testing.T) {
	product, ok := mapProduct(productPayload{
		ID:      "p1",
		Name:    "Pan de Molde",
		Price:   "1.10",
		Unit:    "UD",
		InStock: true,
	})

	require.True(t, ok)
	assert.Equal(t, float64(1), product.PackageQuantity)
	assert.Equal(t, "piece", product.Unit)
}

func TestNormalizeWireUnit(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"GR", "g"},
		{" Kg ", "kg"},
		{"Litro", "l"},
		{"LT", "l"},
		{"ML", "ml"},
		{"UD", "piece"},
		{"Unidades", "piece"},
		{"g", "g"},
		{"docena", "docena"}, // unknown spellings pass through lowercased
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeWireUnit(tt.raw))
		})
	}
}
