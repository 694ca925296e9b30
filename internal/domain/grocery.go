package domain

// Measurement units understood by the unit converter. Units outside this set
// only convert to themselves.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitTeaspoon   = "tsp"
	UnitTablespoon = "tbsp"
	UnitCup        = "cup"
	UnitPiece      = "piece"
)

// MatchType classifies how closely a catalog product matches an ingredient
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchSimilar    MatchType = "similar"
	MatchPartial    MatchType = "partial"
	MatchSubstitute MatchType = "substitute"
	MatchNotFound   MatchType = "not_found"
)

// NormalizedIngredient is the canonical form of a free-text ingredient name.
// It is a pure value: derived deterministically from RawName, never mutated.
type NormalizedIngredient struct {
	RawName        string   `json:"rawName"`
	CanonicalTerms []string `json:"canonicalTerms"`
	KeyTerms       []string `json:"keyTerms"`
}

// Product is a read-only snapshot of one supermarket catalog listing
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PriceCents      int64   `json:"priceCents"`
	Unit            string  `json:"unit"`            // e.g., "g", "ml", "piece"
	PackageQuantity float64 `json:"packageQuantity"` // amount of Unit per package
	Category        string  `json:"category,omitempty"`
	SupermarketID   string  `json:"supermarketId"`
	InStock         bool    `json:"inStock"`
}

// ProductMatch is the result of matching one ingredient against one store's
// catalog. A not_found match carries no product and zero confidence.
type ProductMatch struct {
	IngredientName string             `json:"ingredientName"`
	QuantityNeeded float64            `json:"quantityNeeded"`
	UnitNeeded     string             `json:"unitNeeded"`
	Product        *Product           `json:"product,omitempty"`
	Confidence     float64            `json:"confidence"` // 0-1
	QuantityToBuy  int                `json:"quantityToBuy"`
	TotalCostCents int64              `json:"totalCostCents"`
	MatchType      MatchType          `json:"matchType"`
	MatchReason    string             `json:"matchReason,omitempty"`
	Alternatives   []MatchAlternative `json:"alternatives,omitempty"`
}

// MatchAlternative is a runner-up candidate for a match, priced relative to
// the primary product
type MatchAlternative struct {
	Product              Product `json:"product"`
	Confidence           float64 `json:"confidence"`
	QuantityToBuy        int     `json:"quantityToBuy"`
	TotalCostCents       int64   `json:"totalCostCents"`
	PriceDifferenceCents int64   `json:"priceDifferenceCents"`
}

// Found reports whether the match refers to an actual catalog product
func (m *ProductMatch) Found() bool {
	return m.MatchType != MatchNotFound && m.Product != nil
}
