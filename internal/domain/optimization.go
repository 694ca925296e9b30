package domain

// GroceryItem is one line of a shopping list: an ingredient with the total
// quantity needed and, after matching, its candidate products.
// SelectedMatch, when set, is always one of Matches.
type GroceryItem struct {
	ID             string         `json:"id"`
	IngredientName string         `json:"ingredientName"`
	TotalQuantity  float64        `json:"totalQuantity"`
	Unit           string         `json:"unit"`
	Matches        []ProductMatch `json:"matches,omitempty"`
	SelectedMatch  *ProductMatch  `json:"selectedMatch,omitempty"`
}

// OptimizationResult is the outcome of one optimization run.
// SavingsCents is never negative; unavailable items are excluded from sums.
type OptimizationResult struct {
	Items            []GroceryItem `json:"items"`
	SavingsCents     int64         `json:"savingsCents"`
	Supermarkets     []string      `json:"supermarkets"`
	UnavailableItems []string      `json:"unavailableItems"`
	Suggestions      []string      `json:"suggestions"`
}

// SupermarketComparison summarizes cost and availability of a full shopping
// list at a single store. ItemsAvailable + ItemsUnavailable equals the total
// item count of the compared list.
type SupermarketComparison struct {
	SupermarketID     string `json:"supermarketId"`
	TotalCostCents    int64  `json:"totalCostCents"`
	ItemsAvailable    int    `json:"itemsAvailable"`
	ItemsUnavailable  int    `json:"itemsUnavailable"`
	DeliveryAvailable bool   `json:"deliveryAvailable"`
	DeliveryCostCents int64  `json:"deliveryCostCents,omitempty"`
}

// DeliveryInfo is store delivery metadata from the catalog provider
type DeliveryInfo struct {
	Available bool  `json:"available"`
	CostCents int64 `json:"costCents,omitempty"`
}
