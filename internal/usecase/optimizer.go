package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mercalista/backend/internal/domain"
	"github.com/mercalista/backend/internal/metrics"
)

// Defaults applied by NewOptimizerService
const (
	defaultMaxStores         = 3
	defaultMinSavingsCents   = 200
	defaultLargeSavingsCents = 1000
	defaultLookupConcurrency = 8
)

// OptimizerConfig holds tuning knobs for optimization runs
type OptimizerConfig struct {
	MaxStores            int   // cap on distinct stores in a split plan
	MinSavingsCents      int64 // minimum split advantage over the best single store
	LargeSavingsCents    int64 // savings above this trigger the bulk-buying tip
	IncludeDeliveryCosts bool  // add delivery cost when ranking stores
	LookupConcurrency    int   // bounded fan-out for catalog lookups
}

// OptimizerService combines per-item product matches across supermarkets
// into shopping plans. Lookups for one run go through a session cache so the
// same (ingredient, store) pair is never resolved twice within that run; no
// state survives across runs.
type OptimizerService struct {
	matcher *MatcherService
	catalog domain.CatalogRepository
	config  OptimizerConfig
	logger  *zap.Logger
}

// NewOptimizerService creates a new optimizer service
func NewOptimizerService(matcher *MatcherService, catalog domain.CatalogRepository, config OptimizerConfig, logger *zap.Logger) *OptimizerService {
	if config.MaxStores <= 0 {
		config.MaxStores = defaultMaxStores
	}
	if config.MinSavingsCents <= 0 {
		config.MinSavingsCents = defaultMinSavingsCents
	}
	if config.LargeSavingsCents <= 0 {
		config.LargeSavingsCents = defaultLargeSavingsCents
	}
	if config.LookupConcurrency <= 0 {
		config.LookupConcurrency = defaultLookupConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OptimizerService{
		matcher: matcher,
		catalog: catalog,
		config:  config,
		logger:  logger,
	}
}

// matchSession holds the per-run match cache. It exists for exactly one
// optimization call and is dropped when the call returns.
type matchSession struct {
	matcher *MatcherService

	mu    sync.Mutex
	cache map[string]domain.ProductMatch
}

func (s *OptimizerService) newSession() *matchSession {
	return &matchSession{
		matcher: s.matcher,
		cache:   make(map[string]domain.ProductMatch),
	}
}

// primaryMatch resolves the primary match for one item at one store, served
// from the session cache when the pair was already looked up in this run
func (m *matchSession) primaryMatch(ctx context.Context, item domain.GroceryItem, supermarketID string) (domain.ProductMatch, error) {
	key := fmt.Sprintf("%s|%v|%s|%s",
		strings.ToLower(strings.TrimSpace(item.IngredientName)), item.TotalQuantity, item.Unit, supermarketID)

	m.mu.Lock()
	if match, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return match, nil
	}
	m.mu.Unlock()

	matches, err := m.matcher.FindMatches(ctx, item.IngredientName, item.TotalQuantity, item.Unit, supermarketID)
	if err != nil {
		return domain.ProductMatch{}, err
	}
	primary := matches[0]

	m.mu.Lock()
	m.cache[key] = primary
	m.mu.Unlock()

	return primary, nil
}

// matchAll resolves the primary match for every (item, store) pair using a
// bounded number of concurrent lookups. Results land in a matrix indexed by
// input position, so completion order never affects the outcome. A cancelled
// context aborts the run and discards partial results.
func (s *OptimizerService) matchAll(ctx context.Context, session *matchSession, items []domain.GroceryItem, supermarketIDs []string) ([][]domain.ProductMatch, error) {
	matrix := make([][]domain.ProductMatch, len(items))
	for i := range matrix {
		matrix[i] = make([]domain.ProductMatch, len(supermarketIDs))
	}

	type task struct {
		item  int
		store int
	}

	workers := s.config.LookupConcurrency
	if total := len(items) * len(supermarketIDs); workers > total {
		workers = total
	}
	if workers == 0 {
		return matrix, nil
	}

	tasks := make(chan task)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				if ctx.Err() != nil {
					continue
				}
				match, err := session.primaryMatch(ctx, items[t.item], supermarketIDs[t.store])
				if err != nil {
					once.Do(func() { firstErr = err })
					continue
				}
				// Each goroutine writes a distinct cell, no locking needed
				matrix[t.item][t.store] = match
			}
		}()
	}

	for i := range items {
		for j := range supermarketIDs {
			tasks <- task{item: i, store: j}
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matrix, nil
}

// OptimizeForPrice assigns every item to its cheapest available store,
// subject to the store-count cap and the minimum-savings gate, and reports
// savings against the average single-store basket cost.
func (s *OptimizerService) OptimizeForPrice(ctx context.Context, items []domain.GroceryItem, supermarketIDs []string) (*domain.OptimizationResult, error) {
	start := time.Now()
	defer func() {
		metrics.OptimizationDuration.WithLabelValues("price").Observe(time.Since(start).Seconds())
	}()
	metrics.OptimizationsTotal.WithLabelValues("price").Inc()

	if err := validateItems(items); err != nil {
		return nil, err
	}
	if len(supermarketIDs) == 0 {
		return s.emptyStoresResult(items), nil
	}

	session := s.newSession()
	matrix, err := s.matchAll(ctx, session, items, supermarketIDs)
	if err != nil {
		return nil, err
	}

	choice := cheapestAssignment(matrix)
	choice = s.capStores(matrix, choice, len(supermarketIDs))

	// Splitting has to earn its keep: when the best single store covers at
	// least as many items and the split beats it by less than the configured
	// margin, buy everything in one place.
	if countDistinctStores(choice) > 1 {
		singleStore, singleTotal, singleCovered := bestSingleStore(matrix, len(supermarketIDs))
		splitTotal, splitCovered := planTotals(matrix, choice)
		if singleCovered >= splitCovered && singleTotal-splitTotal < s.config.MinSavingsCents {
			choice = singleStoreAssignment(matrix, singleStore)
		}
	}

	resultItems := make([]domain.GroceryItem, len(items))
	unavailable := make([]string, 0)
	var achievedTotal int64

	for i, item := range items {
		out := item
		out.Matches = make([]domain.ProductMatch, len(supermarketIDs))
		copy(out.Matches, matrix[i])
		out.SelectedMatch = nil

		if j := choice[i]; j >= 0 {
			out.SelectedMatch = &out.Matches[j]
			achievedTotal += matrix[i][j].TotalCostCents
		} else {
			unavailable = append(unavailable, item.IngredientName)
		}
		resultItems[i] = out
	}

	average := averageBasketCost(matrix, len(supermarketIDs))
	savings := average.Sub(decimal.NewFromInt(achievedTotal)).Round(0).IntPart()
	if savings < 0 {
		savings = 0
	}

	storesUsed := storeNamesUsed(choice, supermarketIDs)
	result := &domain.OptimizationResult{
		Items:            resultItems,
		SavingsCents:     savings,
		Supermarkets:     storesUsed,
		UnavailableItems: unavailable,
		Suggestions:      s.buildSuggestions(len(storesUsed), savings, unavailable),
	}

	s.logger.Info("price optimization completed",
		zap.Int("items", len(items)),
		zap.Int("storesSearched", len(supermarketIDs)),
		zap.Int("storesUsed", len(storesUsed)),
		zap.Int64("totalCents", achievedTotal),
		zap.Int64("savingsCents", savings),
		zap.Int("unavailable", len(unavailable)))

	return result, nil
}

// OptimizeForAvailability picks the single store where the most items can be
// matched and plans the whole list there. No cost optimization is performed.
func (s *OptimizerService) OptimizeForAvailability(ctx context.Context, items []domain.GroceryItem, supermarketIDs []string) (*domain.OptimizationResult, error) {
	start := time.Now()
	defer func() {
		metrics.OptimizationDuration.WithLabelValues("availability").Observe(time.Since(start).Seconds())
	}()
	metrics.OptimizationsTotal.WithLabelValues("availability").Inc()

	if err := validateItems(items); err != nil {
		return nil, err
	}
	if len(supermarketIDs) == 0 {
		return s.emptyStoresResult(items), nil
	}

	session := s.newSession()
	matrix, err := s.matchAll(ctx, session, items, supermarketIDs)
	if err != nil {
		return nil, err
	}

	// Highest availability wins, first store in input order breaks ties
	winner := 0
	winnerCount := -1
	for j := range supermarketIDs {
		count := 0
		for i := range items {
			if matrix[i][j].Found() {
				count++
			}
		}
		if count > winnerCount {
			winner = j
			winnerCount = count
		}
	}

	resultItems := make([]domain.GroceryItem, len(items))
	unavailable := make([]string, 0)

	for i, item := range items {
		out := item
		out.Matches = []domain.ProductMatch{matrix[i][winner]}
		out.SelectedMatch = nil
		if matrix[i][winner].Found() {
			out.SelectedMatch = &out.Matches[0]
		} else {
			unavailable = append(unavailable, item.IngredientName)
		}
		resultItems[i] = out
	}

	supermarkets := make([]string, 0, 1)
	if winnerCount > 0 {
		supermarkets = append(supermarkets, supermarketIDs[winner])
	}

	suggestions := make([]string, 0)
	if winnerCount > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%s carries %d of %d items",
			supermarketIDs[winner], winnerCount, len(items)))
	}
	suggestions = append(suggestions, unavailableSuggestions(unavailable)...)

	result := &domain.OptimizationResult{
		Items:            resultItems,
		SavingsCents:     0,
		Supermarkets:     supermarkets,
		UnavailableItems: unavailable,
		Suggestions:      suggestions,
	}

	s.logger.Info("availability optimization completed",
		zap.Int("items", len(items)),
		zap.Int("storesSearched", len(supermarketIDs)),
		zap.String("chosenStore", supermarketIDs[winner]),
		zap.Int("matched", winnerCount))

	return result, nil
}

// FindBestSupermarket compares the full list against each store and returns
// the comparison rows sorted by effective cost ascending. Stores where
// nothing resolves still appear, with zero cost and full unavailability.
func (s *OptimizerService) FindBestSupermarket(ctx context.Context, items []domain.GroceryItem, supermarketIDs []string) ([]domain.SupermarketComparison, error) {
	start := time.Now()
	defer func() {
		metrics.OptimizationDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
	}()
	metrics.OptimizationsTotal.WithLabelValues("compare").Inc()

	if err := validateItems(items); err != nil {
		return nil, err
	}

	comparisons := make([]domain.SupermarketComparison, 0, len(supermarketIDs))
	if len(supermarketIDs) == 0 {
		return comparisons, nil
	}

	session := s.newSession()
	matrix, err := s.matchAll(ctx, session, items, supermarketIDs)
	if err != nil {
		return nil, err
	}

	for j, storeID := range supermarketIDs {
		comparison := domain.SupermarketComparison{SupermarketID: storeID}
		for i := range items {
			if matrix[i][j].Found() {
				comparison.TotalCostCents += matrix[i][j].TotalCostCents
				comparison.ItemsAvailable++
			} else {
				comparison.ItemsUnavailable++
			}
		}

		info, err := s.catalog.GetDeliveryInfo(ctx, storeID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("delivery info lookup failed",
				zap.String("supermarketId", storeID),
				zap.Error(err))
			info = &domain.DeliveryInfo{Available: false}
		}
		comparison.DeliveryAvailable = info.Available
		comparison.DeliveryCostCents = info.CostCents

		comparisons = append(comparisons, comparison)
	}

	// Cheapest first; availability breaks cost ties; stable sort keeps input
	// order for full ties
	sort.SliceStable(comparisons, func(i, j int) bool {
		ci := s.effectiveCost(comparisons[i])
		cj := s.effectiveCost(comparisons[j])
		if ci != cj {
			return ci < cj
		}
		return comparisons[i].ItemsAvailable > comparisons[j].ItemsAvailable
	})

	return comparisons, nil
}

// effectiveCost is the ranking cost of a comparison row: basket total plus
// delivery when the configuration says delivery counts
func (s *OptimizerService) effectiveCost(c domain.SupermarketComparison) int64 {
	cost := c.TotalCostCents
	if s.config.IncludeDeliveryCosts && c.DeliveryAvailable {
		cost += c.DeliveryCostCents
	}
	return cost
}

// validateItems rejects items that cannot be matched at all. This is the one
// synchronous hard failure; everything downstream degrades into result data.
func validateItems(items []domain.GroceryItem) error {
	for _, item := range items {
		if strings.TrimSpace(item.IngredientName) == "" {
			return fmt.Errorf("%w: item with empty ingredient name", domain.ErrInvalidInput)
		}
		if item.TotalQuantity <= 0 {
			return fmt.Errorf("%w: item %q has non-positive quantity", domain.ErrInvalidInput, item.IngredientName)
		}
	}
	return nil
}

// emptyStoresResult is the degraded result for an empty store list: every
// item unavailable, zero savings, never an error
func (s *OptimizerService) emptyStoresResult(items []domain.GroceryItem) *domain.OptimizationResult {
	resultItems := make([]domain.GroceryItem, len(items))
	unavailable := make([]string, 0, len(items))
	for i, item := range items {
		out := item
		out.Matches = nil
		out.SelectedMatch = nil
		resultItems[i] = out
		unavailable = append(unavailable, item.IngredientName)
	}

	return &domain.OptimizationResult{
		Items:            resultItems,
		SavingsCents:     0,
		Supermarkets:     []string{},
		UnavailableItems: unavailable,
		Suggestions:      []string{"No supermarkets available to search"},
	}
}

// cheapestAssignment picks, per item, the store with the lowest total cost.
// Strict comparison keeps the first store in input order on ties. Items with
// no match anywhere get -1.
func cheapestAssignment(matrix [][]domain.ProductMatch) []int {
	choice := make([]int, len(matrix))
	for i, row := range matrix {
		choice[i] = -1
		var best int64
		for j, match := range row {
			if !match.Found() {
				continue
			}
			if choice[i] == -1 || match.TotalCostCents < best {
				choice[i] = j
				best = match.TotalCostCents
			}
		}
	}
	return choice
}

// capStores enforces the MaxStores limit. When the natural split uses too
// many stores, the stores carrying the most items (then the most spend) are
// kept and every item is re-assigned to the cheapest kept store. Items with
// no candidate among the kept stores become unavailable.
func (s *OptimizerService) capStores(matrix [][]domain.ProductMatch, choice []int, storeCount int) []int {
	counts := make(map[int]int)
	spends := make(map[int]int64)
	for i, j := range choice {
		if j < 0 {
			continue
		}
		counts[j]++
		spends[j] += matrix[i][j].TotalCostCents
	}
	if len(counts) <= s.config.MaxStores {
		return choice
	}

	type storeUse struct {
		index int
		items int
		spend int64
	}
	uses := make([]storeUse, 0, len(counts))
	for j := 0; j < storeCount; j++ {
		if counts[j] > 0 {
			uses = append(uses, storeUse{index: j, items: counts[j], spend: spends[j]})
		}
	}
	sort.SliceStable(uses, func(a, b int) bool {
		if uses[a].items != uses[b].items {
			return uses[a].items > uses[b].items
		}
		return uses[a].spend > uses[b].spend
	})

	kept := make(map[int]bool, s.config.MaxStores)
	for _, use := range uses[:s.config.MaxStores] {
		kept[use.index] = true
	}

	capped := make([]int, len(choice))
	for i, row := range matrix {
		capped[i] = -1
		var best int64
		for j, match := range row {
			if !kept[j] || !match.Found() {
				continue
			}
			if capped[i] == -1 || match.TotalCostCents < best {
				capped[i] = j
				best = match.TotalCostCents
			}
		}
	}
	return capped
}

// bestSingleStore finds the store that covers the most items, breaking ties
// by lower total cost, then input order
func bestSingleStore(matrix [][]domain.ProductMatch, storeCount int) (int, int64, int) {
	bestIdx := 0
	bestCovered := -1
	var bestTotal int64

	for j := 0; j < storeCount; j++ {
		covered := 0
		var total int64
		for i := range matrix {
			if matrix[i][j].Found() {
				covered++
				total += matrix[i][j].TotalCostCents
			}
		}
		if covered > bestCovered || (covered == bestCovered && total < bestTotal) {
			bestIdx = j
			bestCovered = covered
			bestTotal = total
		}
	}
	return bestIdx, bestTotal, bestCovered
}

// singleStoreAssignment assigns every item to one store, -1 where the store
// has no match
func singleStoreAssignment(matrix [][]domain.ProductMatch, store int) []int {
	choice := make([]int, len(matrix))
	for i := range matrix {
		choice[i] = -1
		if matrix[i][store].Found() {
			choice[i] = store
		}
	}
	return choice
}

// planTotals sums the cost and coverage of an assignment
func planTotals(matrix [][]domain.ProductMatch, choice []int) (int64, int) {
	var total int64
	covered := 0
	for i, j := range choice {
		if j < 0 {
			continue
		}
		total += matrix[i][j].TotalCostCents
		covered++
	}
	return total, covered
}

// countDistinctStores counts the stores an assignment actually uses
func countDistinctStores(choice []int) int {
	used := make(map[int]bool)
	for _, j := range choice {
		if j >= 0 {
			used[j] = true
		}
	}
	return len(used)
}

// averageBasketCost is the mean, over every supplied store, of that store's
// basket cost for the items it can supply. Exact decimal math so the savings
// figure rounds once.
func averageBasketCost(matrix [][]domain.ProductMatch, storeCount int) decimal.Decimal {
	if storeCount == 0 {
		return decimal.Zero
	}

	totals := make([]int64, storeCount)
	for i := range matrix {
		for j := 0; j < storeCount; j++ {
			if matrix[i][j].Found() {
				totals[j] += matrix[i][j].TotalCostCents
			}
		}
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(decimal.NewFromInt(t))
	}
	return sum.Div(decimal.NewFromInt(int64(storeCount)))
}

// storeNamesUsed lists the store ids an assignment uses, in input order
func storeNamesUsed(choice []int, supermarketIDs []string) []string {
	used := make(map[int]bool)
	for _, j := range choice {
		if j >= 0 {
			used[j] = true
		}
	}

	names := make([]string, 0, len(used))
	for j, id := range supermarketIDs {
		if used[j] {
			names = append(names, id)
		}
	}
	return names
}

// buildSuggestions renders the fixed suggestion templates for a price
// optimization result
func (s *OptimizerService) buildSuggestions(storesUsed int, savingsCents int64, unavailable []string) []string {
	suggestions := make([]string, 0)

	if storesUsed > 1 {
		suggestions = append(suggestions, fmt.Sprintf("Splitting the list across %d supermarkets saves %s",
			storesUsed, formatCents(savingsCents)))
	}

	suggestions = append(suggestions, unavailableSuggestions(unavailable)...)

	if savingsCents > s.config.LargeSavingsCents {
		suggestions = append(suggestions, "Savings are substantial: consider buying non-perishables in bulk")
	}

	return suggestions
}

// unavailableSuggestions renders the shared unavailable-items templates:
// up to three items are named, more are just counted
func unavailableSuggestions(unavailable []string) []string {
	switch {
	case len(unavailable) == 0:
		return nil
	case len(unavailable) <= 3:
		return []string{fmt.Sprintf("Not available at any supermarket: %s", strings.Join(unavailable, ", "))}
	default:
		return []string{fmt.Sprintf("%d items could not be found at any supermarket", len(unavailable))}
	}
}

// formatCents renders integer cents as a euro amount for suggestion text
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2) + " €"
}
