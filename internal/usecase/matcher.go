package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mercalista/backend/internal/domain"
	"github.com/mercalista/backend/internal/metrics"
)

// Confidence model constants
const (
	exactMatchConfidence   = 1.0 // canonical term equals product name
	partialMatchConfidence = 0.6 // product name embeds a canonical term
	substituteWeight       = 0.4 // scaled by key-term overlap ratio
)

// defaultMaxAlternatives is how many runner-up products a match carries
const defaultMaxAlternatives = 3

// MatcherConfig holds configuration for the matcher service
type MatcherConfig struct {
	SimilarityThreshold float64
	MaxAlternatives     int
}

// MatcherService matches free-text ingredient names against supermarket
// catalogs. Matching never hard-fails on catalog trouble: a failed or empty
// search yields a not_found match so multi-item flows keep going.
type MatcherService struct {
	catalog             domain.CatalogRepository
	normalizer          *IngredientNormalizer
	scorer              *SimilarityScorer
	converter           *UnitConverter
	similarityThreshold float64
	maxAlternatives     int
	logger              *zap.Logger
}

// NewMatcherService creates a new matcher service backed by the given catalog
func NewMatcherService(catalog domain.CatalogRepository, config MatcherConfig, logger *zap.Logger) *MatcherService {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	maxAlternatives := config.MaxAlternatives
	if maxAlternatives <= 0 {
		maxAlternatives = defaultMaxAlternatives
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatcherService{
		catalog:             catalog,
		normalizer:          NewIngredientNormalizer(logger),
		scorer:              NewSimilarityScorer(),
		converter:           NewUnitConverter(),
		similarityThreshold: threshold,
		maxAlternatives:     maxAlternatives,
		logger:              logger,
	}
}

// scoredCandidate pairs a catalog product with its classification
type scoredCandidate struct {
	product    domain.Product
	confidence float64
	matchType  domain.MatchType
}

// FindMatches returns candidate products for one ingredient at one store,
// ranked by confidence then price. The first element is the primary match
// and carries the runner-up alternatives; when nothing matches at all the
// result is a single not_found entry.
func (s *MatcherService) FindMatches(ctx context.Context, ingredientName string, quantity float64, unit string, supermarketID string) ([]domain.ProductMatch, error) {
	if strings.TrimSpace(ingredientName) == "" || quantity <= 0 || strings.TrimSpace(supermarketID) == "" {
		return nil, domain.ErrInvalidInput
	}

	normalized := s.normalizer.Normalize(ingredientName)

	candidates, err := s.searchCandidates(ctx, normalized, supermarketID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A broken store contributes zero candidates instead of failing the call
		s.logger.Warn("catalog search failed",
			zap.String("ingredient", ingredientName),
			zap.String("supermarketId", supermarketID),
			zap.Error(err))
		candidates = nil
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, product := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		matchType, confidence, ok := s.classifyCandidate(product, normalized)
		if !ok {
			s.logger.Debug("candidate rejected",
				zap.String("ingredient", ingredientName),
				zap.String("product", product.Name))
			continue
		}

		s.logger.Debug("candidate classified",
			zap.String("ingredient", ingredientName),
			zap.String("product", product.Name),
			zap.String("matchType", string(matchType)),
			zap.Float64("confidence", confidence))

		scored = append(scored, scoredCandidate{
			product:    product,
			confidence: confidence,
			matchType:  matchType,
		})
	}

	if len(scored) == 0 {
		metrics.MatchesTotal.WithLabelValues(string(domain.MatchNotFound)).Inc()
		return []domain.ProductMatch{notFoundMatch(ingredientName, quantity, unit)}, nil
	}

	// Rank by confidence descending, price ascending as tie-break. Stable so
	// catalog snapshot order decides full ties.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].confidence != scored[j].confidence {
			return scored[i].confidence > scored[j].confidence
		}
		return scored[i].product.PriceCents < scored[j].product.PriceCents
	})

	matches := make([]domain.ProductMatch, 0, len(scored))
	for _, candidate := range scored {
		matches = append(matches, s.buildMatch(ingredientName, quantity, unit, candidate))
	}

	primary := &matches[0]
	for i := 1; i < len(matches) && len(primary.Alternatives) < s.maxAlternatives; i++ {
		alt := matches[i]
		primary.Alternatives = append(primary.Alternatives, domain.MatchAlternative{
			Product:              *alt.Product,
			Confidence:           alt.Confidence,
			QuantityToBuy:        alt.QuantityToBuy,
			TotalCostCents:       alt.TotalCostCents,
			PriceDifferenceCents: alt.TotalCostCents - primary.TotalCostCents,
		})
	}

	metrics.MatchesTotal.WithLabelValues(string(primary.MatchType)).Inc()

	s.logger.Debug("primary match selected",
		zap.String("ingredient", ingredientName),
		zap.String("product", primary.Product.Name),
		zap.String("matchType", string(primary.MatchType)),
		zap.Float64("confidence", primary.Confidence),
		zap.Int64("totalCostCents", primary.TotalCostCents))

	return matches, nil
}

// searchCandidates queries the catalog with every canonical term and
// deduplicates the results by product id
func (s *MatcherService) searchCandidates(ctx context.Context, normalized domain.NormalizedIngredient, supermarketID string) ([]domain.Product, error) {
	if len(normalized.CanonicalTerms) == 0 {
		return nil, nil
	}

	products, err := s.catalog.Search(ctx, normalized.CanonicalTerms, supermarketID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(products))
	unique := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if seen[p.ID] || !p.InStock {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
	}

	return unique, nil
}

// classifyCandidate assigns a match type and confidence to one product.
// Tiers, best first: exact (name equals a canonical term ignoring case and
// accents), similar (edit-distance similarity meets the threshold), partial
// (whole-substring containment either direction), substitute (shares key
// terms). A candidate that clears no tier is rejected.
func (s *MatcherService) classifyCandidate(product domain.Product, normalized domain.NormalizedIngredient) (domain.MatchType, float64, bool) {
	nameFolded := foldAccents(product.Name)

	bestSimilarity := 0.0
	for _, term := range normalized.CanonicalTerms {
		termFolded := foldAccents(term)
		if termFolded == nameFolded {
			return domain.MatchExact, exactMatchConfidence, true
		}
		if sim := s.scorer.Similarity(nameFolded, termFolded); sim > bestSimilarity {
			bestSimilarity = sim
		}
	}

	if bestSimilarity >= s.similarityThreshold {
		return domain.MatchSimilar, bestSimilarity, true
	}

	for _, term := range normalized.CanonicalTerms {
		termFolded := foldAccents(term)
		if termFolded == "" {
			continue
		}
		if strings.Contains(nameFolded, termFolded) || strings.Contains(termFolded, nameFolded) {
			return domain.MatchPartial, partialMatchConfidence, true
		}
	}

	if len(normalized.KeyTerms) > 0 {
		tokenSet := make(map[string]bool)
		for _, token := range strings.Fields(nameFolded) {
			tokenSet[token] = true
		}

		shared := 0
		for _, term := range normalized.KeyTerms {
			if tokenSet[foldAccents(term)] {
				shared++
			}
		}

		if shared > 0 {
			ratio := float64(shared) / float64(len(normalized.KeyTerms))
			return domain.MatchSubstitute, substituteWeight * ratio, true
		}
	}

	return domain.MatchNotFound, 0, false
}

// buildMatch fills in purchase quantity and total cost for a scored candidate
func (s *MatcherService) buildMatch(ingredientName string, quantity float64, unit string, candidate scoredCandidate) domain.ProductMatch {
	quantityToBuy, compatible := s.converter.QuantityToBuy(quantity, unit, candidate.product.PackageQuantity, candidate.product.Unit)

	match := domain.ProductMatch{
		IngredientName: ingredientName,
		QuantityNeeded: quantity,
		UnitNeeded:     unit,
		Product:        &candidate.product,
		Confidence:     candidate.confidence,
		QuantityToBuy:  quantityToBuy,
		TotalCostCents: int64(quantityToBuy) * candidate.product.PriceCents,
		MatchType:      candidate.matchType,
	}

	if !compatible {
		match.MatchReason = fmt.Sprintf("cannot convert %s to %s, defaulting to one package", unit, candidate.product.Unit)
	}

	return match
}

// notFoundMatch builds the placeholder match for an ingredient with no
// usable candidates. It carries no product and zero confidence.
func notFoundMatch(ingredientName string, quantity float64, unit string) domain.ProductMatch {
	return domain.ProductMatch{
		IngredientName: ingredientName,
		QuantityNeeded: quantity,
		UnitNeeded:     unit,
		MatchType:      domain.MatchNotFound,
	}
}
