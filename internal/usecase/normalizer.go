package usecase

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mercalista/backend/internal/domain"
)

// Compiled regex patterns for ingredient normalization
var (
	// Matches quantity+unit patterns like "200g", "1.5 kg", "2 cups", "250 ml"
	// in both languages
	quantityUnitPattern = regexp.MustCompile(`\b\d+[.,]?\d*\s*(kilogramos?|kilograms?|kilos?|kg|gramos?|grams?|gr|g|litros?|liters?|litres?|lt|l|mililitros?|milliliters?|ml|cucharaditas?|teaspoons?|tsp|cucharadas?|tablespoons?|tbsp|tazas?|cups?|unidad(es)?|piezas?|pieces?|units?|oz|ounces?|lbs?|pounds?)\b`)

	// Matches numbers left standing alone after unit stripping ("2 chicken breasts")
	standaloneNumbersPattern = regexp.MustCompile(`\b\d+[.,]?\d*\b`)

	// Matches anything that is not a letter, digit or space. Uses \p{L} so
	// accented Spanish letters survive where \w would drop them.
	nonAlphanumericPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

	// Multiple spaces cleanup
	multipleSpacesPattern = regexp.MustCompile(`\s+`)
)

// diacriticReplacer folds the accented characters common in Spanish product
// names to their ASCII base so "atún" and "atun" compare equal
var diacriticReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// foldAccents lowercases a string and strips Spanish diacritics.
// Used wherever names are compared "ignoring case and accents".
func foldAccents(s string) string {
	return strings.ToLower(diacriticReplacer.Replace(s))
}

// IngredientNormalizer converts free-text ingredient names into canonical
// search terms and key terms using the static bilingual vocabulary.
// Normalization never fails: an unknown ingredient degrades to a result
// whose canonical terms contain only the cleaned phrase.
type IngredientNormalizer struct {
	logger *zap.Logger
}

// NewIngredientNormalizer creates a new ingredient normalizer
func NewIngredientNormalizer(logger *zap.Logger) *IngredientNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngredientNormalizer{logger: logger}
}

// Normalize derives the canonical form of a raw ingredient name
func (n *IngredientNormalizer) Normalize(rawName string) domain.NormalizedIngredient {
	// Step 1: lowercase and trim
	cleaned := strings.ToLower(strings.TrimSpace(rawName))

	// Step 2: remove quantity+unit patterns while decimals are still intact
	cleaned = quantityUnitPattern.ReplaceAllString(cleaned, " ")

	// Step 3: strip punctuation so "tomate, picado" and "tomate picado" agree
	cleaned = nonAlphanumericPattern.ReplaceAllString(cleaned, " ")

	// Step 4: remove leftover standalone numbers
	cleaned = standaloneNumbersPattern.ReplaceAllString(cleaned, " ")

	// Step 5: drop preparation and quantity words in either language
	cleaned = removeVocabularyWords(cleaned)

	// Step 6: normalize whitespace
	cleaned = strings.TrimSpace(multipleSpacesPattern.ReplaceAllString(cleaned, " "))

	normalized := domain.NormalizedIngredient{
		RawName:        rawName,
		CanonicalTerms: n.expandSynonyms(cleaned),
		KeyTerms:       extractKeyTerms(cleaned),
	}

	n.logger.Debug("normalized ingredient",
		zap.String("raw", rawName),
		zap.String("cleaned", cleaned),
		zap.Strings("canonicalTerms", normalized.CanonicalTerms),
		zap.Strings("keyTerms", normalized.KeyTerms))

	return normalized
}

// removeVocabularyWords drops whole words found in the preparation and
// quantity term tables
func removeVocabularyWords(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))

	for _, word := range words {
		if preparationTerms[word] || quantityTerms[word] {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// extractKeyTerms tokenizes a cleaned phrase, dropping short tokens and
// bilingual stop words
func extractKeyTerms(cleaned string) []string {
	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 2 {
			continue
		}
		if ingredientStopWords[word] {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// expandSynonyms resolves the cleaned phrase against the bilingual synonym
// table. Lookup order: direct hit, singular/plural toggle, then substring
// containment against every key as a last resort. The containment pass is
// deliberately unbounded and can over-expand on short common substrings.
func (n *IngredientNormalizer) expandSynonyms(phrase string) []string {
	if phrase == "" {
		return nil
	}

	termSet := map[string]bool{phrase: true}

	if variants, key, ok := lookupSynonyms(phrase); ok {
		termSet[key] = true
		for _, v := range variants {
			termSet[v] = true
		}
	} else {
		for _, key := range synonymKeys {
			if strings.Contains(phrase, key) || strings.Contains(key, phrase) {
				termSet[key] = true
				for _, v := range ingredientSynonyms[key] {
					termSet[v] = true
				}
			}
		}
	}

	terms := make([]string, 0, len(termSet))
	for t := range termSet {
		terms = append(terms, t)
	}
	// Sorted so downstream iteration is deterministic regardless of map order
	sort.Strings(terms)
	return terms
}

// lookupSynonyms finds the synonym table entry for a phrase, retrying with a
// trailing "s" toggled. Returns the variants, the key that matched and
// whether a match was found.
func lookupSynonyms(phrase string) ([]string, string, bool) {
	if variants, ok := ingredientSynonyms[phrase]; ok {
		return variants, phrase, true
	}

	if strings.HasSuffix(phrase, "s") {
		singular := strings.TrimSuffix(phrase, "s")
		if variants, ok := ingredientSynonyms[singular]; ok {
			return variants, singular, true
		}
	} else {
		plural := phrase + "s"
		if variants, ok := ingredientSynonyms[plural]; ok {
			return variants, plural, true
		}
	}

	return nil, "", false
}
