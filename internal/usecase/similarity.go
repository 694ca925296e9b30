package usecase

import "strings"

// DefaultSimilarityThreshold is the gate above which two normalized strings
// are treated as naming the same product
const DefaultSimilarityThreshold = 0.7

// SimilarityScorer computes a bounded string-similarity score from edit
// distance. It is stateless and safe for concurrent use.
type SimilarityScorer struct{}

// NewSimilarityScorer creates a new similarity scorer
func NewSimilarityScorer() *SimilarityScorer {
	return &SimilarityScorer{}
}

// Similarity returns 1 - editDistance/maxLength over lowercased inputs.
// Two empty strings score 0 so blank input never produces a full-confidence
// match; identical non-empty strings score exactly 1.
func (s *SimilarityScorer) Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	lenA := len([]rune(a))
	lenB := len([]rune(b))
	maxLen := max(lenA, lenB)
	if maxLen == 0 {
		return 0
	}

	distance := levenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// AreSimilar reports whether the similarity of two strings meets the threshold
func (s *SimilarityScorer) AreSimilar(a, b string, threshold float64) bool {
	return s.Similarity(a, b) >= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
