package critic

import (
	"regexp"
	"strings"
)

// Similarity scores the lexical closeness of two texts in [0, 1].
// Implementations must be symmetric and deterministic.
type Similarity interface {
	Score(a, b string) float64
}

// stopwords are common function words ignored by the token-overlap
// measure, so that rationales differing only in connective tissue still
// compare as similar.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"not": true, "no": true, "does": true, "did": true, "is": true,
	"was": true,
}

var wordPattern = regexp.MustCompile(`\w+`)

// TokenOverlap is the default Similarity: stopword-filtered Jaccard
// overlap of lowercased word sets.
type TokenOverlap struct{}

func (TokenOverlap) Score(a, b string) float64 {
	wa := tokenSet(a)
	wb := tokenSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	both := 0
	for w := range wa {
		if wb[w] {
			both++
		}
	}
	union := len(wa) + len(wb) - both
	return float64(both) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
		if !stopwords[w] {
			set[w] = true
		}
	}
	return set
}
