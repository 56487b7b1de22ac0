package fuzzy

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Matcher is the approximate string similarity capability used when exact
// vocabulary lookup fails. Scores are in [0, 1]; 1 means identical.
type Matcher interface {
	Similarity(a string, b string) float64
}

type tokenSortMatcher struct {
	metric *metrics.Levenshtein
}

// NewTokenSortMatcher scores word-order-insensitive edit similarity: both
// inputs are tokenized, sorted and rejoined before Levenshtein comparison,
// so "delay, developmental" and "developmental delay" score as equal.
func NewTokenSortMatcher() Matcher {
	metric := metrics.NewLevenshtein()
	metric.CaseSensitive = false
	return &tokenSortMatcher{metric: metric}
}

func (matcher *tokenSortMatcher) Similarity(a string, b string) float64 {
	return strutil.Similarity(sortTokens(a), sortTokens(b), matcher.metric)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
