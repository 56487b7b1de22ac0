package extract

import (
	"regexp"
	"sort"

	"pavs.com/phenonorm/types"
)

const (
	RuleHPOCode     = "hpo_code"
	RuleOMIMCode    = "omim_code"
	RuleOMIMNumber  = "omim_number"
	RuleGeneVariant = "gene_variant"
)

// Match is one explicitly-coded identifier found in raw text. CanonicalID is
// the normalized code; Span covers the matched surface text so downstream
// normalization can skip it.
type Match struct {
	CanonicalID string
	Span        types.Span
	Rule        string
}

type rule struct {
	name      string
	pattern   *regexp.Regexp
	canonical func(groups []string) string
}

// Rules are applied in priority order; earlier rules win span-length ties.
var rules = []rule{
	{
		name:    RuleHPOCode,
		pattern: regexp.MustCompile(`HP:\d{7}`),
		canonical: func(groups []string) string {
			return groups[0]
		},
	},
	{
		name:    RuleGeneVariant,
		pattern: regexp.MustCompile(`[A-Z][A-Z0-9-]{1,9}:(?:NM_\d+(?:\.\d+)?:)?[cpgnm]\.[A-Za-z0-9_>*+=().-]+`),
		canonical: func(groups []string) string {
			return groups[0]
		},
	},
	{
		name:    RuleOMIMCode,
		pattern: regexp.MustCompile(`(?i)OMIM[:\s]\s*(\d{6})`),
		canonical: func(groups []string) string {
			return "OMIM:" + groups[1]
		},
	},
	{
		name:    RuleOMIMNumber,
		pattern: regexp.MustCompile(`#(\d{6})`),
		canonical: func(groups []string) string {
			return "OMIM:" + groups[1]
		},
	},
}

// Extract scans text with the fixed rule set and returns the coded
// identifiers it finds, ordered by position. Overlaps are resolved by
// longest span first, then rule priority. Text with no recognizable code
// yields an empty result, never an error.
func Extract(text string) []Match {
	type candidate struct {
		match    Match
		priority int
	}
	var candidates []candidate

	for priority, r := range rules {
		for _, loc := range r.pattern.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, 0, len(loc)/2)
			for g := 0; g < len(loc); g += 2 {
				if loc[g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[loc[g]:loc[g+1]])
			}
			candidates = append(candidates, candidate{
				match: Match{
					CanonicalID: r.canonical(groups),
					Span:        types.Span{Begin: int32(loc[0]), End: int32(loc[1])},
					Rule:        r.name,
				},
				priority: priority,
			})
		}
	}

	// Longest span first, then rule priority, so the keep-first overlap
	// pass below implements the documented resolution order.
	sort.SliceStable(candidates, func(i, j int) bool {
		lenI, lenJ := candidates[i].match.Span.Len(), candidates[j].match.Span.Len()
		if lenI != lenJ {
			return lenI > lenJ
		}
		return candidates[i].priority < candidates[j].priority
	})

	var kept []Match
	for _, cand := range candidates {
		overlaps := false
		for _, existing := range kept {
			if existing.Span.Overlaps(cand.match.Span) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, cand.match)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return types.SpanSortFunction(&kept[i].Span, &kept[j].Span)
	})
	return kept
}

// Spans returns just the covered spans of matches, for handing to the
// concept normalizer as exclusions.
func Spans(matches []Match) []types.Span {
	spans := make([]types.Span, len(matches))
	for i, m := range matches {
		spans[i] = m.Span
	}
	return spans
}
