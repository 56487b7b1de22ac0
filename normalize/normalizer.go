package normalize

import (
	"sort"

	"pavs.com/phenonorm/fuzzy"
	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/ontology"
	"pavs.com/phenonorm/types"
)

var pnLogger = logger.NewLogger("Normalizer")

// DefaultThreshold is the minimum fuzzy similarity accepted when no exact
// vocabulary label matches a mention.
const DefaultThreshold = 0.60

// Recognizer locates candidate mentions in free text.
type Recognizer interface {
	Recognize(text string) []types.Mention
}

// Normalizer resolves free-text mentions to canonical vocabulary concepts.
type Normalizer struct {
	index      *ontology.Index
	recognizer Recognizer
	matcher    fuzzy.Matcher
	threshold  float64
}

func NewNormalizer(index *ontology.Index, recognizer Recognizer, matcher fuzzy.Matcher, threshold float64) *Normalizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Normalizer{
		index:      index,
		recognizer: recognizer,
		matcher:    matcher,
		threshold:  threshold,
	}
}

// Normalize maps the text's mentions to concepts. Mentions overlapping any
// excluded span are skipped: those regions were already consumed by explicit
// code extraction. Negated mentions still resolve but are marked with the
// negated-exclusion method so downstream stages can keep them out of the
// phenotype list.
func (normalizer *Normalizer) Normalize(text string, exclude []types.Span, sourceField string) []types.ExtractedConcept {
	var concepts []types.ExtractedConcept
	for _, mention := range normalizer.recognizer.Recognize(text) {
		if overlapsAny(mention.Span, exclude) {
			continue
		}
		term, confidence, ok := normalizer.resolve(mention.Text)
		if !ok {
			continue
		}
		method := types.MethodFuzzyLabel
		if mention.Polarity == types.PolarityNegative {
			method = types.MethodNegatedExclusion
		}
		concepts = append(concepts, types.ExtractedConcept{
			CanonicalID: term.ID,
			Label:       term.Label,
			MatchedText: mention.Text,
			Span:        mention.Span,
			Method:      method,
			Confidence:  confidence,
			SourceField: sourceField,
		})
	}
	return dedupeByID(concepts)
}

// resolve tries an exact label/synonym lookup first, then the fuzzy scan.
func (normalizer *Normalizer) resolve(text string) (*ontology.Term, float64, bool) {
	norm := ontology.NormalizeLabel(text)
	if norm == "" {
		return nil, 0, false
	}
	if term, ok := normalizer.index.LookupByLabel(norm); ok {
		return term, 1.0, true
	}

	var best *ontology.Term
	bestScore := 0.0
	for _, indexed := range normalizer.index.Labels() {
		score := normalizer.matcher.Similarity(norm, indexed.Norm)
		if score <= bestScore {
			continue
		}
		if term, ok := normalizer.index.LookupByID(indexed.TermID); ok {
			best = term
			bestScore = score
		}
	}
	if best == nil || bestScore < normalizer.threshold {
		return nil, 0, false
	}
	pnLogger.Debug().Msgf("fuzzy match %q -> %s (%.2f)", text, best.ID, bestScore)
	return best, bestScore, true
}

// dedupeByID keeps one concept per canonical ID, preferring the highest
// confidence, then the earliest occurrence. Output stays in document order.
func dedupeByID(concepts []types.ExtractedConcept) []types.ExtractedConcept {
	kept := map[string]types.ExtractedConcept{}
	for _, concept := range concepts {
		existing, ok := kept[concept.CanonicalID]
		if !ok || concept.Confidence > existing.Confidence {
			kept[concept.CanonicalID] = concept
		}
	}

	result := make([]types.ExtractedConcept, 0, len(kept))
	for _, concept := range kept {
		result = append(result, concept)
	}
	sort.Slice(result, func(i, j int) bool {
		return types.SpanSortFunction(&result[i].Span, &result[j].Span)
	})
	return result
}

func overlapsAny(span types.Span, excluded []types.Span) bool {
	for _, other := range excluded {
		if span.Overlaps(other) {
			return true
		}
	}
	return false
}
