package types

type MatchMethod string

const (
	MethodExplicitCode     MatchMethod = "explicit-code"
	MethodFuzzyLabel       MatchMethod = "fuzzy-label"
	MethodNegatedExclusion MatchMethod = "negated-exclusion"
)

// ExtractedConcept is one ontology concept resolved from a text field of a
// single record. It never outlives the record it was produced for.
type ExtractedConcept struct {
	CanonicalID string      `json:"canonical_id"`
	Label       string      `json:"label,omitempty"`
	MatchedText string      `json:"matched_text"`
	Span        Span        `json:"span"`
	Method      MatchMethod `json:"method"`
	Confidence  float64     `json:"confidence"`
	SourceField string      `json:"source_field"`
}
