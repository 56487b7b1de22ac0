package pipeline

import (
	"strings"

	"pavs.com/phenonorm/extract"
	"pavs.com/phenonorm/merge"
	"pavs.com/phenonorm/normalize"
	"pavs.com/phenonorm/types"
	"pavs.com/phenonorm/variant"
)

// text fields scanned for explicit codes, in canonical order.
var annotatedFields = []string{
	types.FieldPhenotypes,
	types.FieldDiagnosticComment,
	types.FieldDiagnosis,
}

// free-text fields that additionally go through mention normalization. The
// diagnosis field carries a disease name, not phenotype prose, so only its
// explicit codes are taken.
var normalizedFields = map[string]bool{
	types.FieldPhenotypes:        true,
	types.FieldDiagnosticComment: true,
}

// Annotator derives concepts and variants for one merged case. It holds no
// per-case state, so a single instance is shared by all workers.
type Annotator struct {
	normalizer *normalize.Normalizer
	parser     *variant.Parser
}

func NewAnnotator(normalizer *normalize.Normalizer, parser *variant.Parser) *Annotator {
	return &Annotator{normalizer: normalizer, parser: parser}
}

// Annotate scans the case's text fields. Explicit codes win their spans
// outright; the remaining text goes through mention normalization. Variant
// notations found inline join the ones from the variants field.
func (annotator *Annotator) Annotate(mergedCase merge.Case) ([]types.ExtractedConcept, []types.ParsedVariant) {
	var concepts []types.ExtractedConcept
	var variants []types.ParsedVariant
	zygosityField := mergedCase.Fields[types.FieldZygosity]

	for _, field := range annotatedFields {
		text := mergedCase.Fields[field]
		if strings.TrimSpace(text) == "" {
			continue
		}

		matches := extract.Extract(text)
		for _, match := range matches {
			surface := text[match.Span.Begin:match.Span.End]
			if match.Rule == extract.RuleGeneVariant {
				variants = append(variants, annotator.parser.Parse(surface, zygosityField)...)
				continue
			}
			concepts = append(concepts, types.ExtractedConcept{
				CanonicalID: match.CanonicalID,
				MatchedText: surface,
				Span:        match.Span,
				Method:      types.MethodExplicitCode,
				Confidence:  1.0,
				SourceField: field,
			})
		}

		if normalizedFields[field] {
			concepts = append(concepts, annotator.normalizer.Normalize(text, extract.Spans(matches), field)...)
		}
	}

	variants = append(variants, annotator.parser.Parse(mergedCase.Fields[types.FieldVariants], zygosityField)...)
	return dedupeConcepts(concepts), dedupeVariants(variants)
}

// dedupeConcepts collapses the same canonical ID found in several fields:
// higher confidence wins, and an affirmed match displaces a negated one of
// equal confidence. First-seen order is preserved.
func dedupeConcepts(concepts []types.ExtractedConcept) []types.ExtractedConcept {
	position := map[string]int{}
	var result []types.ExtractedConcept
	for _, concept := range concepts {
		pos, seen := position[concept.CanonicalID]
		if !seen {
			position[concept.CanonicalID] = len(result)
			result = append(result, concept)
			continue
		}
		existing := result[pos]
		better := concept.Confidence > existing.Confidence ||
			(concept.Confidence == existing.Confidence &&
				existing.Method == types.MethodNegatedExclusion &&
				concept.Method != types.MethodNegatedExclusion)
		if better {
			result[pos] = concept
		}
	}
	return result
}

func dedupeVariants(variants []types.ParsedVariant) []types.ParsedVariant {
	seen := map[string]bool{}
	var result []types.ParsedVariant
	for _, v := range variants {
		key := v.Gene + "|" + v.Transcript + "|" + v.Coding + "|" + v.Protein + "|" + v.Notation
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, v)
	}
	return result
}
