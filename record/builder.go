package record

import (
	"fmt"
	"strings"

	"pavs.com/phenonorm/merge"
	"pavs.com/phenonorm/ontology"
	"pavs.com/phenonorm/types"
)

// Builder assembles canonical records from merged cases and their
// annotations. It owns the final validation of concept references against
// the loaded ontology.
type Builder struct {
	index *ontology.Index
}

func NewBuilder(index *ontology.Index) *Builder {
	return &Builder{index: index}
}

// Build produces the canonical record for one merged case. Concepts are the
// annotation output over the case's text fields; variants come from the
// variant parser. Negated concepts are kept out of the phenotype list, OMIM
// concepts become the disease reference, and HP references that are unknown
// or obsolete in the loaded ontology are dropped with a parse warning.
func (builder *Builder) Build(mergedCase merge.Case, concepts []types.ExtractedConcept, variants []types.ParsedVariant) types.CanonicalRecord {
	record := types.CanonicalRecord{
		ID:          mergedCase.ID,
		Sex:         MapSex(mergedCase.Fields[types.FieldSex]),
		Diagnosis:   mergedCase.Fields[types.FieldDiagnosis],
		Variants:    variants,
		Provenance:  mergedCase.Provenance,
		Diagnostics: append([]types.Diagnostic{}, mergedCase.Diagnostics...),
	}

	age, diagnostic := ParseAge(mergedCase.Fields[types.FieldAge])
	record.Age = age
	if diagnostic != nil {
		record.Diagnostics = append(record.Diagnostics, *diagnostic)
	}

	for _, concept := range concepts {
		if strings.HasPrefix(concept.CanonicalID, "OMIM:") {
			if record.DiseaseID == "" {
				record.DiseaseID = concept.CanonicalID
			}
			continue
		}
		if concept.Method == types.MethodNegatedExclusion {
			continue
		}
		term, ok := builder.index.LookupByID(concept.CanonicalID)
		if !ok || term.Obsolete {
			record.Diagnostics = append(record.Diagnostics, types.Diagnostic{
				Kind:    types.SourceParseWarning,
				Field:   concept.SourceField,
				Message: fmt.Sprintf("concept %s from %q is %s in the loaded ontology", concept.CanonicalID, concept.MatchedText, unknownOrObsolete(ok)),
			})
			continue
		}
		if concept.Label == "" {
			concept.Label = term.Label
		}
		record.Concepts = append(record.Concepts, concept)
	}

	if raw := mergedCase.Fields[types.FieldClassification]; strings.TrimSpace(raw) != "" {
		if classification, ok := MapClassification(raw); ok {
			record.Classification = &classification
		} else {
			record.Diagnostics = append(record.Diagnostics, types.Diagnostic{
				Kind:    types.SourceParseWarning,
				Field:   types.FieldClassification,
				Message: fmt.Sprintf("classification %q is not an accepted tier", raw),
			})
		}
	}

	return record
}

func unknownOrObsolete(known bool) string {
	if known {
		return "obsolete"
	}
	return "unknown"
}
