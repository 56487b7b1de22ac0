package merge

import (
	"fmt"
	"sort"
	"strings"

	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/types"
	"pavs.com/phenonorm/utils"
)

var pnLogger = logger.NewLogger("Merger")

// Case is the merged, still-textual view of one clinical case: canonical
// fields reconciled across sources, with provenance from every contributing
// row.
type Case struct {
	ID          string
	Fields      map[string]string
	Provenance  []types.Provenance
	Diagnostics []types.Diagnostic
}

// Merger reconciles mapped rows from all sources into deduplicated cases and
// assigns sequential case identifiers. Merging is order-sensitive and runs
// single-threaded; identifiers exist only after this stage.
type Merger struct {
	idPrefix string
	nextID   int
}

func NewMerger() *Merger {
	return &Merger{idPrefix: "PAVS", nextID: 1}
}

// Merge groups rows describing the same case and reconciles their fields.
// Rows are processed in source precedence order (config Order, then input
// position), so for any conflicting field the earliest source wins and the
// losing value is recorded as a merge conflict warning. IDs are assigned
// sequentially in first-seen order.
func (merger *Merger) Merge(records []MappedRecord) []Case {
	ordered := make([]int, len(records))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return records[ordered[a]].Order < records[ordered[b]].Order
	})

	var cases []Case
	byKey := map[uint64]int{}

	for _, idx := range ordered {
		record := records[idx]
		key := caseKey(record)

		position, seen := byKey[key]
		if !seen {
			byKey[key] = len(cases)
			cases = append(cases, Case{
				ID:          fmt.Sprintf("%s%04d", merger.idPrefix, merger.nextID),
				Fields:      copyFields(record.Fields),
				Provenance:  []types.Provenance{record.Provenance()},
				Diagnostics: append([]types.Diagnostic{}, record.Diagnostics...),
			})
			merger.nextID++
			continue
		}

		existing := &cases[position]
		existing.Provenance = append(existing.Provenance, record.Provenance())
		existing.Diagnostics = append(existing.Diagnostics, record.Diagnostics...)
		for field, value := range record.Fields {
			current, ok := existing.Fields[field]
			if !ok || current == "" {
				existing.Fields[field] = value
				continue
			}
			if current != value {
				existing.Diagnostics = append(existing.Diagnostics, types.Diagnostic{
					Kind:  types.MergeConflictWarning,
					Field: field,
					Message: fmt.Sprintf("kept %q from %s, dropped %q from %s",
						current, existing.Provenance[0].Origin, value, record.Origin),
				})
			}
		}
	}

	pnLogger.Info().Msgf("%d records were merged into %d cases", len(records), len(cases))
	return cases
}

// caseKey identifies a case across sources. Records carrying an external
// reference or a source case ID key on those; records with neither fall back
// to a content fingerprint over diagnosis, demographics and variants.
func caseKey(record MappedRecord) uint64 {
	reference := normalizeKeyPart(record.Fields[types.FieldExternalReference])
	caseID := normalizeKeyPart(record.Fields[types.FieldCaseID])
	if reference != "" || caseID != "" {
		return utils.HashStrings([]string{"id", reference, caseID})
	}
	return utils.HashStrings([]string{
		"content",
		normalizeKeyPart(record.Fields[types.FieldDiagnosis]),
		normalizeKeyPart(record.Fields[types.FieldSex]),
		normalizeKeyPart(record.Fields[types.FieldAge]),
		normalizeKeyPart(record.Fields[types.FieldFamilyID]),
		normalizeKeyPart(record.Fields[types.FieldVariants]),
	})
}

func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func copyFields(fields map[string]string) map[string]string {
	result := make(map[string]string, len(fields))
	for field, value := range fields {
		result[field] = value
	}
	return result
}
