package merge

import (
	"fmt"
	"sort"
	"strings"

	"pavs.com/phenonorm/types"
)

// MappedRecord is one source row translated into canonical field names,
// ready for cross-source merging.
type MappedRecord struct {
	Origin      string
	Order       int
	Fields      map[string]string
	Diagnostics []types.Diagnostic
}

func (rec MappedRecord) Provenance() types.Provenance {
	return types.Provenance{
		Origin:    rec.Origin,
		CaseID:    rec.Fields[types.FieldCaseID],
		Reference: rec.Fields[types.FieldExternalReference],
	}
}

var canonicalFields = map[string]bool{
	types.FieldSex:               true,
	types.FieldAge:               true,
	types.FieldConsanguinity:     true,
	types.FieldFamilyID:          true,
	types.FieldFamilyMembers:     true,
	types.FieldCohortMembers:     true,
	types.FieldPhenotypes:        true,
	types.FieldProcedure:         true,
	types.FieldProcedureStrategy: true,
	types.FieldDiagnosis:         true,
	types.FieldDiagnosticComment: true,
	types.FieldVariants:          true,
	types.FieldZygosity:          true,
	types.FieldClassification:    true,
	types.FieldExternalReference: true,
	types.FieldCaseID:            true,
}

// ApplyFieldMap renames a raw row's columns into the canonical field set per
// the source config. Null placeholders vanish; multiple source columns
// mapped onto the same canonical field are joined with ";" in column-name
// order. A mapping onto an unknown canonical name yields a parse warning and
// is skipped.
func ApplyFieldMap(cfg types.SourceConfig, record types.SourceRecord) MappedRecord {
	mapped := MappedRecord{
		Origin: cfg.Name,
		Order:  cfg.Order,
		Fields: map[string]string{},
	}

	columns := make([]string, 0, len(cfg.FieldMap))
	for column := range cfg.FieldMap {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		canonical := cfg.FieldMap[column]
		if !canonicalFields[canonical] {
			mapped.Diagnostics = append(mapped.Diagnostics, types.Diagnostic{
				Kind:    types.SourceParseWarning,
				Field:   canonical,
				Message: fmt.Sprintf("source %s maps column %q to unknown field %q", cfg.Name, column, canonical),
			})
			continue
		}
		value := strings.TrimSpace(record.Get(column))
		if cfg.IsNullValue(value) {
			continue
		}
		if existing, ok := mapped.Fields[canonical]; ok {
			mapped.Fields[canonical] = existing + ";" + value
			continue
		}
		mapped.Fields[canonical] = value
	}
	return mapped
}
