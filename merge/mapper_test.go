package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pavs.com/phenonorm/types"
)

func cohortConfig() types.SourceConfig {
	return types.SourceConfig{
		Name:   "cohort",
		Format: types.FormatTSV,
		Order:  1,
		FieldMap: map[string]string{
			"Gender":          types.FieldSex,
			"Age at exam":     types.FieldAge,
			"HPO terms":       types.FieldPhenotypes,
			"Clinical notes":  types.FieldPhenotypes,
			"Final diagnosis": types.FieldDiagnosis,
			"PMID":            types.FieldExternalReference,
			"Case":            types.FieldCaseID,
		},
		ValuesTreatedAsNull: []string{"Not reported", "N/A", "-"},
	}
}

func TestApplyFieldMapRenamesColumns(t *testing.T) {
	record := types.SourceRecord{
		Origin: "cohort",
		Fields: map[string]string{
			"Gender":          "F",
			"Age at exam":     "3Y",
			"Final diagnosis": "Dravet syndrome",
			"PMID":            "12345678",
			"Case":            "II-1",
			"Ignored column":  "noise",
		},
	}

	mapped := ApplyFieldMap(cohortConfig(), record)
	expected := map[string]string{
		types.FieldSex:               "F",
		types.FieldAge:               "3Y",
		types.FieldDiagnosis:         "Dravet syndrome",
		types.FieldExternalReference: "12345678",
		types.FieldCaseID:            "II-1",
	}
	require.Empty(t, cmp.Diff(expected, mapped.Fields))
	require.Equal(t, "cohort", mapped.Origin)
	require.Empty(t, mapped.Diagnostics)
}

func TestApplyFieldMapDropsNullPlaceholders(t *testing.T) {
	record := types.SourceRecord{
		Origin: "cohort",
		Fields: map[string]string{
			"Gender":          "Not reported",
			"Age at exam":     "  ",
			"Final diagnosis": "-",
			"Case":            "P1",
		},
	}

	mapped := ApplyFieldMap(cohortConfig(), record)
	require.Equal(t, map[string]string{types.FieldCaseID: "P1"}, mapped.Fields)
}

func TestApplyFieldMapJoinsColumnsSharingAField(t *testing.T) {
	record := types.SourceRecord{
		Origin: "cohort",
		Fields: map[string]string{
			"HPO terms":      "HP:0001250",
			"Clinical notes": "global developmental delay",
		},
	}

	mapped := ApplyFieldMap(cohortConfig(), record)

	// Column-name order: "Clinical notes" sorts before "HPO terms".
	require.Equal(t, "global developmental delay;HP:0001250", mapped.Fields[types.FieldPhenotypes])
}

func TestApplyFieldMapWarnsOnUnknownTarget(t *testing.T) {
	cfg := cohortConfig()
	cfg.FieldMap["Weight"] = "bodyWeight"
	record := types.SourceRecord{Origin: "cohort", Fields: map[string]string{"Weight": "12kg"}}

	mapped := ApplyFieldMap(cfg, record)
	require.Empty(t, mapped.Fields)
	require.Len(t, mapped.Diagnostics, 1)
	require.Equal(t, types.SourceParseWarning, mapped.Diagnostics[0].Kind)
	require.Equal(t, "bodyWeight", mapped.Diagnostics[0].Field)
}

func TestProvenance(t *testing.T) {
	mapped := MappedRecord{
		Origin: "cohort",
		Fields: map[string]string{
			types.FieldCaseID:            "II-1",
			types.FieldExternalReference: "12345678",
		},
	}
	require.Equal(t, types.Provenance{
		Origin:    "cohort",
		CaseID:    "II-1",
		Reference: "12345678",
	}, mapped.Provenance())
}
