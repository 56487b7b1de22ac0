package merge

import (
	"encoding/json"
	"fmt"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pavs.com/phenonorm/types"
)

func mappedRow(origin string, order int, fields map[string]string) MappedRecord {
	return MappedRecord{Origin: origin, Order: order, Fields: fields}
}

// patchFields derives a variant of base by applying a JSON merge patch, so
// expected documents stay readable in conflict tests.
func patchFields(t *testing.T, base map[string]string, patch string) map[string]string {
	t.Helper()
	baseJSON, err := json.Marshal(base)
	require.NoError(t, err)
	patched, err := jsonpatch.MergePatch(baseJSON, []byte(patch))
	require.NoError(t, err)
	var result map[string]string
	require.NoError(t, json.Unmarshal(patched, &result))
	return result
}

func TestMergeGroupsByExternalReference(t *testing.T) {
	merger := NewMerger()
	cases := merger.Merge([]MappedRecord{
		mappedRow("registry", 1, map[string]string{
			types.FieldExternalReference: "PMID:12345678",
			types.FieldCaseID:            "II-1",
			types.FieldSex:               "F",
		}),
		mappedRow("literature", 2, map[string]string{
			types.FieldExternalReference: "PMID:12345678",
			types.FieldCaseID:            "II-1",
			types.FieldDiagnosis:         "Dravet syndrome",
		}),
	})

	require.Len(t, cases, 1)
	require.Equal(t, "PAVS0001", cases[0].ID)
	require.Equal(t, "F", cases[0].Fields[types.FieldSex])
	require.Equal(t, "Dravet syndrome", cases[0].Fields[types.FieldDiagnosis])
	require.Len(t, cases[0].Provenance, 2)
	require.Empty(t, cases[0].Diagnostics)
}

func TestMergeEarlierSourceWinsConflicts(t *testing.T) {
	base := map[string]string{
		types.FieldExternalReference: "PMID:99",
		types.FieldSex:               "F",
	}

	merger := NewMerger()
	cases := merger.Merge([]MappedRecord{
		// Input order is reversed on purpose; config Order decides precedence.
		mappedRow("secondary", 5, patchFields(t, base, `{"sex": "M"}`)),
		mappedRow("primary", 1, base),
	})

	require.Len(t, cases, 1)
	require.Equal(t, "F", cases[0].Fields[types.FieldSex])
	require.Len(t, cases[0].Diagnostics, 1)

	conflict := cases[0].Diagnostics[0]
	require.Equal(t, types.MergeConflictWarning, conflict.Kind)
	require.Equal(t, types.FieldSex, conflict.Field)
	require.Contains(t, conflict.Message, `"M"`)
	require.Contains(t, conflict.Message, "secondary")
}

func TestMergeContentFingerprintFallback(t *testing.T) {
	// No reference, no case ID: identical content collapses, different
	// content does not.
	row := map[string]string{
		types.FieldDiagnosis: "Rett syndrome",
		types.FieldSex:       "F",
		types.FieldAge:       "4Y",
		types.FieldVariants:  "MECP2:c.473C>T",
	}

	merger := NewMerger()
	cases := merger.Merge([]MappedRecord{
		mappedRow("a", 1, row),
		mappedRow("b", 2, row),
		mappedRow("b", 2, patchFields(t, row, `{"age": "7Y"}`)),
	})

	require.Len(t, cases, 2)
	require.Equal(t, "4Y", cases[0].Fields[types.FieldAge])
	require.Equal(t, "7Y", cases[1].Fields[types.FieldAge])
}

func TestMergeSequentialUniqueIDs(t *testing.T) {
	var records []MappedRecord
	for i := 0; i < 250; i++ {
		records = append(records, mappedRow("registry", 1, map[string]string{
			types.FieldCaseID: fmt.Sprintf("case-%d", i),
		}))
	}

	merger := NewMerger()
	cases := merger.Merge(records)
	require.Len(t, cases, 250)

	seen := map[string]bool{}
	for i, c := range cases {
		require.Equal(t, fmt.Sprintf("PAVS%04d", i+1), c.ID)
		require.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	fields := map[string]string{types.FieldCaseID: "P1", types.FieldSex: "F"}
	original := map[string]string{types.FieldCaseID: "P1", types.FieldSex: "F"}

	merger := NewMerger()
	merger.Merge([]MappedRecord{
		mappedRow("a", 1, fields),
		mappedRow("b", 2, map[string]string{types.FieldCaseID: "P1", types.FieldDiagnosis: "X"}),
	})

	require.Empty(t, cmp.Diff(original, fields))
}

func TestMergeCaseIDOnlyGrouping(t *testing.T) {
	merger := NewMerger()
	cases := merger.Merge([]MappedRecord{
		mappedRow("a", 1, map[string]string{types.FieldCaseID: "II-1", types.FieldSex: "F"}),
		mappedRow("b", 2, map[string]string{types.FieldCaseID: "II-1", types.FieldAge: "2Y"}),
		mappedRow("b", 2, map[string]string{types.FieldCaseID: "II-2", types.FieldAge: "5Y"}),
	})

	require.Len(t, cases, 2)
	require.Equal(t, "2Y", cases[0].Fields[types.FieldAge])
	require.Equal(t, "F", cases[0].Fields[types.FieldSex])
}
