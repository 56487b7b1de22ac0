package record

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pavs.com/phenonorm/merge"
	"pavs.com/phenonorm/ontology"
	"pavs.com/phenonorm/types"
)

func newTestBuilder() *Builder {
	index := ontology.Build([]ontology.Term{
		{ID: "HP:0001250", Label: "Seizure"},
		{ID: "HP:0001263", Label: "Global developmental delay"},
		{ID: "HP:0200134", Label: "obsolete Epileptic encephalopathy", Obsolete: true},
	})
	return NewBuilder(index)
}

func concept(id string, method types.MatchMethod) types.ExtractedConcept {
	return types.ExtractedConcept{
		CanonicalID: id,
		MatchedText: "text",
		Method:      method,
		Confidence:  1.0,
		SourceField: types.FieldPhenotypes,
	}
}

func TestBuildCompleteRecord(t *testing.T) {
	builder := newTestBuilder()
	mergedCase := merge.Case{
		ID: "PAVS0001",
		Fields: map[string]string{
			types.FieldSex:            "F",
			types.FieldAge:            "3Y",
			types.FieldDiagnosis:      "Dravet syndrome",
			types.FieldClassification: "likely pathogenic",
		},
		Provenance: []types.Provenance{{Origin: "registry", CaseID: "II-1"}},
	}
	concepts := []types.ExtractedConcept{
		concept("HP:0001250", types.MethodExplicitCode),
		concept("OMIM:607208", types.MethodExplicitCode),
	}
	variants := []types.ParsedVariant{{Gene: "SCN1A", Notation: "SCN1A:c.2398G>A", Coding: "c.2398G>A", Zygosity: types.ZygosityHeterozygous}}

	record := builder.Build(mergedCase, concepts, variants)

	require.Equal(t, "PAVS0001", record.ID)
	require.Equal(t, types.SexFemale, record.Sex)
	require.NotNil(t, record.Age)
	require.Equal(t, "P3Y", *record.Age)
	require.Equal(t, "Dravet syndrome", record.Diagnosis)
	require.Equal(t, "OMIM:607208", record.DiseaseID)
	require.Len(t, record.Concepts, 1)
	require.Equal(t, "HP:0001250", record.Concepts[0].CanonicalID)
	require.Equal(t, "Seizure", record.Concepts[0].Label)
	require.NotNil(t, record.Classification)
	require.Equal(t, types.ClassificationLikelyPathogenic, *record.Classification)
	require.Equal(t, variants, record.Variants)
	require.Equal(t, mergedCase.Provenance, record.Provenance)
	require.Empty(t, record.Diagnostics)
}

func TestBuildDropsNegatedConcepts(t *testing.T) {
	builder := newTestBuilder()
	record := builder.Build(merge.Case{ID: "PAVS0002", Fields: map[string]string{}}, []types.ExtractedConcept{
		concept("HP:0001250", types.MethodNegatedExclusion),
		concept("HP:0001263", types.MethodFuzzyLabel),
	}, nil)

	require.Len(t, record.Concepts, 1)
	require.Equal(t, "HP:0001263", record.Concepts[0].CanonicalID)
	require.Empty(t, record.Diagnostics)
}

func TestBuildWarnsOnStaleConceptReferences(t *testing.T) {
	builder := newTestBuilder()
	record := builder.Build(merge.Case{ID: "PAVS0003", Fields: map[string]string{}}, []types.ExtractedConcept{
		concept("HP:0200134", types.MethodExplicitCode), // obsolete
		concept("HP:9999999", types.MethodExplicitCode), // unknown
	}, nil)

	require.Empty(t, record.Concepts)
	require.Len(t, record.Diagnostics, 2)
	require.Contains(t, record.Diagnostics[0].Message, "obsolete")
	require.Contains(t, record.Diagnostics[1].Message, "unknown")
}

func TestBuildUnknownSexAndBadValues(t *testing.T) {
	builder := newTestBuilder()
	record := builder.Build(merge.Case{
		ID: "PAVS0004",
		Fields: map[string]string{
			types.FieldSex:            "hermaphrodite snail",
			types.FieldAge:            "school age",
			types.FieldClassification: "probably fine",
		},
	}, nil, nil)

	require.Equal(t, types.SexUnknown, record.Sex)
	require.Nil(t, record.Age)
	require.Nil(t, record.Classification)
	require.Len(t, record.Diagnostics, 2)
}
