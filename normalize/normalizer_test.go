package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pavs.com/phenonorm/fuzzy"
	"pavs.com/phenonorm/negation"
	"pavs.com/phenonorm/ner"
	"pavs.com/phenonorm/ontology"
	"pavs.com/phenonorm/types"
)

func newTestIndex() *ontology.Index {
	return ontology.Build([]ontology.Term{
		{ID: "HP:0001250", Label: "Seizure", Synonyms: []string{"Seizures", "Epileptic seizure"}},
		{ID: "HP:0001263", Label: "Global developmental delay", Synonyms: []string{"Developmental delay"}},
		{ID: "HP:0002240", Label: "Hepatomegaly"},
		{ID: "HP:0000252", Label: "Microcephaly"},
		{ID: "HP:0001252", Label: "Hypotonia", Synonyms: []string{"Muscular hypotonia"}},
	})
}

func newTestNormalizer(index *ontology.Index) *Normalizer {
	analyzer := negation.NewAnalyzer(20, 10,
		[]types.Scope{types.ScopeLeft, types.ScopeRight},
		negation.GetDefaultBoundaries())
	return NewNormalizer(index, ner.NewRecognizer(analyzer), fuzzy.NewTokenSortMatcher(), DefaultThreshold)
}

func conceptIDs(concepts []types.ExtractedConcept) []string {
	ids := make([]string, len(concepts))
	for i, c := range concepts {
		ids[i] = c.CanonicalID
	}
	return ids
}

func TestNormalizeExactLabelAndSynonym(t *testing.T) {
	normalizer := newTestNormalizer(newTestIndex())
	concepts := normalizer.Normalize("presented with developmental delay and seizures", nil, "phenotype")
	require.Equal(t, []string{"HP:0001263", "HP:0001250"}, conceptIDs(concepts))
	for _, c := range concepts {
		require.Equal(t, types.MethodFuzzyLabel, c.Method)
		require.Equal(t, 1.0, c.Confidence)
		require.Equal(t, "phenotype", c.SourceField)
	}
}

func TestNormalizeFuzzyMatch(t *testing.T) {
	normalizer := newTestNormalizer(newTestIndex())

	// Word order differs from the canonical label; exact lookup misses.
	concepts := normalizer.Normalize("noted delay global developmental", nil, "phenotype")
	require.Equal(t, []string{"HP:0001263"}, conceptIDs(concepts))
	require.Equal(t, 1.0, concepts[0].Confidence)

	// Misspelling survives the edit-distance scan.
	concepts = normalizer.Normalize("presented with hepatomegalie", nil, "phenotype")
	require.Equal(t, []string{"HP:0002240"}, conceptIDs(concepts))
	require.Less(t, concepts[0].Confidence, 1.0)
	require.GreaterOrEqual(t, concepts[0].Confidence, DefaultThreshold)
}

func TestNormalizeBelowThresholdDropped(t *testing.T) {
	normalizer := newTestNormalizer(newTestIndex())
	concepts := normalizer.Normalize("presented with cardiomyopathy", nil, "phenotype")
	require.Empty(t, concepts)
}

func TestNormalizeNegatedMarked(t *testing.T) {
	normalizer := newTestNormalizer(newTestIndex())
	concepts := normalizer.Normalize("denies seizures, has hypotonia", nil, "phenotype")
	require.Equal(t, []string{"HP:0001250", "HP:0001252"}, conceptIDs(concepts))
	require.Equal(t, types.MethodNegatedExclusion, concepts[0].Method)
	require.Equal(t, types.MethodFuzzyLabel, concepts[1].Method)
}

func TestNormalizeExcludedSpansSkipped(t *testing.T) {
	text := "seizures HP:0000252"
	normalizer := newTestNormalizer(newTestIndex())

	// The code region is owned by explicit extraction.
	concepts := normalizer.Normalize(text, []types.Span{{Begin: 9, End: 19}}, "phenotype")
	require.Equal(t, []string{"HP:0001250"}, conceptIDs(concepts))
}

func TestNormalizeDeduplicates(t *testing.T) {
	normalizer := newTestNormalizer(newTestIndex())
	concepts := normalizer.Normalize("seizure, later seizures, epileptic seizure", nil, "phenotype")
	require.Equal(t, []string{"HP:0001250"}, conceptIDs(concepts))
	require.Equal(t, int32(0), concepts[0].Span.Begin)
}
