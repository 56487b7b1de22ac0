package ontology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testOBO = `format-version: 1.2
data-version: hp/releases/2024-04-26

[Term]
id: HP:0000118
name: Phenotypic abnormality

[Term]
id: HP:0001250
name: Seizure
synonym: "Epileptic seizure" EXACT []
synonym: "Seizures" EXACT [HPO:probinson]
is_a: HP:0000118 ! Phenotypic abnormality

[Term]
id: HP:0002123
name: Generalized myoclonic seizure
is_a: HP:0001250 ! Seizure

[Term]
id: HP:0001263
name: Global developmental delay
synonym: "Developmental delay" EXACT []
is_a: HP:0000118 ! Phenotypic abnormality

[Term]
id: HP:0200134
name: obsolete Epileptic encephalopathy
is_obsolete: true

[Typedef]
id: part_of
name: part of
`

func writeTestOBO(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hp.obo")
	require.NoError(t, os.WriteFile(path, []byte(testOBO), 0600))
	return path
}

func TestLoad(t *testing.T) {
	index, err := Load(writeTestOBO(t))
	require.NoError(t, err)

	seizure, ok := index.LookupByID("HP:0001250")
	require.True(t, ok)
	require.Equal(t, "Seizure", seizure.Label)
	require.Equal(t, []string{"Epileptic seizure", "Seizures"}, seizure.Synonyms)

	// Obsolete terms stay addressable by ID but are flagged.
	obsolete, ok := index.LookupByID("HP:0200134")
	require.True(t, ok)
	require.True(t, obsolete.Obsolete)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.obo"))
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.obo")
	require.NoError(t, os.WriteFile(path, []byte("format-version: 1.2\n"), 0600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLookupByLabel(t *testing.T) {
	index, err := Load(writeTestOBO(t))
	require.NoError(t, err)

	for _, text := range []string{"seizure", "epileptic seizure", "seizures"} {
		term, ok := index.LookupByLabel(text)
		require.True(t, ok, "expected %q to resolve", text)
		require.Equal(t, "HP:0001250", term.ID)
	}

	// Obsolete labels are not resolvable.
	_, ok := index.LookupByLabel(NormalizeLabel("obsolete Epileptic encephalopathy"))
	require.False(t, ok)

	_, ok = index.LookupByLabel("no such phenotype")
	require.False(t, ok)
}

func TestAncestors(t *testing.T) {
	index, err := Load(writeTestOBO(t))
	require.NoError(t, err)

	ancestors := index.Ancestors("HP:0002123")
	require.True(t, ancestors["HP:0001250"])
	require.True(t, ancestors["HP:0000118"])
	require.False(t, ancestors["HP:0002123"])
	require.Len(t, ancestors, 2)

	require.Empty(t, index.Ancestors("HP:0000118"))
}

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"Global developmental delay":  "global developmental delay",
		"  Seizure,  generalized  ":   "seizure generalized",
		"Short stature (disproportionate)": "short stature disproportionate",
		"...":                         "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeLabel(in), "input %q", in)
	}
}
