package record

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pavs.com/phenonorm/types"
)

func TestParseAgeNumericForms(t *testing.T) {
	cases := map[string]string{
		"22Y":               "P22Y",
		"22 years":          "P22Y",
		"3 yrs":             "P3Y",
		"4yo":               "P4Y",
		"6M":                "P6M",
		"6 months":          "P6M",
		"10 days":           "P10D",
		"3 weeks":           "P3W",
		"2y 6m":             "P2Y6M",
		"2 years, 6 months": "P2Y6M",
		"7":                 "P7Y",
		"P22Y":              "P22Y",
		"p3m":               "P3M",
	}
	for raw, expected := range cases {
		age, diagnostic := ParseAge(raw)
		require.Nil(t, diagnostic, "input: %q", raw)
		require.NotNil(t, age, "input: %q", raw)
		require.Equal(t, expected, *age, "input: %q", raw)
	}
}

func TestParseAgeTextStages(t *testing.T) {
	cases := map[string]string{
		"newborn":    "P0D",
		"Infant":     "P6M",
		"child":      "P5Y",
		"adolescent": "P15Y",
		"ADULT":      "P25Y",
	}
	for raw, expected := range cases {
		age, diagnostic := ParseAge(raw)
		require.Nil(t, diagnostic)
		require.Equal(t, expected, *age, "input: %q", raw)
	}
}

func TestParseAgeEmpty(t *testing.T) {
	age, diagnostic := ParseAge("  ")
	require.Nil(t, age)
	require.Nil(t, diagnostic)
}

func TestParseAgeUnparseable(t *testing.T) {
	for _, raw := range []string{"school age", "prenatal onset 5", "unknown"} {
		age, diagnostic := ParseAge(raw)
		require.Nil(t, age, "input: %q", raw)
		require.NotNil(t, diagnostic, "input: %q", raw)
		require.Equal(t, types.SourceParseWarning, diagnostic.Kind)
		require.Equal(t, types.FieldAge, diagnostic.Field)
	}
}
