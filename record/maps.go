package record

import (
	"strings"

	"pavs.com/phenonorm/types"
)

func getSexValues() map[string]types.Sex {
	return map[string]types.Sex{
		"f":        types.SexFemale,
		"female":   types.SexFemale,
		"girl":     types.SexFemale,
		"woman":    types.SexFemale,
		"m":        types.SexMale,
		"male":     types.SexMale,
		"boy":      types.SexMale,
		"man":      types.SexMale,
		"other":    types.SexOther,
		"intersex": types.SexOther,
	}
}

// classification values are matched exactly, case-insensitively; substring
// matching is deliberately avoided so "not pathogenic" never maps to
// pathogenic.
func getClassificationValues() map[string]types.Classification {
	return map[string]types.Classification{
		"pathogenic":                        types.ClassificationPathogenic,
		"p":                                 types.ClassificationPathogenic,
		"likely pathogenic":                 types.ClassificationLikelyPathogenic,
		"lp":                                types.ClassificationLikelyPathogenic,
		"vus":                               types.ClassificationUncertain,
		"uncertain":                         types.ClassificationUncertain,
		"uncertain significance":            types.ClassificationUncertain,
		"variant of uncertain significance": types.ClassificationUncertain,
		"likely benign":                     types.ClassificationLikelyBenign,
		"lb":                                types.ClassificationLikelyBenign,
		"benign":                            types.ClassificationBenign,
		"b":                                 types.ClassificationBenign,
	}
}

// MapSex normalizes free-text sex values. Anything unrecognized, including
// empty text, maps to unknown.
func MapSex(raw string) types.Sex {
	if sex, ok := getSexValues()[normalizeValue(raw)]; ok {
		return sex
	}
	return types.SexUnknown
}

// MapClassification resolves a pathogenicity tier. The boolean is false when
// the value is absent or not in the accepted vocabulary.
func MapClassification(raw string) (types.Classification, bool) {
	classification, ok := getClassificationValues()[normalizeValue(raw)]
	return classification, ok
}

func normalizeValue(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
