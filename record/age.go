package record

import (
	"fmt"
	"regexp"
	"strings"

	"pavs.com/phenonorm/types"
)

var (
	isoDurationPattern = regexp.MustCompile(`^P(?:\d+[YMWD])+$`)
	agePartPattern     = regexp.MustCompile(`(?i)(\d+)\s*(years?|yrs?|yo|y|months?|mos?|mo|m|weeks?|wks?|w|days?|d)`)
	numberPattern      = regexp.MustCompile(`^\d+$`)
)

// developmental-stage words accepted in place of a numeric age.
func getTextAges() map[string]string {
	return map[string]string{
		"newborn":     "P0D",
		"neonate":     "P0D",
		"infant":      "P6M",
		"infancy":     "P6M",
		"toddler":     "P2Y",
		"child":       "P5Y",
		"childhood":   "P5Y",
		"adolescent":  "P15Y",
		"adolescence": "P15Y",
		"adult":       "P25Y",
		"adulthood":   "P25Y",
	}
}

// ParseAge converts free-text age to an ISO-8601 duration: "22Y" becomes
// "P22Y", "6 months" becomes "P6M", "2y 6m" becomes "P2Y6M". A bare number
// is read as years. Unparseable non-empty text yields a nil age plus a parse
// warning; empty text yields nil silently.
func ParseAge(raw string) (*string, *types.Diagnostic) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	upper := strings.ToUpper(trimmed)
	if isoDurationPattern.MatchString(upper) {
		return &upper, nil
	}

	if iso, ok := getTextAges()[strings.ToLower(trimmed)]; ok {
		return &iso, nil
	}

	if numberPattern.MatchString(trimmed) {
		iso := fmt.Sprintf("P%sY", trimmed)
		return &iso, nil
	}

	if iso, ok := composeDuration(trimmed); ok {
		return &iso, nil
	}

	return nil, &types.Diagnostic{
		Kind:    types.SourceParseWarning,
		Field:   types.FieldAge,
		Message: fmt.Sprintf("age %q could not be parsed", raw),
	}
}

// composeDuration collects number+unit parts in any order and emits them in
// canonical Y, M, W, D order. The whole input must be consumed by parts and
// separators, so "school age 5" stays unparsed rather than half-read.
func composeDuration(text string) (string, bool) {
	matches := agePartPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return "", false
	}

	consumed := 0
	parts := map[byte]string{}
	for _, match := range matches {
		between := text[consumed:match[0]]
		if strings.Trim(between, " ,;and") != "" {
			return "", false
		}
		consumed = match[1]

		number := text[match[2]:match[3]]
		unit := unitLetter(text[match[4]:match[5]])
		if _, dup := parts[unit]; dup {
			return "", false
		}
		parts[unit] = number
	}
	if strings.TrimSpace(text[consumed:]) != "" {
		return "", false
	}

	var sb strings.Builder
	sb.WriteByte('P')
	for _, unit := range []byte{'Y', 'M', 'W', 'D'} {
		if number, ok := parts[unit]; ok {
			sb.WriteString(number)
			sb.WriteByte(unit)
		}
	}
	return sb.String(), true
}

func unitLetter(unit string) byte {
	switch strings.ToLower(unit)[0] {
	case 'y':
		return 'Y'
	case 'w':
		return 'W'
	case 'd':
		return 'D'
	default:
		return 'M'
	}
}
