package negation

import (
	"strings"

	"pavs.com/phenonorm/types"
)

// Analyzer classifies the polarity of the token range [begin, end) within
// its surrounding token context.
type Analyzer func(tokens []string, begin int, end int) types.Polarity

// NewAnalyzer builds a scope-window negation classifier. Cues are searched
// left and right of the candidate span, up to the configured window sizes,
// never across a boundary token.
func NewAnalyzer(maxLeftScopeSize int, maxRightScopeSize int, scopes []types.Scope, boundaries map[string]bool) Analyzer {
	negVerbs := getNegVerbs()
	negParticles := getNegParticles()
	negPrepositions := getNegPrepositions()
	negDeterminers := getNegDeterminers()
	negAdjectives := getNegAdjectives()
	negCollocations := getNegCollocations()

	isLeftCue := func(token string, next string) bool {
		if negDeterminers[token] || negPrepositions[token] || negParticles[token] || negVerbs[token] {
			return true
		}
		if second, ok := negCollocations[token]; ok && next == second {
			return true
		}
		return false
	}

	isRightCue := func(token string, next string) bool {
		if negAdjectives[token] || negPrepositions[token] {
			return true
		}
		if second, ok := negCollocations[token]; ok && next == second {
			return true
		}
		return false
	}

	scopeEnabled := func(wanted types.Scope) bool {
		for _, scope := range scopes {
			if scope == wanted {
				return true
			}
		}
		return false
	}

	return func(tokens []string, begin int, end int) types.Polarity {
		if begin < 0 || end > len(tokens) || begin >= end {
			return types.PolarityNeutral
		}

		if scopeEnabled(types.ScopeLeft) {
			for i := begin - 1; i >= 0 && begin-i <= maxLeftScopeSize; i-- {
				token := strings.ToLower(tokens[i])
				if boundaries[token] {
					break
				}
				next := ""
				if i+1 < len(tokens) {
					next = strings.ToLower(tokens[i+1])
				}
				if isLeftCue(token, next) {
					return types.PolarityNegative
				}
			}
		}

		if scopeEnabled(types.ScopeRight) {
			for i := end; i < len(tokens) && i-end < maxRightScopeSize; i++ {
				token := strings.ToLower(tokens[i])
				if boundaries[token] {
					break
				}
				next := ""
				if i+1 < len(tokens) {
					next = strings.ToLower(tokens[i+1])
				}
				if isRightCue(token, next) {
					return types.PolarityNegative
				}
			}
		}

		return types.PolarityPositive
	}
}
