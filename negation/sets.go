package negation

func getNegParticles() map[string]bool {
	return map[string]bool{
		"not": true,
		"n't": true,
		"'t":  true,
	}
}

func getNegVerbs() map[string]bool {
	return map[string]bool{
		"deny":      true,
		"denies":    true,
		"denied":    true,
		"denying":   true,
		"exclude":   true,
		"excludes":  true,
		"excluding": true,
		"excluded":  true,
		"lacks":     true,
		"lacked":    true,
	}
}

func getNegPrepositions() map[string]bool {
	return map[string]bool{
		"without": true,
		"absent":  true,
		"none":    true,
	}
}

func getNegDeterminers() map[string]bool {
	return map[string]bool{
		"no":      true,
		"neither": true,
		"nor":     true,
		"never":   true,
	}
}

func getNegAdjectives() map[string]bool {
	return map[string]bool{
		"unremarkable": true,
		"negative":     true,
		"free":         true,
	}
}

// getNegCollocations holds multiword cues checked as adjacent token pairs,
// e.g. "ruled out" and "rules out".
func getNegCollocations() map[string]string {
	return map[string]string{
		"rule":  "out",
		"rules": "out",
		"ruled": "out",
	}
}

// GetCueWords returns the union of all single-token negation cues plus the
// leading words of multiword cues, for callers that need to recognize a cue
// without classifying it.
func GetCueWords() map[string]bool {
	cues := map[string]bool{}
	for _, set := range []map[string]bool{
		getNegParticles(),
		getNegVerbs(),
		getNegPrepositions(),
		getNegDeterminers(),
		getNegAdjectives(),
	} {
		for word := range set {
			cues[word] = true
		}
	}
	for first := range getNegCollocations() {
		cues[first] = true
	}
	return cues
}

// GetDefaultBoundaries are tokens that terminate a negation scope. A cue on
// the far side of a boundary does not reach the candidate span.
func GetDefaultBoundaries() map[string]bool {
	return map[string]bool{
		".":       true,
		";":       true,
		":":       true,
		")":       true,
		"but":     true,
		"however": true,
		"except":  true,
		"though":  true,
		"apart":   true,
	}
}
