package ner

import (
	"strings"

	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/negation"
	"pavs.com/phenonorm/types"
)

var pnLogger = logger.NewLogger("NER")

// chunk delimiters: coordination and clause-linking words that separate
// one clinical finding from the next within a sentence. Negation cues are
// delimiters too, so they stay outside the mention span where the polarity
// analyzer scans for them.
func getChunkSplitters() map[string]bool {
	splitters := map[string]bool{
		"and":       true,
		"or":        true,
		"with":      true,
		"plus":      true,
		"also":      true,
		"including": true,
		"since":     true,
		"who":       true,
		"which":     true,
		"that":      true,
		"was":       true,
		"were":      true,
		"is":        true,
		"are":       true,
		"has":       true,
		"had":       true,
		"have":      true,
		"presented": true,
		"presents":  true,
		"showed":    true,
		"shows":     true,
		"noted":     true,
		"reported":  true,
		"out":       true,
		"of":        true,
	}
	for cue := range negation.GetCueWords() {
		splitters[cue] = true
	}
	return splitters
}

// leading/trailing words trimmed from a chunk before lookup.
func getEdgeStopwords() map[string]bool {
	return map[string]bool{
		"the":       true,
		"a":         true,
		"an":        true,
		"his":       true,
		"her":       true,
		"their":     true,
		"some":      true,
		"mild":      true,
		"severe":    true,
		"profound":  true,
		"bilateral": true,
		"evidence":  true,
		"history":   true,
	}
}

// getPhraseBlacklist lists words that look like findings to the chunker but
// never denote phenotypes. A chunk containing any of them is discarded.
func getPhraseBlacklist() map[string]bool {
	return map[string]bool{
		"patient":  true,
		"patients": true,
		"man":      true,
		"woman":    true,
		"male":     true,
		"female":   true,
		"evidence": true,
		"person":   true,
		"subject":  true,
	}
}

const minPhraseLength = 4

// Recognizer locates candidate phenotype mentions in free text and
// classifies their polarity.
type Recognizer struct {
	analyzer  negation.Analyzer
	splitters map[string]bool
	stopwords map[string]bool
	blacklist map[string]bool
}

func NewRecognizer(analyzer negation.Analyzer) *Recognizer {
	return &Recognizer{
		analyzer:  analyzer,
		splitters: getChunkSplitters(),
		stopwords: getEdgeStopwords(),
		blacklist: getPhraseBlacklist(),
	}
}

// Recognize returns candidate mentions in document order. Each mention
// covers a maximal run of word tokens between delimiters, trimmed of edge
// stopwords; chunks that are too short or blacklisted are dropped.
func (recognizer *Recognizer) Recognize(text string) []types.Mention {
	tokens := tokenize(text)
	tokenTexts := make([]string, len(tokens))
	for i, tok := range tokens {
		tokenTexts[i] = tok.text
	}

	var mentions []types.Mention
	chunkStart := -1

	flush := func(start int, end int) {
		begin, finish := recognizer.trim(tokens, start, end)
		if begin >= finish {
			return
		}
		phrase := text[tokens[begin].begin:tokens[finish-1].end]
		normalized := strings.ToLower(strings.Join(tokenTexts[begin:finish], " "))
		if len(normalized) < minPhraseLength || recognizer.blacklist[normalized] {
			return
		}
		for i := begin; i < finish; i++ {
			if recognizer.blacklist[strings.ToLower(tokenTexts[i])] {
				return
			}
		}
		mentions = append(mentions, types.Mention{
			Text: phrase,
			Span: types.Span{
				Begin: tokens[begin].begin,
				End:   tokens[finish-1].end,
			},
			Polarity: recognizer.analyzer(tokenTexts, begin, finish),
		})
	}

	for i, tok := range tokens {
		lower := strings.ToLower(tok.text)
		if isPunctuation(tok.text) || recognizer.splitters[lower] {
			if chunkStart >= 0 {
				flush(chunkStart, i)
				chunkStart = -1
			}
			continue
		}
		if chunkStart < 0 {
			chunkStart = i
		}
	}
	if chunkStart >= 0 {
		flush(chunkStart, len(tokens))
	}

	pnLogger.Debug().Msgf("%d candidate mentions found", len(mentions))
	return mentions
}

func (recognizer *Recognizer) trim(tokens []token, start int, end int) (int, int) {
	for start < end && recognizer.stopwords[strings.ToLower(tokens[start].text)] {
		start++
	}
	for end > start && recognizer.stopwords[strings.ToLower(tokens[end-1].text)] {
		end--
	}
	return start, end
}

func isPunctuation(s string) bool {
	if len(s) != 1 {
		return false
	}
	switch s[0] {
	case '.', ',', ';', ':', '(', ')', '[', ']', '/', '!', '?', '"':
		return true
	}
	return false
}
