package ner

import "unicode"

type token struct {
	text  string
	begin int32
	end   int32
}

// tokenize splits text into word and punctuation tokens, preserving
// character offsets. Hyphens and apostrophes inside a word stay attached
// so terms like "port-wine stain" survive as two tokens, not four.
func tokenize(text string) []token {
	var tokens []token
	runes := []rune(text)

	// Rune and byte offsets coincide only for ASCII, so byte positions are
	// tracked separately as the spans address the original string.
	bytePos := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		size := runeLen(r)

		if unicode.IsSpace(r) {
			i++
			bytePos += size
			continue
		}

		if isWordRune(r) {
			start := bytePos
			startIdx := i
			for i < len(runes) && (isWordRune(runes[i]) || isInnerRune(runes[i], i, startIdx, runes)) {
				bytePos += runeLen(runes[i])
				i++
			}
			tokens = append(tokens, token{
				text:  string(runes[startIdx:i]),
				begin: int32(start),
				end:   int32(bytePos),
			})
			continue
		}

		// Punctuation becomes a single-rune token.
		tokens = append(tokens, token{
			text:  string(r),
			begin: int32(bytePos),
			end:   int32(bytePos + size),
		})
		i++
		bytePos += size
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isInnerRune accepts hyphens and apostrophes only between word runes.
func isInnerRune(r rune, idx int, start int, runes []rune) bool {
	if r != '-' && r != '\'' {
		return false
	}
	if idx <= start || idx+1 >= len(runes) {
		return false
	}
	return isWordRune(runes[idx-1]) && isWordRune(runes[idx+1])
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
