package types

// Mention is a candidate clinical phrase located in free text, prior to
// vocabulary resolution. Span offsets address the original text.
type Mention struct {
	Text     string
	Span     Span
	Polarity Polarity
}
