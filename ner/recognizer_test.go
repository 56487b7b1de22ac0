package ner

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pavs.com/phenonorm/negation"
	"pavs.com/phenonorm/types"
)

func newTestRecognizer() *Recognizer {
	analyzer := negation.NewAnalyzer(20, 10,
		[]types.Scope{types.ScopeLeft, types.ScopeRight},
		negation.GetDefaultBoundaries())
	return NewRecognizer(analyzer)
}

func mentionTexts(mentions []types.Mention) []string {
	texts := make([]string, len(mentions))
	for i, m := range mentions {
		texts[i] = m.Text
	}
	return texts
}

func TestRecognizeSplitsOnCoordination(t *testing.T) {
	recognizer := newTestRecognizer()
	mentions := recognizer.Recognize("The patient presented with hypotonia and seizures.")
	require.Equal(t, []string{"hypotonia", "seizures"}, mentionTexts(mentions))
	for _, m := range mentions {
		require.Equal(t, types.PolarityPositive, m.Polarity)
	}
}

func TestRecognizeNegatedMention(t *testing.T) {
	recognizer := newTestRecognizer()
	mentions := recognizer.Recognize("no evidence of hepatomegaly, denies seizures")
	require.Equal(t, []string{"hepatomegaly", "seizures"}, mentionTexts(mentions))
	require.Equal(t, types.PolarityNegative, mentions[0].Polarity)
	require.Equal(t, types.PolarityNegative, mentions[1].Polarity)
}

func TestRecognizeSpansAddressSource(t *testing.T) {
	text := "Girl with microcephaly."
	recognizer := newTestRecognizer()
	mentions := recognizer.Recognize(text)
	require.Len(t, mentions, 2)
	microcephaly := mentions[1]
	require.Equal(t, "microcephaly", text[microcephaly.Span.Begin:microcephaly.Span.End])
}

func TestRecognizeDropsBlacklistedAndShort(t *testing.T) {
	recognizer := newTestRecognizer()
	mentions := recognizer.Recognize("The patient, a 4 yo male, has global developmental delay.")
	require.Equal(t, []string{"global developmental delay"}, mentionTexts(mentions))
}

func TestRecognizeTrimsEdgeStopwords(t *testing.T) {
	recognizer := newTestRecognizer()
	mentions := recognizer.Recognize("family history of severe intellectual disability")
	require.Equal(t, []string{"family"}, mentionTexts(mentions)[:1])
	require.Contains(t, mentionTexts(mentions), "intellectual disability")
}

func TestRecognizeEmptyText(t *testing.T) {
	recognizer := newTestRecognizer()
	require.Empty(t, recognizer.Recognize(""))
	require.Empty(t, recognizer.Recognize("   ,;:   "))
}
