package types

import (
	"fmt"
	"pavs.com/phenonorm/utils"
)

type HasSpan interface {
	GetSpan() *Span
}

type Span struct {
	Begin int32 `json:"begin"`
	End   int32 `json:"end"`
}

func (span Span) Len() int32 {
	return span.End - span.Begin
}

// Covers reports whether span fully contains other.
func (span Span) Covers(other Span) bool {
	return span.Begin <= other.Begin && span.End >= other.End
}

func (span Span) Overlaps(other Span) bool {
	return span.Begin < other.End && other.Begin < span.End
}

func (span Span) GetHashCode() uint64 {
	key := fmt.Sprintf("%d_%d", span.Begin, span.End)
	return utils.HashString(key)
}

func SpanSortFunction(spanA *Span, spanB *Span) bool {
	if spanA.Begin == spanB.Begin {
		return spanA.End < spanB.End
	}
	return spanA.Begin < spanB.Begin
}
