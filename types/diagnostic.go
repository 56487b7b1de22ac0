package types

type DiagnosticKind string

const (
	SourceParseWarning   DiagnosticKind = "source_parse_warning"
	MergeConflictWarning DiagnosticKind = "merge_conflict_warning"
)

// Diagnostic records a non-fatal degradation: a field or span that could not
// be normalized, or a merge conflict resolved by policy. Diagnostics ride on
// the owning record and never abort batch processing.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
}
