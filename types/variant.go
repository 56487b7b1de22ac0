package types

type Zygosity string

const (
	ZygosityHomozygous   Zygosity = "homozygous"
	ZygosityHeterozygous Zygosity = "heterozygous"
	ZygosityHemizygous   Zygosity = "hemizygous"
	ZygosityUnknown      Zygosity = "unknown"
)

// ParsedVariant is one atomic variant decomposed from a genomic variants
// field. Notation always keeps the raw change string; Transcript and Protein
// are filled only when the notation matched a recognized change grammar.
type ParsedVariant struct {
	Gene           string   `json:"gene,omitempty"`
	GeneUnverified bool     `json:"gene_unverified,omitempty"`
	Notation       string   `json:"notation"`
	Transcript     string   `json:"transcript,omitempty"`
	Coding         string   `json:"coding,omitempty"`
	Protein        string   `json:"protein,omitempty"`
	Zygosity       Zygosity `json:"zygosity"`
	Unrecognized   bool     `json:"unrecognized_notation,omitempty"`
}
