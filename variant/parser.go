package variant

import (
	"regexp"
	"strings"

	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/types"
	"pavs.com/phenonorm/utils"
)

var pnLogger = logger.NewLogger("Variant parser")

var (
	// GENE:NOTATION, possibly with a transcript between them.
	geneColonPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]{1,14}):\s*(.+)$`)
	// GENE (notation)
	geneParenPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]{1,14})\s*\((.+)\)$`)
	// GENE c.X / GENE p.X / GENE NM_...
	geneSpacePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]{1,14})\s+((?:N[MRC]_|[cgnm]\.|p\.).+)$`)

	transcriptPattern = regexp.MustCompile(`N[MRC]_\d+(?:\.\d+)?`)
	codingPattern     = regexp.MustCompile(`[cgnm]\.[A-Za-z0-9_>*+=-]+`)
	proteinPattern    = regexp.MustCompile(`p\.[A-Za-z0-9_*=]+`)
)

// reference-sequence prefixes that the gene patterns must not mistake for
// gene symbols.
func isReferencePrefix(symbol string) bool {
	upper := strings.ToUpper(symbol)
	if strings.HasPrefix(upper, "CHR") {
		return true
	}
	for _, prefix := range []string{"NM", "NR", "NC", "NP"} {
		if upper == prefix {
			return true
		}
	}
	return false
}

func getZygosityKeywords() map[string]types.Zygosity {
	return map[string]types.Zygosity{
		"homozygous":            types.ZygosityHomozygous,
		"homozygote":            types.ZygosityHomozygous,
		"hom":                   types.ZygosityHomozygous,
		"heterozygous":          types.ZygosityHeterozygous,
		"heterozygote":          types.ZygosityHeterozygous,
		"het":                   types.ZygosityHeterozygous,
		"compound heterozygous": types.ZygosityHeterozygous,
		"hemizygous":            types.ZygosityHemizygous,
		"hemizygote":            types.ZygosityHemizygous,
		"hemi":                  types.ZygosityHemizygous,
	}
}

// Parser turns raw variant field text into structured variants. A gene
// vocabulary, when present, is used to flag unverified symbols rather than
// to reject them.
type Parser struct {
	genes    map[string]bool
	zygosity map[string]types.Zygosity
}

func NewParser(genes map[string]bool) *Parser {
	return &Parser{
		genes:    genes,
		zygosity: getZygosityKeywords(),
	}
}

// LoadGeneVocabulary reads one gene symbol per line; blanks and #-comments
// are skipped.
func LoadGeneVocabulary(path string) (map[string]bool, error) {
	symbols, err := utils.ReadSet(path)
	if err != nil {
		return nil, err
	}
	genes := make(map[string]bool, len(symbols))
	for symbol := range symbols {
		genes[strings.ToUpper(symbol)] = true
	}
	pnLogger.Info().Msgf("%d gene symbols were loaded", len(genes))
	return genes, nil
}

// Parse splits the raw text into variant segments on ';', '|' and newlines,
// parses each, and applies zygosity found either in zygosityField or inline
// as a standalone segment. An explicit zygosityField wins over inline text.
func (parser *Parser) Parse(raw string, zygosityField string) []types.ParsedVariant {
	var variants []types.ParsedVariant
	inlineZygosity := types.ZygosityUnknown

	for _, segment := range splitSegments(raw) {
		if zygosity, ok := parser.lookupZygosity(segment); ok {
			inlineZygosity = zygosity
			continue
		}
		variants = append(variants, parser.parseSegment(segment))
	}

	zygosity := inlineZygosity
	if explicit, ok := parser.lookupZygosity(zygosityField); ok {
		zygosity = explicit
	}
	for i := range variants {
		variants[i].Zygosity = zygosity
	}
	return variants
}

func (parser *Parser) parseSegment(segment string) types.ParsedVariant {
	variant := types.ParsedVariant{Notation: segment, Zygosity: types.ZygosityUnknown}

	gene, rest := splitGene(segment)
	if gene != "" {
		variant.Gene = strings.ToUpper(gene)
		variant.GeneUnverified = len(parser.genes) > 0 && !parser.genes[variant.Gene]
	}

	variant.Transcript = transcriptPattern.FindString(rest)
	variant.Coding = codingPattern.FindString(rest)
	variant.Protein = proteinPattern.FindString(rest)

	if variant.Gene == "" && variant.Transcript == "" &&
		variant.Coding == "" && variant.Protein == "" {
		variant.Unrecognized = true
		pnLogger.Debug().Msgf("unrecognized variant text %q", segment)
	}
	return variant
}

// splitGene peels a leading gene symbol off the segment, returning the
// remainder for notation decomposition. Reference-sequence identifiers and
// chromosome names are not genes.
func splitGene(segment string) (string, string) {
	for _, pattern := range []*regexp.Regexp{geneColonPattern, geneParenPattern, geneSpacePattern} {
		groups := pattern.FindStringSubmatch(segment)
		if groups == nil {
			continue
		}
		if isReferencePrefix(groups[1]) {
			break
		}
		return groups[1], groups[2]
	}
	return "", segment
}

func (parser *Parser) lookupZygosity(text string) (types.Zygosity, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.Join(strings.Fields(normalized), " ")
	zygosity, ok := parser.zygosity[normalized]
	return zygosity, ok
}

func splitSegments(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '|' || r == '\n'
	})
	var segments []string
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}
