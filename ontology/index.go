package ontology

import (
	"fmt"
	"os"
	"strings"

	"pavs.com/phenonorm/logger"
)

// LoadError means the ontology resource is missing or corrupt. It is a fatal
// startup condition, never a per-record one.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load ontology from %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Term struct {
	ID       string
	Label    string
	Synonyms []string
	Parents  []string
	Obsolete bool
}

// Index is the read-only lookup over a loaded ontology. It is safe for
// concurrent readers; nothing mutates it after Load returns.
type Index struct {
	byID    map[string]*Term
	byLabel map[string]*Term
	labels  []IndexedLabel
}

// IndexedLabel is one normalized label or synonym together with the term it
// resolves to, for fuzzy scans over the full synonym set.
type IndexedLabel struct {
	Norm   string
	TermID string
}

// Load reads an OBO-format term file and builds the index. Obsolete terms
// are kept addressable by ID (so stale references can be detected and
// reported) but their labels are not indexed for resolution.
func Load(path string) (*Index, error) {
	onLogger := logger.NewLogger("Ontology index").With().
		Str("path", path).Logger()
	onLogger.Info().Msg("Started loading")

	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	terms, err := parseOBO(file)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(terms) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("no terms found")}
	}

	index := Build(terms)
	onLogger.Info().Msgf("%d terms were loaded, %d labels indexed", len(index.byID), len(index.labels))
	return index, nil
}

// Build constructs an index from already-parsed terms.
func Build(terms []Term) *Index {
	index := &Index{
		byID:    make(map[string]*Term, len(terms)),
		byLabel: make(map[string]*Term),
	}
	for i := range terms {
		term := &terms[i]
		index.byID[term.ID] = term
		if term.Obsolete {
			continue
		}
		for _, name := range append([]string{term.Label}, term.Synonyms...) {
			norm := NormalizeLabel(name)
			if norm == "" {
				continue
			}
			if _, exists := index.byLabel[norm]; !exists {
				index.byLabel[norm] = term
				index.labels = append(index.labels, IndexedLabel{Norm: norm, TermID: term.ID})
			}
		}
	}
	return index
}

func (index *Index) LookupByID(id string) (*Term, bool) {
	term, ok := index.byID[id]
	return term, ok
}

// LookupByLabel resolves already-normalized text against labels and synonyms.
func (index *Index) LookupByLabel(normalizedText string) (*Term, bool) {
	term, ok := index.byLabel[normalizedText]
	return term, ok
}

// Labels exposes the full normalized label set for fuzzy scans. Callers must
// not mutate the returned slice.
func (index *Index) Labels() []IndexedLabel {
	return index.labels
}

// Ancestors returns the transitive is-a closure of id, excluding id itself.
// The ontology is a graph, not a tree, so multiple parents are followed.
func (index *Index) Ancestors(id string) map[string]bool {
	result := make(map[string]bool)
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		term, ok := index.byID[current]
		if !ok {
			continue
		}
		for _, parent := range term.Parents {
			if !result[parent] {
				result[parent] = true
				queue = append(queue, parent)
			}
		}
	}
	return result
}

// NormalizeLabel lowercases, strips punctuation and collapses whitespace so
// that differently-encoded spellings of the same concept key identically.
func NormalizeLabel(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
