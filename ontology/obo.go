package ontology

import (
	"bufio"
	"io"
	"strings"
)

// parseOBO reads [Term] stanzas from an OBO 1.2/1.4 flat file. Only the
// clauses the index needs are interpreted; everything else is skipped.
func parseOBO(r io.Reader) ([]Term, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var terms []Term
	var current *Term
	inTerm := false

	flush := func() {
		if current != nil && current.ID != "" {
			terms = append(terms, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			flush()
			inTerm = line == "[Term]"
			if inTerm {
				current = &Term{}
			}
			continue
		}
		if !inTerm || current == nil {
			continue
		}

		key, value, ok := splitClause(line)
		if !ok {
			continue
		}
		switch key {
		case "id":
			current.ID = value
		case "name":
			current.Label = value
		case "synonym":
			if syn := parseSynonym(value); syn != "" {
				current.Synonyms = append(current.Synonyms, syn)
			}
		case "is_a":
			// "HP:0000118 ! Phenotypic abnormality"
			parent := value
			if idx := strings.Index(parent, "!"); idx >= 0 {
				parent = parent[:idx]
			}
			parent = strings.TrimSpace(parent)
			if parent != "" {
				current.Parents = append(current.Parents, parent)
			}
		case "is_obsolete":
			current.Obsolete = value == "true"
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

func splitClause(line string) (key string, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, true
}

// parseSynonym extracts the quoted text from a synonym clause, e.g.
// `"Poor coordination" EXACT [ORCID:...]` -> `Poor coordination`.
func parseSynonym(value string) string {
	if !strings.HasPrefix(value, `"`) {
		return ""
	}
	end := strings.Index(value[1:], `"`)
	if end < 0 {
		return ""
	}
	return value[1 : end+1]
}
