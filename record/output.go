package record

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"pavs.com/phenonorm/types"
)

const (
	LayoutAggregate  = "json"
	LayoutLines      = "json-lines"
	LayoutIndividual = "individual"
)

// WriteAggregate emits all records as one indented JSON array.
func WriteAggregate(w io.Writer, records []types.CanonicalRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// WriteLines emits one compact JSON document per line.
func WriteLines(w io.Writer, records []types.CanonicalRecord) error {
	encoder := json.NewEncoder(w)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndividual writes each record to <dir>/<ID>.json, creating the
// directory if needed.
func WriteIndividual(dir string, records []types.CanonicalRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, record := range records {
		buf, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path.Join(dir, record.ID+".json"), buf, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// WriteLayout dispatches on the configured output layout. For the aggregate
// and line layouts target is a file path; for the individual layout it is a
// directory.
func WriteLayout(layout string, target string, records []types.CanonicalRecord) error {
	switch layout {
	case LayoutIndividual:
		return WriteIndividual(target, records)
	case LayoutAggregate, LayoutLines:
		file, err := os.Create(target)
		if err != nil {
			return err
		}
		defer file.Close()
		if layout == LayoutAggregate {
			return WriteAggregate(file, records)
		}
		return WriteLines(file, records)
	default:
		return fmt.Errorf("unknown output layout %q", layout)
	}
}
