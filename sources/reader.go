package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/types"
)

var pnLogger = logger.NewLogger("Source reader")

// Read loads every row of the configured source file as raw records. The
// first row is the header; values are trimmed but otherwise untouched.
func Read(cfg types.SourceConfig) ([]types.SourceRecord, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", cfg.Name, err)
	}
	defer file.Close()
	return ReadFrom(cfg, file)
}

// ReadFrom is Read over an already-open stream, for callers that fetch
// source payloads from object storage instead of the local filesystem.
func ReadFrom(cfg types.SourceConfig, r io.Reader) ([]types.SourceRecord, error) {
	var rows [][]string
	var err error
	switch cfg.Format {
	case types.FormatTSV:
		rows, err = readTSV(r)
	case types.FormatXLSX:
		rows, err = readXLSX(cfg, r)
	default:
		err = fmt.Errorf("unsupported format %q", cfg.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", cfg.Name, err)
	}

	records := frame(cfg.Name, rows)
	pnLogger.Info().Msgf("%d records were read from source %s", len(records), cfg.Name)
	return records, nil
}

func readTSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(cfg types.SourceConfig, r io.Reader) ([][]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheet := cfg.Sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}
	return workbook.GetRows(sheet)
}

// frame turns header+data rows into records. Short rows are padded with
// empty values; rows longer than the header lose the overflow.
func frame(origin string, rows [][]string) []types.SourceRecord {
	if len(rows) == 0 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]types.SourceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				fields[name] = strings.TrimSpace(row[i])
			} else {
				fields[name] = ""
			}
		}
		records = append(records, types.SourceRecord{Origin: origin, Fields: fields})
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
