package api

import (
	"encoding/json"
	"io"
	"net/http"

	"pavs.com/phenonorm/merge"
	"pavs.com/phenonorm/pipeline"
	"pavs.com/phenonorm/types"
)

type Request struct {
	Converter *pipeline.Converter
}

// ProcessData runs the conversion over a single free-text body and responds
// with the canonical record. The body is treated as the phenotype narrative of
// an ad-hoc case.
func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != "POST" {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	mapped := merge.MappedRecord{
		Origin: "api",
		Fields: map[string]string{
			types.FieldPhenotypes: string(msg),
		},
	}
	logger.Info().Msg("Starting conversion for request from API")
	records := req.Converter.Convert([]merge.MappedRecord{mapped})

	body, err := json.MarshalIndent(records[0], "", "  ")
	if err != nil {
		logger.Err(err).Int("status", http.StatusInternalServerError).Msg("Could not marshal canonical record")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(body)
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
