package pipeline

import (
	"sync"

	"pavs.com/phenonorm/fuzzy"
	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/merge"
	"pavs.com/phenonorm/negation"
	"pavs.com/phenonorm/ner"
	"pavs.com/phenonorm/normalize"
	"pavs.com/phenonorm/ontology"
	"pavs.com/phenonorm/record"
	"pavs.com/phenonorm/sources"
	"pavs.com/phenonorm/types"
	"pavs.com/phenonorm/utils"
	"pavs.com/phenonorm/variant"
)

var (
	pnLogger = logger.NewLogger("Converter")
	errLogger = pnLogger.With().Caller().Logger()
)

const (
	defaultLeftScopeSize  = 20
	defaultRightScopeSize = 10
)

// Converter is the full text-to-canonical-record pipeline: source mapping,
// sequential merge with identifier assignment, then per-case annotation and
// building fanned out over a worker pool. Per-case work never touches shared
// state, so output position is the only coordination point.
// Converter itself is stateless and safe for concurrent Convert calls; each
// batch gets its own merger so identifier sequences start at one per batch.
type Converter struct {
	annotator *Annotator
	builder   *record.Builder
	workers   int
}

func NewConverter(index *ontology.Index, genes map[string]bool, threshold float64, workers int) *Converter {
	if workers < 1 {
		workers = 1
	}
	analyzer := negation.NewAnalyzer(defaultLeftScopeSize, defaultRightScopeSize,
		[]types.Scope{types.ScopeLeft, types.ScopeRight},
		negation.GetDefaultBoundaries())
	normalizer := normalize.NewNormalizer(index, ner.NewRecognizer(analyzer),
		fuzzy.NewTokenSortMatcher(), threshold)

	return &Converter{
		annotator: NewAnnotator(normalizer, variant.NewParser(genes)),
		builder:   record.NewBuilder(index),
		workers:   workers,
	}
}

// Run reads every configured source from disk and converts the combined rows.
func (converter *Converter) Run(configs []types.SourceConfig) ([]types.CanonicalRecord, error) {
	var mapped []merge.MappedRecord
	for _, cfg := range configs {
		rows, err := sources.Read(cfg)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			mapped = append(mapped, merge.ApplyFieldMap(cfg, row))
		}
	}
	return converter.Convert(mapped), nil
}

// Convert merges the mapped rows and builds one canonical record per case.
// Merging and identifier assignment run single-threaded; annotation and
// building run on the worker pool. Results keep case order.
func (converter *Converter) Convert(mapped []merge.MappedRecord) []types.CanonicalRecord {
	cases := merge.NewMerger().Merge(mapped)

	results := make([]types.CanonicalRecord, len(cases))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < converter.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = converter.processCase(cases[idx])
			}
		}()
	}
	for idx := range cases {
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	pnLogger.Info().Msgf("%d canonical records were built", len(results))
	return results
}

// processCase isolates one case: a panic inside annotation degrades that
// case to a diagnostic-only record instead of taking the batch down.
func (converter *Converter) processCase(mergedCase merge.Case) types.CanonicalRecord {
	built, err := converter.annotateAndBuild(mergedCase)
	if err != nil {
		errLogger.Error().Err(err).Str("case", mergedCase.ID).Msg("Case processing failed")
		return types.CanonicalRecord{
			ID:         mergedCase.ID,
			Sex:        types.SexUnknown,
			Provenance: mergedCase.Provenance,
			Diagnostics: append(append([]types.Diagnostic{}, mergedCase.Diagnostics...), types.Diagnostic{
				Kind:    types.SourceParseWarning,
				Message: err.Error(),
			}),
		}
	}
	return built
}

func (converter *Converter) annotateAndBuild(mergedCase merge.Case) (result types.CanonicalRecord, err error) {
	defer utils.RecoverWithError(&err)
	concepts, variants := converter.annotator.Annotate(mergedCase)
	return converter.builder.Build(mergedCase, concepts, variants), nil
}
