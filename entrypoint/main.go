package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"pavs.com/phenonorm/api"
	"pavs.com/phenonorm/logger"
	"pavs.com/phenonorm/ontology"
	"pavs.com/phenonorm/pipeline"
	"pavs.com/phenonorm/record"
	"pavs.com/phenonorm/types"
	"pavs.com/phenonorm/variant"
	"pavs.com/phenonorm/worker"
)

type Config struct {
	SourceConfigPath string  `envconfig:"PAVS_SOURCE_CONFIG_PATH" required:"true"`
	OntologyPath     string  `envconfig:"PAVS_ONTOLOGY_PATH" required:"true"`
	GeneVocabPath    string  `envconfig:"PAVS_GENE_VOCAB_PATH" required:"true"`
	Workers          int     `envconfig:"PAVS_WORKERS" default:"4"`
	FuzzyThreshold   float64 `envconfig:"PAVS_FUZZY_THRESHOLD" default:"0.6"`
	OutputLayout     string  `envconfig:"PAVS_OUTPUT_LAYOUT" default:"json"`
	OutputPath       string  `envconfig:"PAVS_OUTPUT_PATH" default:"phenonorm_records.json"`
	RestAPIActive    bool    `envconfig:"PAVS_REST_API_ACTIVE" default:"false"`
	RestAPIPort      string  `envconfig:"PAVS_REST_API_PORT" default:"10000"`
}

const converterStartMaxRetries = 5

type loadedPipeline struct {
	converter *pipeline.Converter
	sources   []types.SourceConfig
}

func main() {
	logger.SetupLogging()
	pnLogger := logger.NewLogger("Main")
	fatalErrLogger := pnLogger.Fatal().Caller()
	batchMode := flag.Bool("batch", false, "convert the configured sources once and exit")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	// Load converter. Ontology and vocabulary files may still be syncing when
	// the container starts, so retry before giving up.
	pipelineChannel := make(chan loadedPipeline)
	go func() {
		for retry := 0; retry < converterStartMaxRetries; retry++ {
			cfgs, err := types.LoadSourceConfigs(config.SourceConfigPath)
			if err != nil {
				pnLogger.Err(err).Msg("Failed to load source configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			pnLogger.Info().Msgf("Loaded %d source configurations", len(cfgs))

			index, err := ontology.Load(config.OntologyPath)
			if err != nil {
				pnLogger.Err(err).Msg("Failed to load ontology. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			genes, err := variant.LoadGeneVocabulary(config.GeneVocabPath)
			if err != nil {
				pnLogger.Err(err).Msg("Failed to load gene vocabulary. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			pnLogger.Info().Msg("Converter loaded")
			pipelineChannel <- loadedPipeline{
				converter: pipeline.NewConverter(index, genes, config.FuzzyThreshold, config.Workers),
				sources:   cfgs,
			}
			return
		}
		fatalErrLogger.Msg("Could not load converter after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until the converter loads
	loaded := <-pipelineChannel

	if *batchMode {
		records, err := loaded.converter.Run(loaded.sources)
		if err != nil {
			fatalErrLogger.Err(err).Msg("Conversion failed")
			os.Exit(1)
		}
		if err = record.WriteLayout(config.OutputLayout, config.OutputPath, records); err != nil {
			fatalErrLogger.Err(err).Msg("Failed to write canonical records")
			os.Exit(1)
		}
		pnLogger.Info().Msgf("Wrote %d canonical records to %s", len(records), config.OutputPath)
		return
	}

	if config.RestAPIActive {
		go func() {
			pnLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Converter: loaded.converter,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			pnLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	pnLogger.Info().Msg("Start conversion worker")
	for {
		rmqWorker, err := worker.New(loaded.converter, loaded.sources)
		if err != nil {
			pnLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			pnLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}
