package types

import (
	"errors"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"pavs.com/phenonorm/logger"
)

const (
	FormatTSV  = "tsv"
	FormatXLSX = "xlsx"
)

// SourceConfig is the declarative description of one origin data source:
// where its file lives, how it is framed, and how its columns map onto the
// canonical field set. Precedence between sources is the Order value; lower
// comes first and wins merge conflicts.
type SourceConfig struct {
	Name     string            `yaml:"name" json:"name"`
	FilePath string            `yaml:"file_path" json:"file_path"`
	Format   string            `yaml:"format" json:"format"`
	Order    int               `yaml:"order" json:"order"`
	Sheet    string            `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	// FieldMap maps source column names to canonical field names. Columns
	// that map to the same canonical field are joined with ";" in order.
	FieldMap map[string]string `yaml:"field_map" json:"field_map"`
	// ValuesTreatedAsNull lists source placeholder strings ("Not reported",
	// "N/A") treated as absent during merging.
	ValuesTreatedAsNull []string `yaml:"null_values" json:"null_values"`
}

func (cfg SourceConfig) IsNullValue(v string) bool {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return true
	}
	for _, nv := range cfg.ValuesTreatedAsNull {
		if strings.EqualFold(trimmed, nv) {
			return true
		}
	}
	return false
}

func LoadSourceConfigs(dirPath string) ([]SourceConfig, error) {
	pnLogger := logger.NewLogger("LoadSourceConfigs")

	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan SourceConfig, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			cfg := SourceConfig{
				Name: strings.Split(name, ".yaml")[0],
			}
			buf, err := os.ReadFile(path.Join(dirPath, name))
			if err != nil {
				pnLogger.Err(err).Msg("Failed to read source config")
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				pnLogger.Err(err).Str("source", cfg.Name).Msg("Failed to parse source config")
				return
			}

			if cfg.Format != FormatTSV && cfg.Format != FormatXLSX {
				pnLogger.Err(errors.New("wrong source format")).
					Str("source", cfg.Name).
					Str("format", cfg.Format).
					Msg("Skipping source")
				return
			}

			configChan <- cfg
		}(f.Name())
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]SourceConfig, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Order < configs[j].Order
	})
	return configs, nil
}
