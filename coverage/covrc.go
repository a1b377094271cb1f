package coverage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the subset of an external coverage configuration file that
// nbcover consumes. Recorder options take precedence over values from the
// file.
type fileConfig struct {
	// Base data file path.
	DataFile string `yaml:"data_file"`

	// Source path filters restricting what gets recorded.
	Source []string `yaml:"source"`

	// Path alias rule sets. Within each set, the first entry is the
	// canonical form and the remaining entries are rewritten to it.
	Paths map[string][]string `yaml:"paths"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coverage config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return nil, fmt.Errorf("parse coverage config %v: %w", path, err)
	}
	return &cfg, nil
}
