// Package config loads the engine's runtime configuration from a YAML
// file, the ambient-stack counterpart spec.md leaves unspecified. Grounded
// on the rest of the example pack's gopkg.in/yaml.v3 config-loading
// manifests (see DESIGN.md); the teacher itself has no config file; this
// package's shape otherwise follows the teacher's small, flat option
// structs (e.g. engine.SearchLimits).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of tunables read from disk at startup. Of these,
// cmd/kestrel-uci applies BookPath, PolyglotBookPath and LogLevel;
// TranspositionSizeMB only sets the default shown in the UCI "Hash"
// option, since the searcher always builds a 1024 MB table. MaxWorkers and
// DefaultMoveTimeMS are not read outside this package: the worker count
// comes from GOMAXPROCS, and "go" without movetime has no time limit.
type Config struct {
	TranspositionSizeMB int    `yaml:"ttSizeMB"`
	MaxWorkers          int    `yaml:"maxWorkers"`
	DefaultMoveTimeMS   int    `yaml:"defaultMoveTimeMs"`
	BookPath            string `yaml:"bookPath"`
	PolyglotBookPath    string `yaml:"polyglotBookPath"`
	LogLevel            string `yaml:"logLevel"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TranspositionSizeMB: 1024,
		MaxWorkers:          0,
		DefaultMoveTimeMS:   5000,
		BookPath:            "",
		LogLevel:            "info",
	}
}

// Load reads and parses a YAML config file at path, filling any field the
// file omits from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
