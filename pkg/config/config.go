package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration options for arraymath.
type Config struct {
	// Hash table settings
	Table TableConfig `koanf:"table" toml:"table"`

	// Pivot source for quickselect
	Selection SelectionConfig `koanf:"selection" toml:"selection"`

	// Default percentile bounds
	Percentile PercentileConfig `koanf:"percentile" toml:"percentile"`

	// Generated sample data
	Sample SampleConfig `koanf:"sample" toml:"sample"`

	// Repeated selection trials
	Trials TrialsConfig `koanf:"trials" toml:"trials"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`

	// Logging settings
	Log LogConfig `koanf:"log" toml:"log"`
}

// TableConfig controls hash table growth.
type TableConfig struct {
	MaxLoadFactor float64 `koanf:"max_load_factor" toml:"max_load_factor"`
}

// SelectionConfig controls pivot randomness.
type SelectionConfig struct {
	Seed uint64 `koanf:"seed" toml:"seed"` // 0 picks a random seed
}

// PercentileConfig holds the default bounds, in percent.
type PercentileConfig struct {
	Lower int `koanf:"lower" toml:"lower"`
	Upper int `koanf:"upper" toml:"upper"`
}

// SampleConfig controls generated input arrays.
type SampleConfig struct {
	Size int `koanf:"size" toml:"size"`
	Min  int `koanf:"min" toml:"min"` // smallest generated value
}

// TrialsConfig controls the trials command.
type TrialsConfig struct {
	Count   int `koanf:"count" toml:"count"`
	Workers int `koanf:"workers" toml:"workers"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color  bool   `koanf:"color" toml:"color"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `koanf:"level" toml:"level"`
	Format string `koanf:"format" toml:"format"` // console, json
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Table: TableConfig{
			MaxLoadFactor: 0.5,
		},
		Percentile: PercentileConfig{
			Lower: 20,
			Upper: 95,
		},
		Sample: SampleConfig{
			Size: 100000,
			Min:  50000000,
		},
		Trials: TrialsConfig{
			Count:   32,
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// configNames are searched in order within each search directory.
var configNames = []string{
	"arraymath.toml",
	"arraymath.yaml",
	"arraymath.yml",
	"arraymath.json",
	".arraymath.toml",
	".arraymath.yaml",
	".arraymath.yml",
	".arraymath.json",
}

// Find returns the first config file found in the current directory or
// .arraymath, or "" when there is none.
func Find() string {
	for _, dir := range []string{".", ".arraymath"} {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault loads path, or the first file found by Find when path is
// empty. It returns the config and the file it came from ("" for defaults).
func LoadOrDefault(path string) (*Config, string, error) {
	if path == "" {
		path = Find()
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error

	if lf := c.Table.MaxLoadFactor; !(lf > 0 && lf < 1) {
		errs = append(errs, fmt.Errorf("table.max_load_factor must be in (0, 1), got %v", lf))
	}
	if c.Percentile.Lower < 0 || c.Percentile.Lower > 100 {
		errs = append(errs, fmt.Errorf("percentile.lower must be in [0, 100], got %d", c.Percentile.Lower))
	}
	if c.Percentile.Upper < 0 || c.Percentile.Upper > 100 {
		errs = append(errs, fmt.Errorf("percentile.upper must be in [0, 100], got %d", c.Percentile.Upper))
	}
	if c.Sample.Size <= 0 || c.Sample.Size > MaxSampleSize {
		errs = append(errs, fmt.Errorf("sample.size must be in [1, %d], got %d", MaxSampleSize, c.Sample.Size))
	}
	if c.Sample.Min < 0 || c.Sample.Min >= SampleCeiling {
		errs = append(errs, fmt.Errorf("sample.min must be in [0, %d), got %d", SampleCeiling, c.Sample.Min))
	} else if SampleCeiling-c.Sample.Min < c.Sample.Size {
		errs = append(errs, fmt.Errorf("sample range [%d, %d) cannot hold %d unique values", c.Sample.Min, SampleCeiling, c.Sample.Size))
	}
	if c.Trials.Count <= 0 {
		errs = append(errs, fmt.Errorf("trials.count must be positive, got %d", c.Trials.Count))
	}
	if c.Trials.Workers <= 0 {
		errs = append(errs, fmt.Errorf("trials.workers must be positive, got %d", c.Trials.Workers))
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "json", "markdown", "md", "toon":
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of text, json, markdown, toon", c.Output.Format))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of console, json", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

const (
	// MaxSampleSize caps generated arrays.
	MaxSampleSize = 10000000

	// SampleCeiling is the exclusive upper bound of generated values.
	SampleCeiling = 1<<31 - 1
)
