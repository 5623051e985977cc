// Package config loads and validates the parameters of a search run.
//
// Files are YAML (.yaml, .yml) or TOML (.toml), chosen by extension. Zero
// values left out of a file keep their defaults from Default().
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-steiner/pkg/genetic"
	"github.com/dd0wney/cluso-steiner/pkg/graphio"
	"github.com/dd0wney/cluso-steiner/pkg/logging"
	"github.com/dd0wney/cluso-steiner/pkg/validation"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML
var ErrUnknownFormat = errors.New("config: unknown file format")

// Config is the full parameter set of a search run
type Config struct {
	// Graph is an edge file path, a ".sz" snappy file, or s3://bucket/key
	Graph   string `yaml:"graph" toml:"graph" validate:"required"`
	Targets []int  `yaml:"targets" toml:"targets" validate:"unique"`

	PopulationSize int     `yaml:"population_size" toml:"population_size" validate:"min=1"`
	Generations    int     `yaml:"generations" toml:"generations" validate:"min=0"`
	MutationRate   float64 `yaml:"mutation_rate" toml:"mutation_rate" validate:"gte=0,lte=1"`
	TournamentSize int     `yaml:"tournament_size" toml:"tournament_size" validate:"min=1"`

	// Seed 0 asks for a random seed; the chosen seed is logged and reported
	Seed    uint64 `yaml:"seed" toml:"seed"`
	Workers int    `yaml:"workers" toml:"workers" validate:"min=0"`

	RejectSelfLoops bool `yaml:"reject_self_loops" toml:"reject_self_loops"`

	// UseBestEver returns the best individual of the whole run instead of
	// the best of the final generation
	UseBestEver bool `yaml:"use_best_ever" toml:"use_best_ever"`

	// S3 applies to s3:// graph sources only
	S3 graphio.S3Config `yaml:"s3" toml:"s3"`

	Log LogConfig `yaml:"log" toml:"log"`
}

// LogConfig selects the log level and sink
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File empty means stderr
	File string `yaml:"file" toml:"file"`
	// MaxSizeMB must be positive when File is set
	MaxSizeMB  int `yaml:"max_size_mb" toml:"max_size_mb" validate:"min=0"`
	MaxAgeDays int `yaml:"max_age_days" toml:"max_age_days"`
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Default returns the reference parameters with no graph or targets
func Default() Config {
	return Config{
		PopulationSize: genetic.DefaultPopulationSize,
		Generations:    genetic.DefaultGenerations,
		MutationRate:   genetic.DefaultMutationRate,
		TournamentSize: genetic.DefaultTournamentSize,
		Workers:        1,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxAgeDays: 7,
		},
	}
}

// Load reads a config file over the defaults and validates it
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks tags first, then the rules shared with the engine and
// the rules that depend on other fields
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("Config")
	cv.Add(validation.Struct(&c))
	cv.Custom("Options", func() error { return c.Options().Validate() })

	cv.When(c.Log.Level != "", func(cv *validation.ConfigValidator) {
		cv.OneOf("Log.Level", strings.ToLower(c.Log.Level), logLevels)
	})
	cv.NonNegative("Log.MaxAgeDays", c.Log.MaxAgeDays)
	cv.When(c.Log.File != "", func(cv *validation.ConfigValidator) {
		cv.Positive("Log.MaxSizeMB", c.Log.MaxSizeMB)
	})

	// Static credentials come in pairs
	cv.When(strings.HasPrefix(c.Graph, graphio.S3Scheme), func(cv *validation.ConfigValidator) {
		cv.When(c.S3.AccessKeyID != "", func(cv *validation.ConfigValidator) {
			cv.Required("S3.SecretAccessKey", c.S3.SecretAccessKey)
		})
		cv.When(c.S3.SecretAccessKey != "", func(cv *validation.ConfigValidator) {
			cv.Required("S3.AccessKeyID", c.S3.AccessKeyID)
		})
	})
	return cv.Validate()
}

// Options converts the config into engine options
func (c Config) Options() genetic.Options {
	return genetic.Options{
		PopulationSize: c.PopulationSize,
		Generations:    c.Generations,
		MutationRate:   c.MutationRate,
		TournamentSize: c.TournamentSize,
		Seed:           c.Seed,
		Workers:        validation.DefaultOrInt(c.Workers, 1),
	}
}

// LogLevel returns the parsed log level
func (c Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// ParseTargets parses a comma or space separated node list such as "0, 5,9"
func ParseTargets(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	targets := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("config: target %q: %w", f, err)
		}
		targets = append(targets, n)
	}
	return targets, nil
}
