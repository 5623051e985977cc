package config

import (
	"flag"
	"io"

	"github.com/dd0wney/cluso-steiner/pkg/logging"
)

// Flags binds the run parameters to a flag set. Flags given on the command
// line override values from the -config file.
type Flags struct {
	fs *flag.FlagSet

	configPath  string
	graph       string
	targets     string
	population  int
	generations int
	mutation    float64
	tournament  int
	seed        uint64
	workers     int
	bestEver    bool
	selfLoops   bool
	logLevel    string
	logFile     string
}

// RegisterFlags adds the run flags to fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}

	fs.StringVar(&f.configPath, "config", "", "YAML or TOML config file")
	fs.StringVar(&f.graph, "graph", "", "Edge list file, .sz snappy file or s3://bucket/key")
	fs.StringVar(&f.targets, "targets", "", `Target nodes, e.g. "0,5,9"`)
	fs.IntVar(&f.population, "population", d.PopulationSize, "Population size")
	fs.IntVar(&f.generations, "generations", d.Generations, "Number of generations")
	fs.Float64Var(&f.mutation, "mutation", d.MutationRate, "Per-bit mutation rate")
	fs.IntVar(&f.tournament, "tournament", d.TournamentSize, "Tournament size")
	fs.Uint64Var(&f.seed, "seed", 0, "Random seed; 0 picks one")
	fs.IntVar(&f.workers, "workers", d.Workers, "Fitness evaluation workers")
	fs.BoolVar(&f.bestEver, "best-ever", false, "Report the best individual of the whole run")
	fs.BoolVar(&f.selfLoops, "reject-self-loops", false, "Fail on self-loop edges")
	fs.StringVar(&f.logLevel, "log-level", d.Log.Level, "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "Rotated log file; empty logs to stderr")

	return f
}

// Resolve loads the -config file if one was given, then applies every flag
// that was set explicitly, and validates the result
func (f *Flags) Resolve() (Config, error) {
	cfg := Default()
	if f.configPath != "" {
		loaded, err := Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "graph":
			cfg.Graph = f.graph
		case "targets":
			var targets []int
			if targets, err = ParseTargets(f.targets); err == nil {
				cfg.Targets = targets
			}
		case "population":
			cfg.PopulationSize = f.population
		case "generations":
			cfg.Generations = f.generations
		case "mutation":
			cfg.MutationRate = f.mutation
		case "tournament":
			cfg.TournamentSize = f.tournament
		case "seed":
			cfg.Seed = f.seed
		case "workers":
			cfg.Workers = f.workers
		case "best-ever":
			cfg.UseBestEver = f.bestEver
		case "reject-self-loops":
			cfg.RejectSelfLoops = f.selfLoops
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "log-file":
			cfg.Log.File = f.logFile
		}
	})
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewLogger builds the logger described by the log section. The closer is
// a no-op when logging to stderr.
func (c Config) NewLogger() (logging.Logger, io.Closer) {
	if c.Log.File == "" {
		l := logging.NewDefaultLogger()
		l.SetLevel(c.LogLevel())
		return l, io.NopCloser(nil)
	}
	return logging.NewRotatingLogger(logging.RotateConfig{
		Filename:   c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxAgeDays: c.Log.MaxAgeDays,
	}, c.LogLevel())
}
