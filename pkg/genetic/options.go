package genetic

import "fmt"

// Defaults used by DefaultOptions
const (
	DefaultPopulationSize = 100
	DefaultGenerations    = 100
	DefaultMutationRate   = 0.01
)

// Options configures an Engine
type Options struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	Seed           uint64

	// Workers is the number of goroutines scoring a population; values
	// below 2 evaluate on the calling goroutine.
	Workers int

	// OnGeneration, if set, is called on the Run goroutine after the initial
	// population (generation 0) and after every later generation is scored.
	OnGeneration func(GenerationStats)
}

// DefaultOptions returns the reference parameters
func DefaultOptions() Options {
	return Options{
		PopulationSize: DefaultPopulationSize,
		Generations:    DefaultGenerations,
		MutationRate:   DefaultMutationRate,
		TournamentSize: DefaultTournamentSize,
		Workers:        1,
	}
}

// Validate checks the numeric parameters
func (o Options) Validate() error {
	if o.PopulationSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPopulation, o.PopulationSize)
	}
	if o.Generations < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidGenerations, o.Generations)
	}
	// Negated form also rejects NaN
	if !(o.MutationRate >= 0 && o.MutationRate <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidMutationRate, o.MutationRate)
	}
	if o.TournamentSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTournament, o.TournamentSize)
	}
	return nil
}
