package genetic

import "errors"

// Configuration errors returned by NewEngine and Options.Validate
var (
	ErrInvalidPopulation   = errors.New("genetic: population size must be at least 1")
	ErrInvalidGenerations  = errors.New("genetic: generation count must not be negative")
	ErrInvalidMutationRate = errors.New("genetic: mutation rate must be within [0, 1]")
	ErrInvalidTournament   = errors.New("genetic: tournament size must be at least 1")
	ErrNoEdges             = errors.New("genetic: edge list is empty but targets are not")
	ErrTooFewEdges         = errors.New("genetic: at least two edges are needed for crossover")
)
