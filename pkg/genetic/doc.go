// Package genetic searches for a small edge subset that keeps a set of target
// nodes connected, using a generational genetic algorithm.
//
// A candidate is an Individual: one bit per edge of the input EdgeList, set
// when the edge is kept. Fitness is the number of kept edges when the targets
// are connected by them, and PenaltyFor(m) otherwise, so lower is better.
//
// Each generation is rebuilt in full from tournament-selected parents by
// single-point crossover and bit-flip mutation. There is no elitism: the best
// individual of one generation is not copied into the next. The engine still
// remembers the best individual it has seen in Result.BestEver.
//
// All randomness comes from one PCG stream per generation derived from
// Options.Seed, so a run is reproducible for a given seed, graph and options,
// whatever the number of evaluation workers.
package genetic
