package genetic

import "math/rand/v2"

// DefaultTournamentSize is the number of contestants per tournament
const DefaultTournamentSize = 5

// Selection runs one tournament: it samples tournamentSize indices uniformly
// with replacement and returns the sampled individual with the lowest score.
// Ties go to the contestant drawn first. The returned slice is the population
// member itself, not a copy. Panics on an empty population.
func Selection(rng *rand.Rand, pop []Individual, scores []int, tournamentSize int) Individual {
	if tournamentSize < 1 {
		tournamentSize = 1
	}

	best := rng.IntN(len(pop))
	for i := 1; i < tournamentSize; i++ {
		idx := rng.IntN(len(pop))
		if scores[idx] < scores[best] {
			best = idx
		}
	}
	return pop[best]
}

// Crossover performs single-point crossover with the cut drawn uniformly
// from [1, m-1]. With fewer than two genes there is no valid cut and the
// children are copies of their parents.
func Crossover(rng *rand.Rand, p1, p2 Individual) (Individual, Individual) {
	m := len(p1)
	if m < 2 {
		return p1.Clone(), p2.Clone()
	}
	point := 1 + rng.IntN(m-1)
	return CrossoverAt(p1, p2, point)
}

// CrossoverAt builds p1[:point]+p2[point:] and p2[:point]+p1[point:] as new
// slices. Parents must have equal length.
func CrossoverAt(p1, p2 Individual, point int) (Individual, Individual) {
	m := len(p1)
	c1 := make(Individual, m)
	c2 := make(Individual, m)

	copy(c1, p1[:point])
	copy(c1[point:], p2[point:])
	copy(c2, p2[:point])
	copy(c2[point:], p1[point:])

	return c1, c2
}

// Mutate flips each bit in place with probability rate. One draw is made per
// bit whatever the rate, so the random stream does not depend on it.
func Mutate(rng *rand.Rand, ind Individual, rate float64) {
	for i := range ind {
		if rng.Float64() < rate {
			ind[i] = !ind[i]
		}
	}
}
