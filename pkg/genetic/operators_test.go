package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0xfeed))
}

func TestCreateIndividual(t *testing.T) {
	rng := testRNG(1)
	ind := CreateIndividual(rng, 1000)
	require.Len(t, ind, 1000)

	// Uniform bits: far from all-zero or all-one
	ones := ind.Count()
	assert.Greater(t, ones, 400)
	assert.Less(t, ones, 600)

	assert.Empty(t, CreateIndividual(rng, 0))
}

func TestIndividual_StringRoundTrip(t *testing.T) {
	ind := ParseIndividual("10110")
	assert.Equal(t, Individual{true, false, true, true, false}, ind)
	assert.Equal(t, "10110", ind.String())
	assert.Equal(t, 3, ind.Count())

	clone := ind.Clone()
	clone[0] = false
	assert.True(t, ind[0], "Clone must not alias")
}

func TestSelection_ReturnsLowestContestant(t *testing.T) {
	pop := []Individual{ParseIndividual("000"), ParseIndividual("111"), ParseIndividual("101")}
	scores := []int{1000, 3, 2}

	// A tournament much larger than the population almost surely samples index 2
	got := Selection(testRNG(7), pop, scores, 200)
	assert.Same(t, &pop[2][0], &got[0])
}

func TestSelection_TieGoesToFirstDrawn(t *testing.T) {
	pop := []Individual{ParseIndividual("01"), ParseIndividual("10"), ParseIndividual("11")}
	scores := []int{4, 4, 4}

	for seed := uint64(0); seed < 20; seed++ {
		replay := testRNG(seed)
		first := replay.IntN(len(pop))

		got := Selection(testRNG(seed), pop, scores, 5)
		assert.Same(t, &pop[first][0], &got[0], "seed %d", seed)
	}
}

func TestSelection_SizeOneIsUniformDraw(t *testing.T) {
	pop := []Individual{ParseIndividual("0"), ParseIndividual("1")}
	scores := []int{1, 1000}

	seen := map[string]bool{}
	rng := testRNG(3)
	for i := 0; i < 100; i++ {
		seen[Selection(rng, pop, scores, 1).String()] = true
	}
	assert.True(t, seen["1"], "tournament of one must sometimes return the worse individual")
}

func TestCrossoverAt(t *testing.T) {
	p1 := ParseIndividual("111111")
	p2 := ParseIndividual("000000")

	c1, c2 := CrossoverAt(p1, p2, 2)
	assert.Equal(t, "110000", c1.String())
	assert.Equal(t, "001111", c2.String())

	c1[0] = false
	assert.Equal(t, "111111", p1.String(), "children must not alias parents")
}

func TestCrossover_Degenerate(t *testing.T) {
	p1 := ParseIndividual("1")
	p2 := ParseIndividual("0")

	c1, c2 := Crossover(testRNG(1), p1, p2)
	assert.Equal(t, "1", c1.String())
	assert.Equal(t, "0", c2.String())
}

func TestCrossoverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	pair := func(bits []bool) (Individual, Individual) {
		m := len(bits) / 2
		return Individual(bits[:m]).Clone(), Individual(bits[m : 2*m]).Clone()
	}

	properties.Property("children keep length and provenance at every cut", prop.ForAll(
		func(bits []bool) bool {
			p1, p2 := pair(bits)
			m := len(p1)
			for point := 1; point < m; point++ {
				c1, c2 := CrossoverAt(p1, p2, point)
				if len(c1) != m || len(c2) != m {
					return false
				}
				for i := 0; i < m; i++ {
					if i < point && (c1[i] != p1[i] || c2[i] != p2[i]) {
						return false
					}
					if i >= point && (c1[i] != p2[i] || c2[i] != p1[i]) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(40, gen.Bool()),
	))

	properties.Property("random cut conserves genes at each position", prop.ForAll(
		func(bits []bool, seed uint64) bool {
			p1, p2 := pair(bits)
			c1, c2 := Crossover(testRNG(seed), p1, p2)
			if len(c1) != len(p1) || len(c2) != len(p1) {
				return false
			}
			for i := range p1 {
				// Each position holds both parents' genes, in some order
				if (c1[i] == p1[i]) != (c2[i] == p2[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(24, gen.Bool()),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestCrossover_CutNeverAtEnds(t *testing.T) {
	p1 := ParseIndividual("1111")
	p2 := ParseIndividual("0000")
	rng := testRNG(11)

	for i := 0; i < 200; i++ {
		c1, c2 := Crossover(rng, p1, p2)
		// Cut in [1, m-1]: child1 starts with p1 and ends with p2
		assert.True(t, c1[0])
		assert.False(t, c1[3])
		assert.False(t, c2[0])
		assert.True(t, c2[3])
	}
}

func TestMutate(t *testing.T) {
	orig := CreateIndividual(testRNG(5), 64)

	t.Run("rate zero is identity", func(t *testing.T) {
		ind := orig.Clone()
		Mutate(testRNG(9), ind, 0)
		assert.Equal(t, orig, ind)
	})

	t.Run("rate one flips every bit", func(t *testing.T) {
		ind := orig.Clone()
		Mutate(testRNG(9), ind, 1)
		for i := range ind {
			assert.NotEqual(t, orig[i], ind[i], "bit %d", i)
		}
	})

	t.Run("length preserved", func(t *testing.T) {
		ind := orig.Clone()
		Mutate(testRNG(9), ind, 0.3)
		assert.Len(t, ind, len(orig))
	})
}
