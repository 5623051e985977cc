package genetic

import (
	"math/rand/v2"
	"strings"
)

// Individual is a candidate subgraph: bit i set keeps edge i
type Individual []bool

// CreateIndividual draws every bit independently and uniformly
func CreateIndividual(rng *rand.Rand, m int) Individual {
	ind := make(Individual, m)
	for i := range ind {
		ind[i] = rng.IntN(2) == 1
	}
	return ind
}

// Ones returns an individual with every edge kept
func Ones(m int) Individual {
	ind := make(Individual, m)
	for i := range ind {
		ind[i] = true
	}
	return ind
}

// Count returns the number of kept edges
func (ind Individual) Count() int {
	n := 0
	for _, bit := range ind {
		if bit {
			n++
		}
	}
	return n
}

// Clone returns an independent copy
func (ind Individual) Clone() Individual {
	if ind == nil {
		return nil
	}
	out := make(Individual, len(ind))
	copy(out, ind)
	return out
}

// String renders the bits as 0/1 characters
func (ind Individual) String() string {
	var b strings.Builder
	b.Grow(len(ind))
	for _, bit := range ind {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseIndividual is the inverse of String; any rune other than '1' is a zero bit
func ParseIndividual(s string) Individual {
	ind := make(Individual, len(s))
	for i := 0; i < len(s); i++ {
		ind[i] = s[i] == '1'
	}
	return ind
}
