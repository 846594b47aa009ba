package sat

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultAlpha is the clause-to-variable ratio at the random 3-SAT phase
// transition, where instances are hardest and backbones densest.
const DefaultAlpha = 4.26

// Generate3SAT draws a random 3-SAT instance with round(variables*alpha)
// clauses. Each clause picks 3 distinct variables without replacement from
// [1, variables] and negates each independently with probability 0.5.
// Deterministic for a fixed rng source.
func Generate3SAT(variables uint64, alpha float64, rng *rand.Rand) (SAT, error) {
	if variables < 3 {
		return SAT{}, fmt.Errorf("%w: need at least 3 variables to draw a distinct triple, got %d", ErrInvalidInput, variables)
	}
	if alpha <= 0 {
		return SAT{}, fmt.Errorf("%w: alpha must be positive, got %v", ErrInvalidInput, alpha)
	}

	clauseCount := int(math.Round(float64(variables) * alpha))
	instance := SAT{
		Variables: variables,
		Clauses:   make([][]int64, clauseCount),
	}

	for i := range clauseCount {
		clause := make([]int64, 0, 3)
		for _, variable := range sampleDistinct(variables, 3, rng) {
			literal := int64(variable)
			if rng.Float64() < 0.5 {
				literal = -literal
			}
			clause = append(clause, literal)
		}
		instance.Clauses[i] = clause
	}

	return instance, nil
}

// sampleDistinct draws k distinct variable indices from [1, variables] by
// rejection, which is cheap for k much smaller than the range.
func sampleDistinct(variables uint64, k int, rng *rand.Rand) []uint64 {
	drawn := make([]uint64, 0, k)
	seen := make(map[uint64]bool, k)
	for len(drawn) < k {
		candidate := rng.Uint64N(variables) + 1
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		drawn = append(drawn, candidate)
	}
	return drawn
}

// GenerateRandomInstance produces an instance with free-shape clauses: every
// variable joins each clause with probability 0.5 and a random polarity.
// Used to fuzz the solvers; no clause is left empty.
func GenerateRandomInstance(variables uint64, clauses int, rng *rand.Rand) SAT {
	instance := SAT{
		Variables: variables,
		Clauses:   make([][]int64, clauses),
	}

	for i := range clauses {
		instance.Clauses[i] = make([]int64, 0, variables)
		for j := range variables {
			if rng.Float32() < 0.5 {
				var sign int64 = 1
				if rng.Float32() < 0.5 {
					sign = -1
				}
				instance.Clauses[i] = append(instance.Clauses[i], sign*(1+int64(j)))
			}
		}

		if len(instance.Clauses[i]) == 0 {
			var sign int64 = 1
			if rng.Float32() < 0.5 {
				sign = -1
			}
			instance.Clauses[i] = append(instance.Clauses[i], sign*(1+rng.Int64N(int64(variables))))
		}
	}

	return instance
}
