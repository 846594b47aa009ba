package sat

import (
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestGenerate3SATShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	instance, err := Generate3SAT(50, 4.26, rng)

	assert.NoError(t, err)
	assert.Equal(t, uint64(50), instance.Variables)
	assert.Len(t, instance.Clauses, 213) // round(50 * 4.26)

	for _, clause := range instance.Clauses {
		assert.Len(t, clause, 3)

		variables := lo.Map(clause, func(literal int64, _ int) uint64 { return Variable(literal) })
		assert.Len(t, lo.Uniq(variables), 3)
		for _, variable := range variables {
			assert.GreaterOrEqual(t, variable, uint64(1))
			assert.LessOrEqual(t, variable, uint64(50))
		}
	}
}

func TestGenerate3SATInvalidInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("Fewer than 3 variables", func(t *testing.T) {
		_, err := Generate3SAT(2, 4.26, rng)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Non-positive alpha", func(t *testing.T) {
		_, err := Generate3SAT(10, 0, rng)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGenerate3SATSeedDeterminism(t *testing.T) {
	first, err := Generate3SAT(20, DefaultAlpha, rand.New(rand.NewPCG(9, 9)))
	assert.NoError(t, err)
	second, err := Generate3SAT(20, DefaultAlpha, rand.New(rand.NewPCG(9, 9)))
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateRandomInstanceShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))

	for range 10 {
		variables := uint64(rng.IntN(20) + 1)
		clauses := rng.IntN(50) + 1
		instance := GenerateRandomInstance(variables, clauses, rng)

		assert.Len(t, instance.Clauses, clauses)
		for _, clause := range instance.Clauses {
			assert.NotEmpty(t, clause)
			for _, literal := range clause {
				assert.NotZero(t, literal)
				assert.LessOrEqual(t, Variable(literal), variables)
			}
		}
	}
}
