package sat

import (
	"log"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveWorkedExample(t *testing.T) {
	// Arrange: the unique model of this instance is {1: true, 2: true}.
	instance := SAT{
		Variables: 2,
		Clauses:   [][]int64{{1, 2}, {-1, 2}, {1, -2}},
	}
	solver := NewDPLLSolver()

	// Act
	outcome, stats, err := solver.Solve(instance)

	// Assert
	assert.NoError(t, err)
	assert.True(t, outcome.Satisfiable)
	assert.Equal(t, Assignment{1: true, 2: true}, outcome.Assignment)
	assert.Greater(t, stats.Steps, uint64(0))
}

func TestSolveTrivialInstances(t *testing.T) {
	solver := NewDPLLSolver()

	t.Run("Empty formula is satisfiable with an empty assignment", func(t *testing.T) {
		outcome, _, err := solver.Solve(SAT{Variables: 0, Clauses: [][]int64{}})

		assert.NoError(t, err)
		assert.True(t, outcome.Satisfiable)
		assert.Empty(t, outcome.Assignment)
	})

	t.Run("Empty clause is unsatisfiable", func(t *testing.T) {
		outcome, _, err := solver.Solve(SAT{Variables: 1, Clauses: [][]int64{{}}})

		assert.NoError(t, err)
		assert.False(t, outcome.Satisfiable)
		assert.Nil(t, outcome.Assignment)
	})

	t.Run("Single unit clause", func(t *testing.T) {
		outcome, _, err := solver.Solve(SAT{Variables: 1, Clauses: [][]int64{{-1}}})

		assert.NoError(t, err)
		assert.True(t, outcome.Satisfiable)
		assert.Equal(t, Assignment{1: false}, outcome.Assignment)
	})
}

func TestSolveUnsatisfiable(t *testing.T) {
	solver := NewDPLLSolver()

	scenarios := []SAT{
		{Variables: 1, Clauses: [][]int64{{1}, {-1}}},
		{Variables: 2, Clauses: [][]int64{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}},
		{Variables: 3, Clauses: [][]int64{{1, 2, 3}, {1, 2, -3}, {1, -2, 3}, {1, -2, -3}, {-1, 2, 3}, {-1, 2, -3}, {-1, -2, 3}, {-1, -2, -3}}},
	}

	for _, instance := range scenarios {
		outcome, _, err := solver.Solve(instance)

		assert.NoError(t, err)
		assert.False(t, outcome.Satisfiable)
	}
}

func TestSolveSatisfiesEveryClause(t *testing.T) {
	solver := NewDPLLSolver()
	unsatisfiableCount := 0

	rng := rand.New(rand.NewPCG(7, 7))
	for range 25 {
		variables := uint64(rng.IntN(12) + 1)
		clauses := rng.IntN(40) + 1
		instance := GenerateRandomInstance(variables, clauses, rng)

		outcome, _, err := solver.Solve(instance)
		assert.NoError(t, err)

		if !outcome.Satisfiable {
			unsatisfiableCount++
			continue
		}

		assert.True(t, Verify(instance, outcome.Assignment))
	}

	log.Printf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func TestSolveDeterministic(t *testing.T) {
	solver := NewDPLLSolver()

	rng := rand.New(rand.NewPCG(11, 11))
	for range 10 {
		instance, err := Generate3SAT(uint64(rng.IntN(10)+5), DefaultAlpha, rng)
		assert.NoError(t, err)

		first, firstStats, err := solver.Solve(instance)
		assert.NoError(t, err)
		second, secondStats, err := solver.Solve(instance)
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstStats, secondStats)
	}
}

func TestSolveDoesNotMutateInstance(t *testing.T) {
	instance := SAT{
		Variables: 3,
		Clauses:   [][]int64{{1, 2, 3}, {-1, 2}, {-2, 3}, {-3, -1}},
	}
	original := instance.ToDIMACS()
	solver := NewDPLLSolver()

	_, _, err := solver.Solve(instance)

	assert.NoError(t, err)
	assert.Equal(t, original, instance.ToDIMACS())
}

func TestSolveStepBudget(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	instance, err := Generate3SAT(25, DefaultAlpha, rng)
	assert.NoError(t, err)

	bounded := NewDPLLSolver(WithStepBudget(1))
	_, stats, err := bounded.Solve(instance)

	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, uint64(1), stats.Steps)
}
