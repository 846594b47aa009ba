package sat

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDIMACSFormat(t *testing.T) {
	instance := SAT{
		Variables: 2,
		Clauses:   [][]int64{{1, 2}, {-1, 2}, {1, -2}},
	}

	assert.Equal(t, "p cnf 2 3\n1 2 0\n-1 2 0\n1 -2 0\n", instance.ToDIMACS())
}

func TestDIMACSRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))

	for range 10 {
		instance, err := Generate3SAT(uint64(rng.IntN(30)+3), DefaultAlpha, rng)
		assert.NoError(t, err)

		parsed, err := ParseDIMACS(strings.NewReader(instance.ToDIMACS()))

		assert.NoError(t, err)
		assert.Equal(t, instance, parsed)
	}
}

func TestParseDIMACSSkipsCommentsAndBlankLines(t *testing.T) {
	input := `c generated instance
c alpha 4.26

p cnf 3 2
1 -2 3 0

c trailing comment
-1 2 0
`

	instance, err := ParseDIMACS(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Equal(t, SAT{Variables: 3, Clauses: [][]int64{{1, -2, 3}, {-1, 2}}}, instance)
}

func TestParseDIMACSRejectsMalformedInput(t *testing.T) {
	scenarios := map[string]string{
		"Missing header":        "1 2 0\n",
		"Malformed header":      "p dnf 2 1\n1 2 0\n",
		"Non-numeric header":    "p cnf two 1\n1 2 0\n",
		"Out-of-range literal":  "p cnf 2 1\n1 3 0\n",
		"Non-integer token":     "p cnf 2 1\n1 x 0\n",
		"Missing terminator":    "p cnf 2 1\n1 2\n",
		"Tokens after zero":     "p cnf 2 1\n1 0 2\n",
		"Clause count mismatch": "p cnf 2 3\n1 2 0\n",
	}

	for name, input := range scenarios {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDIMACS(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestParseDIMACSEmptyClause(t *testing.T) {
	instance, err := ParseDIMACS(strings.NewReader("p cnf 1 1\n0\n"))

	assert.NoError(t, err)
	assert.Equal(t, [][]int64{{}}, instance.Clauses)
}
