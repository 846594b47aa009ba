package sat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SAT is a CNF instance: a conjunction of disjunctive clauses over Variables
// boolean variables. Literals are signed integers whose magnitude is a
// 1-based variable index and whose sign is the polarity; zero is never a
// valid literal. Instances are immutable by convention: every solver
// transformation builds a new clause slice and may share untouched clauses
// with the original.
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

// Assignment maps variable indices to truth values. It is partial during
// search and covers every decided variable on success.
type Assignment map[uint64]bool

func (assignment Assignment) Clone() Assignment {
	clone := make(Assignment, len(assignment))
	for variable, value := range assignment {
		clone[variable] = value
	}
	return clone
}

// Satisfies reports whether the literal is made true by the assignment. An
// unassigned variable satisfies neither polarity.
func (assignment Assignment) Satisfies(literal int64) bool {
	value, ok := assignment[Variable(literal)]
	return ok && value == (literal > 0)
}

// Variable returns the 1-based variable index of a literal.
func Variable(literal int64) uint64 {
	if literal < 0 {
		return uint64(-literal)
	}
	return uint64(literal)
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// WithUnit returns a copy of the instance extended with one unit clause. The
// receiver's clause slice is not mutated.
func (s SAT) WithUnit(literal int64) SAT {
	clauses := make([][]int64, 0, len(s.Clauses)+1)
	clauses = append(clauses, s.Clauses...)
	clauses = append(clauses, []int64{literal})
	return SAT{Variables: s.Variables, Clauses: clauses}
}

// Verify reports whether the assignment satisfies every clause of the
// instance, i.e. each clause contains at least one literal whose variable is
// assigned with matching polarity.
func Verify(instance SAT, assignment Assignment) bool {
	return !lo.SomeBy(instance.Clauses, func(clause []int64) bool {
		return !lo.SomeBy(clause, func(literal int64) bool {
			return assignment.Satisfies(literal)
		})
	})
}
