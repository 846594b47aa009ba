package sat

import (
	"fmt"
	"slices"
	"time"
)

type DPLLOption func(*dpllSolver)

// WithStepBudget bounds the number of search-node visits per Solve call.
func WithStepBudget(maxSteps uint64) DPLLOption {
	return func(solver *dpllSolver) {
		solver.maxSteps = maxSteps
	}
}

// WithDeadline bounds the wall-clock time per Solve call.
func WithDeadline(limit time.Duration) DPLLOption {
	return func(solver *dpllSolver) {
		solver.limit = limit
	}
}

// NewDPLLSolver returns the exact DPLL solver: unit propagation to fixpoint,
// DLIS branching and backtracking over copy-on-write clause sets. The search
// runs on an explicit choice-point stack, so its depth is bounded by heap
// rather than by the goroutine call stack.
func NewDPLLSolver(options ...DPLLOption) Solver {
	solver := &dpllSolver{}
	for _, option := range options {
		option(solver)
	}
	return solver
}

type dpllSolver struct {
	maxSteps uint64        // 0 means unbounded
	limit    time.Duration // 0 means no deadline
}

// choicePoint captures the state right before a branch decision. Backtracking
// restores it and tries the opposite polarity; the stored clause set and
// assignment are never mutated past this point.
type choicePoint struct {
	clauses    [][]int64
	assignment Assignment
	literal    int64
	flipped    bool
}

func (solver *dpllSolver) Solve(instance SAT) (Outcome, Stats, error) {
	var stats Stats
	var deadline time.Time
	if solver.limit > 0 {
		deadline = time.Now().Add(solver.limit)
	}

	clauses := instance.Clauses
	assignment := Assignment{}
	var trail []choicePoint

	for {
		if solver.maxSteps > 0 && stats.Steps >= solver.maxSteps {
			return Outcome{}, stats, fmt.Errorf("%w: %d steps", ErrBudgetExceeded, stats.Steps)
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return Outcome{}, stats, fmt.Errorf("%w: deadline of %v passed", ErrBudgetExceeded, solver.limit)
		}
		stats.Steps++

		var conflict bool
		clauses, assignment, conflict = propagate(clauses, assignment)

		if !conflict {
			if len(clauses) == 0 {
				return Outcome{Satisfiable: true, Assignment: assignment}, stats, nil
			}

			literal := pickBranchLiteral(clauses)
			trail = append(trail, choicePoint{clauses: clauses, assignment: assignment, literal: literal})
			clauses = simplify(clauses, literal)
			assignment = assign(assignment, literal)
			continue
		}

		// Conflict: rewind to the most recent choice point with an untried
		// polarity. Exhausting the trail refutes the whole instance.
		for {
			if len(trail) == 0 {
				return Outcome{Satisfiable: false}, stats, nil
			}
			point := &trail[len(trail)-1]
			if point.flipped {
				trail = trail[:len(trail)-1]
				continue
			}
			point.flipped = true
			stats.Backtracks++
			clauses = simplify(point.clauses, -point.literal)
			assignment = assign(point.assignment, -point.literal)
			break
		}
	}
}

// propagate runs unit propagation to fixpoint: while some clause holds a
// single literal, decide it and simplify. Returns the reduced clause set, the
// extended assignment and whether an empty clause appeared. The assignment is
// extended in place; it is always exclusively owned by the current search
// position.
func propagate(clauses [][]int64, assignment Assignment) ([][]int64, Assignment, bool) {
	for {
		if hasEmptyClause(clauses) {
			return clauses, assignment, true
		}
		unit, ok := findUnit(clauses)
		if !ok {
			return clauses, assignment, false
		}
		assignment[Variable(unit)] = unit > 0
		clauses = simplify(clauses, unit)
	}
}

func hasEmptyClause(clauses [][]int64) bool {
	for _, clause := range clauses {
		if len(clause) == 0 {
			return true
		}
	}
	return false
}

func findUnit(clauses [][]int64) (int64, bool) {
	for _, clause := range clauses {
		if len(clause) == 1 {
			return clause[0], true
		}
	}
	return 0, false
}

// simplify applies a literal decision: clauses containing the literal are
// dropped as satisfied, its negation is removed from the rest. Input clause
// slices are never mutated; untouched clauses are shared with the result,
// which is what makes backtracking free.
func simplify(clauses [][]int64, literal int64) [][]int64 {
	result := make([][]int64, 0, len(clauses))
	for _, clause := range clauses {
		if slices.Contains(clause, literal) {
			continue
		}
		if !slices.Contains(clause, -literal) {
			result = append(result, clause)
			continue
		}
		reduced := make([]int64, 0, len(clause)-1)
		for _, other := range clause {
			if other != -literal {
				reduced = append(reduced, other)
			}
		}
		result = append(result, reduced)
	}
	return result
}

// pickBranchLiteral implements DLIS: the signed literal occurring most often
// across the remaining clauses, counting each polarity separately. Ties break
// to the smaller variable index, positive polarity before negative, so the
// branch choice is fully deterministic.
func pickBranchLiteral(clauses [][]int64) int64 {
	counts := make(map[int64]uint64)
	for _, clause := range clauses {
		for _, literal := range clause {
			counts[literal]++
		}
	}

	var best int64
	var bestCount uint64
	for literal, count := range counts {
		if best == 0 || count > bestCount || (count == bestCount && precedes(literal, best)) {
			best, bestCount = literal, count
		}
	}
	if best == 0 {
		panic("dpll: branch requested on a clause set with no literals")
	}
	return best
}

// precedes is the deterministic tie-break order: smaller variable index
// first, positive polarity before negative within a variable.
func precedes(a, b int64) bool {
	if Variable(a) != Variable(b) {
		return Variable(a) < Variable(b)
	}
	return a > b
}

func assign(assignment Assignment, literal int64) Assignment {
	next := assignment.Clone()
	next[Variable(literal)] = literal > 0
	return next
}
