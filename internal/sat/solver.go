package sat

import "errors"

var (
	// ErrInvalidInput marks malformed DIMACS text, out-of-range literals and
	// unusable generator parameters. Never silently corrected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBudgetExceeded is returned when a search runs past its configured
	// step budget or deadline. The caller may retry with a larger budget.
	ErrBudgetExceeded = errors.New("search budget exceeded")
)

// Outcome is the two-state verdict of a solver call: either satisfiable with
// a model, or unsatisfiable. A budget overrun is an error, never a third
// outcome state.
type Outcome struct {
	Satisfiable bool
	Assignment  Assignment // nil when Satisfiable is false
}

// Stats are per-call diagnostic counters. They carry no semantic weight and
// never affect the outcome.
type Stats struct {
	Steps      uint64 // search-node visits
	Backtracks uint64 // branch reversals
}

func (stats *Stats) Add(other Stats) {
	stats.Steps += other.Steps
	stats.Backtracks += other.Backtracks
}

// Solver decides satisfiability of a CNF instance. Implementations must be
// deterministic for a fixed instance, hold no mutable state across calls and
// be safe for concurrent use.
type Solver interface {
	Solve(instance SAT) (Outcome, Stats, error)
}
