package backbone

import (
	"slices"

	"satbackbone/internal/sat"

	"github.com/samber/lo"
)

// Backbone maps each frozen variable to the value it takes in every
// satisfying assignment of an instance. Variables absent from the map are
// free: a model exists for each of their two values, or they never occur in
// the reference model at all.
type Backbone map[uint64]bool

type Finder interface {
	// FindBackbone returns the frozen backbone of the instance, whether the
	// instance is satisfiable, and the summed diagnostics of every solver
	// call issued. An unsatisfiable instance yields an empty backbone.
	FindBackbone(instance sat.SAT) (Backbone, bool, sat.Stats, error)
}

// NewFinder builds the sequential finder: one solve for a reference model,
// then one refutation solve per assigned variable, in ascending variable
// order.
func NewFinder(solver sat.Solver) Finder {
	return &sequentialFinder{solver: solver}
}

type sequentialFinder struct {
	solver sat.Solver
}

func (finder *sequentialFinder) FindBackbone(instance sat.SAT) (Backbone, bool, sat.Stats, error) {
	outcome, stats, err := finder.solver.Solve(instance)
	if err != nil {
		return nil, false, stats, err
	} else if !outcome.Satisfiable {
		return Backbone{}, false, stats, nil
	}

	backbone := Backbone{}
	for _, variable := range assignedVariables(outcome.Assignment) {
		value := outcome.Assignment[variable]

		frozen, flipStats, err := refute(finder.solver, instance, variable, value)
		stats.Add(flipStats)
		if err != nil {
			return nil, true, stats, err
		}
		if frozen {
			backbone[variable] = value
		}
	}

	return backbone, true, stats, nil
}

// refute reports whether the variable is frozen at value: the instance plus a
// unit clause forcing the opposite value must be unsatisfiable. Each call is
// formula-local and shares no state with any other.
func refute(solver sat.Solver, instance sat.SAT, variable uint64, value bool) (bool, sat.Stats, error) {
	forced := int64(variable)
	if value {
		forced = -forced
	}

	outcome, stats, err := solver.Solve(instance.WithUnit(forced))
	if err != nil {
		return false, stats, err
	}
	return !outcome.Satisfiable, stats, nil
}

// assignedVariables lists the model's variables in ascending order so the
// refutation sequence is deterministic.
func assignedVariables(assignment sat.Assignment) []uint64 {
	variables := lo.Keys(assignment)
	slices.Sort(variables)
	return variables
}
