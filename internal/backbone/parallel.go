package backbone

import (
	"context"
	"runtime"
	"sync"

	"satbackbone/internal/sat"
)

// NewParallelFinder dispatches the per-variable flip tests across a pool of
// workers. The instance is shared read-only between tasks; merging results
// into the backbone map is the only synchronized step, so the outcome is
// identical to the sequential finder for the same solver. workers <= 0
// defaults to the CPU count.
func NewParallelFinder(solver sat.Solver, workers int) *ParallelFinder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelFinder{solver: solver, workers: workers}
}

type ParallelFinder struct {
	solver  sat.Solver
	workers int
}

func (finder *ParallelFinder) FindBackbone(instance sat.SAT) (Backbone, bool, sat.Stats, error) {
	return finder.FindBackboneContext(context.Background(), instance)
}

// FindBackboneContext is FindBackbone with cancellation: once ctx is done no
// further flip tests are dispatched and ctx.Err is returned after in-flight
// workers drain.
func (finder *ParallelFinder) FindBackboneContext(ctx context.Context, instance sat.SAT) (Backbone, bool, sat.Stats, error) {
	outcome, stats, err := finder.solver.Solve(instance)
	if err != nil {
		return nil, false, stats, err
	} else if !outcome.Satisfiable {
		return Backbone{}, false, stats, nil
	}

	var (
		tasks    = make(chan uint64)
		workerWg sync.WaitGroup
		mu       sync.Mutex
		backbone = Backbone{}
		firstErr error
	)

	for range finder.workers {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for variable := range tasks {
				value := outcome.Assignment[variable]
				frozen, flipStats, err := refute(finder.solver, instance, variable, value)

				mu.Lock()
				stats.Add(flipStats)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else if frozen {
					backbone[variable] = value
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, variable := range assignedVariables(outcome.Assignment) {
		select {
		case tasks <- variable:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(tasks)
	workerWg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, true, stats, err
	}
	if firstErr != nil {
		return nil, true, stats, firstErr
	}
	return backbone, true, stats, nil
}
