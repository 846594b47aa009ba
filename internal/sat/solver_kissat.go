package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const kissatPath = "kissat"

type kissatSolver struct{}

// NewKissatSolver returns a Solver backed by an external kissat process fed
// DIMACS text on stdin. Used to cross-check the exact DPLL engine on larger
// instances; it reports no search statistics.
func NewKissatSolver() Solver {
	return &kissatSolver{}
}

func (solver *kissatSolver) Solve(instance SAT) (Outcome, Stats, error) {
	cmd := exec.Command(kissatPath, "-q", "--relaxed")
	cmd.Stdin = strings.NewReader(instance.ToDIMACS())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	err := cmd.Run()
	// Exit code 10 stands for satisfiable and 20 for unsatisfiable.
	if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return Outcome{}, Stats{}, fmt.Errorf("an error occurred during kissat execution: %v : %v", err, stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return Outcome{Satisfiable: false}, Stats{}, nil
	}

	assignment, err := parseKissatModel(stdOut.String())
	if err != nil {
		return Outcome{}, Stats{}, err
	}
	return Outcome{Satisfiable: true, Assignment: assignment}, Stats{}, nil
}

// parseKissatModel extracts the model from the solver's "v" lines, which list
// the decided literals terminated by 0.
func parseKissatModel(solverOutput string) (Assignment, error) {
	modelLines := lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
		return len(line) > 0 && line[0] == 'v'
	})

	assignment := Assignment{}
	for _, line := range modelLines {
		for _, token := range strings.Fields(line[1:]) {
			literal, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid literal in kissat output: %v", err)
			}
			if literal == 0 {
				return assignment, nil
			}
			assignment[Variable(literal)] = literal > 0
		}
	}
	return assignment, nil
}
