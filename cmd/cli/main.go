package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"satbackbone/internal/backbone"
	"satbackbone/internal/dataset"
	"satbackbone/internal/sat"
)

var (
	validModes   = []string{"generate", "solve", "backbone"}
	validSolvers = []string{"dpll", "kissat"}
)

func main() {
	// Define arguments
	modePtr := flag.String("mode", "solve", `What to do. Allowed values are:
- "solve" (decide satisfiability of a DIMACS file; exits 10 if satisfiable, 20 if unsatisfiable),
- "backbone" (print the frozen backbone of a DIMACS file) and
- "generate" (produce a labeled dataset of random 3-SAT instances), where "solve" is the default`)
	solverPtr := flag.String("solver", "dpll", "Solver to use. Allowed values are: \"dpll\" and \"kissat\", where \"dpll\" is the default")
	filePathPtr := flag.String("file", "", "Path to a DIMACS CNF input file (solve and backbone modes)")
	outFilePtr := flag.String("out", "", "Path to the output file; if empty, results are written to the Standard Output")
	samplesPtr := flag.Int("samples", 50, "Number of samples to generate (generate mode)")
	variablesPtr := flag.Uint64("vars", 40, "Number of variables per generated instance (generate mode)")
	alphaPtr := flag.Float64("alpha", sat.DefaultAlpha, "Clause-to-variable ratio for generated instances (generate mode)")
	seedPtr := flag.Uint64("seed", 1, "Seed for the instance generator (generate mode)")
	workersPtr := flag.Int("workers", 0, "Worker count for backbone refutation; 0 uses every CPU, 1 runs sequentially")
	budgetPtr := flag.Uint64("budget", 0, "Step budget per DPLL solve; 0 means unbounded")
	deadlinePtr := flag.Duration("deadline", 0, "Wall-clock limit per DPLL solve; 0 means no limit")
	flag.Parse()
	mode := strings.ToLower(*modePtr)
	solverStr := strings.ToLower(*solverPtr)

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid mode", mode)
	} else if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if mode != "generate" && *filePathPtr == "" {
		log.Fatal("an input file must be specified")
	} else if mode == "generate" && *samplesPtr <= 0 {
		log.Fatalf("sample count must be positive: %v", *samplesPtr)
	}

	solver := newSolver(solverStr, *budgetPtr, *deadlinePtr)

	switch mode {
	case "solve":
		runSolve(solver, *filePathPtr)
	case "backbone":
		runBackbone(solver, *filePathPtr, *outFilePtr, *workersPtr)
	case "generate":
		runGenerate(solver, *samplesPtr, *variablesPtr, *alphaPtr, *seedPtr, *workersPtr, *outFilePtr)
	}
}

func newSolver(name string, budget uint64, deadline time.Duration) sat.Solver {
	if name == "kissat" {
		return sat.NewKissatSolver()
	}

	options := []sat.DPLLOption{}
	if budget > 0 {
		options = append(options, sat.WithStepBudget(budget))
	}
	if deadline > 0 {
		options = append(options, sat.WithDeadline(deadline))
	}
	return sat.NewDPLLSolver(options...)
}

func runSolve(solver sat.Solver, filePath string) {
	instance := parseInstance(filePath)

	outcome, stats, err := solver.Solve(instance)
	if err != nil {
		log.Fatalf("an error occurred while solving: %v", err)
	}

	if !outcome.Satisfiable {
		fmt.Println("UNSAT")
		fmt.Printf("Steps: %v, Backtracks: %v\n", stats.Steps, stats.Backtracks)
		os.Exit(20)
	}

	fmt.Println("SAT")
	literals := make([]string, 0, len(outcome.Assignment))
	for variable := uint64(1); variable <= instance.Variables; variable++ {
		value, ok := outcome.Assignment[variable]
		if !ok {
			continue
		}
		literal := int64(variable)
		if !value {
			literal = -literal
		}
		literals = append(literals, fmt.Sprint(literal))
	}
	fmt.Println(strings.Join(literals, " "))
	fmt.Printf("Steps: %v, Backtracks: %v\n", stats.Steps, stats.Backtracks)
	os.Exit(10)
}

func runBackbone(solver sat.Solver, filePath, outFile string, workers int) {
	instance := parseInstance(filePath)

	frozen, satisfiable, stats, err := newFinder(solver, workers).FindBackbone(instance)
	if err != nil {
		log.Fatalf("an error occurred during backbone extraction: %v", err)
	} else if !satisfiable {
		fmt.Println("UNSAT")
		os.Exit(20)
	}

	output, err := json.MarshalIndent(map[string]any{
		"backbone":      frozen,
		"backbone_size": len(frozen),
		"rigidity":      float64(len(frozen)) / float64(instance.Variables),
	}, "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	writeOutput(output, outFile)
	fmt.Printf("Steps: %v, Backtracks: %v\n", stats.Steps, stats.Backtracks)
	os.Exit(10)
}

func runGenerate(solver sat.Solver, samples int, variables uint64, alpha float64, seed uint64, workers int, outFile string) {
	rng := rand.New(rand.NewPCG(seed, seed))
	generator := dataset.NewGenerator(newFinder(solver, workers), rng)

	start := time.Now()
	labeled, attempts, err := generator.Generate(samples, variables, alpha)
	if err != nil {
		log.Fatalf("an error occurred during dataset generation: %v", err)
	}

	for _, sample := range labeled {
		fmt.Printf("Generated sample %v/%v (Rigidity: %.2f)\n", sample.Id+1, samples, sample.Rigidity)
	}
	fmt.Printf("Done! %v samples in %v attempts (%.2fs)\n", len(labeled), attempts, time.Since(start).Seconds())

	if outFile == "" {
		outFile = "dataset.json"
	}
	if err := dataset.WriteJson(labeled, outFile); err != nil {
		log.Fatalf("an error occurred while writing the dataset: %v", err)
	}
}

func newFinder(solver sat.Solver, workers int) backbone.Finder {
	if workers == 1 {
		return backbone.NewFinder(solver)
	}
	return backbone.NewParallelFinder(solver, workers)
}

func parseInstance(filePath string) sat.SAT {
	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("cannot open input file: %v", err)
	}
	defer file.Close()

	instance, err := sat.ParseDIMACS(file)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	return instance
}

func writeOutput(output []byte, outFile string) {
	if outFile == "" {
		fmt.Println(string(output))
		return
	}
	if err := os.WriteFile(outFile, output, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}
}
