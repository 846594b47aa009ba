package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"satbackbone/internal/backbone"
	"satbackbone/internal/sat"
)

// Sweeps the clause-to-variable ratio across the random 3-SAT phase
// transition and records solver effort and backbone rigidity per ratio.

type BenchmarkResult struct {
	Alpha          float64
	Instances      int
	Satisfiable    int
	MeanSteps      float64
	MeanBacktracks float64
	MeanRigidity   float64
	Duration       int64 // milliseconds for the whole batch
}

var alphas = []float64{3.0, 3.5, 4.0, sat.DefaultAlpha, 4.5, 5.0}

func main() {
	variablesPtr := flag.Uint64("vars", 30, "Number of variables per instance")
	instancesPtr := flag.Int("instances", 20, "Instances per alpha value")
	seedPtr := flag.Uint64("seed", 1, "Generator seed")
	crossCheckPtr := flag.Bool("crosscheck", false, "Verify every satisfiability verdict against kissat")
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path of the CSV results file")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seedPtr, *seedPtr))
	solver := sat.NewDPLLSolver()
	finder := backbone.NewFinder(solver)
	var crossCheck sat.Solver
	if *crossCheckPtr {
		crossCheck = sat.NewKissatSolver()
	}

	results := make([]BenchmarkResult, 0, len(alphas))
	for _, alpha := range alphas {
		fmt.Printf("Benchmarking alpha %v with %v instances of %v variables\n", alpha, *instancesPtr, *variablesPtr)
		results = append(results, measure(finder, crossCheck, rng, alpha, *variablesPtr, *instancesPtr))
	}

	toCsv(results, *outFilePtr)
}

func measure(finder backbone.Finder, crossCheck sat.Solver, rng *rand.Rand, alpha float64, variables uint64, instances int) BenchmarkResult {
	result := BenchmarkResult{Alpha: alpha, Instances: instances}
	var totalStats sat.Stats
	var totalRigidity float64

	start := time.Now()
	for range instances {
		instance, err := sat.Generate3SAT(variables, alpha, rng)
		if err != nil {
			log.Fatalf("cannot generate instance: %v", err)
		}

		frozen, satisfiable, stats, err := finder.FindBackbone(instance)
		if err != nil {
			log.Fatalf("an error occurred during backbone extraction: %v", err)
		}
		totalStats.Add(stats)

		if satisfiable {
			result.Satisfiable++
			totalRigidity += float64(len(frozen)) / float64(variables)
		}

		if crossCheck != nil {
			reference, _, err := crossCheck.Solve(instance)
			if err != nil {
				log.Fatalf("an error occurred during kissat cross-check: %v", err)
			}
			if reference.Satisfiable != satisfiable {
				log.Fatalf("verdict mismatch at alpha %v: dpll says %v, kissat says %v\n%v", alpha, satisfiable, reference.Satisfiable, instance.ToDIMACS())
			}
		}
	}
	result.Duration = time.Since(start).Milliseconds()

	result.MeanSteps = float64(totalStats.Steps) / float64(instances)
	result.MeanBacktracks = float64(totalStats.Backtracks) / float64(instances)
	if result.Satisfiable > 0 {
		result.MeanRigidity = totalRigidity / float64(result.Satisfiable)
	}
	return result
}

func toCsv(results []BenchmarkResult, outFile string) {
	file, err := os.Create(outFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Alpha", "Instances", "Satisfiable", "Mean-Steps", "Mean-Backtracks", "Mean-Rigidity", "Duration(ms)"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%v", result.Alpha),
			fmt.Sprintf("%d", result.Instances),
			fmt.Sprintf("%d", result.Satisfiable),
			fmt.Sprintf("%.1f", result.MeanSteps),
			fmt.Sprintf("%.1f", result.MeanBacktracks),
			fmt.Sprintf("%.3f", result.MeanRigidity),
			fmt.Sprintf("%d", result.Duration),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
