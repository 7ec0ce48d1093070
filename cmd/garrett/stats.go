package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/sat-clique/garrett/cnf"
	"github.com/sat-clique/garrett/gates"
)

func printStat(w io.Writer, name string, value interface{}) {
	fmt.Fprintf(w, "%s: %v\n", name, value)
}

func printStats(w io.Writer, problem *cnf.Problem, structure *gates.Structure, path string, scanDuration time.Duration) {
	numVars := problem.NumVars()
	numClauses := problem.NumClauses()
	numGateClauses := structure.NumGateClauses()

	printStat(w, "name", filepath.Base(path))
	printStat(w, "dur_gate_scan_seconds", scanDuration.Seconds())
	printStat(w, "num_vars_in_problem", numVars)
	printStat(w, "num_clauses_in_problem", numClauses)
	printStat(w, "num_unaries_in_problem", problem.NumUnaries())
	printStat(w, "num_clauses_in_gates", numGateClauses)
	printStat(w, "num_gates", len(structure.Gates))
	printStat(w, "num_roots", len(structure.Roots))
	printStat(w, "num_gates/num_vars_in_problem",
		float64(len(structure.Gates))/float64(numVars))
	printStat(w, "num_clauses_in_gates/num_clauses_in_problem",
		float64(numGateClauses)/float64(numClauses))
}
