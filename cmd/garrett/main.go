// Command garrett validates gate structures recovered from CNF formulas.
//
// It reads a single problem in the DIMACS CNF format, scans it for gate
// encodings, prints statistics about the recovered structure, and then
// proves or refutes the structure's soundness with a SAT solver. The
// final output line is "valid: 1" or "valid: 0".
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sat-clique/garrett/cnf"
	"github.com/sat-clique/garrett/progress"
	"github.com/sat-clique/garrett/scan"
	"github.com/sat-clique/garrett/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		workers int
		debug   bool
	)
	cmd := &cobra.Command{
		Use:           "garrett FILE",
		Short:         "Validate the gate structure recovered from a CNF formula",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return run(args[0], workers, debug)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", defaultWorkers(), "number of validation workers")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging and structure dumps")
	return cmd
}

// Solver work is CPU-bound and shows diminishing returns past a couple of
// threads for this workload.
func defaultWorkers() int {
	if n := runtime.NumCPU(); n < 2 {
		return n
	}
	return 2
}

func run(path string, workers int, debug bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	problem, err := cnf.ParseProblem(f)
	if err != nil {
		return err
	}

	start := time.Now()
	structure := scan.Gates(problem)
	scanDuration := time.Since(start)

	printStats(os.Stdout, problem, structure, path, scanDuration)
	if debug {
		logrus.Debugf("gate structure:\n%s", pretty.Sprint(structure))
	}

	bar := progress.New(40, "validating gates")
	total := len(structure.Gates)
	sink := func(done int) {
		if total > 0 {
			bar.Set(float64(done) / float64(total))
		}
	}
	verdict, err := validation.Validate(structure, workers, sink)
	bar.Finish()
	if err != nil {
		return err
	}

	if verdict == validation.Valid {
		fmt.Println("valid: 1")
	} else {
		fmt.Println("valid: 0")
	}
	return nil
}
