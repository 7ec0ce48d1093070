package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse parses text in the DIMACS CNF format and delivers each parsed
// clause through emit, one call per clause. Parsing stops on the first
// error returned by emit.
//
// For convenience, a few non-standard variations are accepted:
//
//   - Comments (lines beginning with 'c') may appear anywhere, not just in
//     the preamble.
//   - The problem line may be missing.
//   - Some CNF formats attach extra data in a trailer after a line
//     containing a single %; the trailer is ignored.
func Parse(r io.Reader, emit func(Clause) error) error {
	var problem struct {
		vars    int
		clauses int
	}
	var clause Clause
	numClauses := 0
	sawClause := false
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if sawClause {
				return errors.New("problem line appears after clauses")
			}
			if problem.vars > 0 {
				return errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return errors.Errorf("malformed problem line %q", line)
			}
			if fields[1] != "cnf" {
				return errors.Errorf("only cnf supported; got %q", fields[1])
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return errors.Wrap(err, "malformed #vars in problem line")
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return errors.Wrap(err, "malformed #clauses in problem line")
			}
			if problem.vars < 0 {
				return errors.Errorf("invalid #vars %d", problem.vars)
			}
			if problem.clauses < 0 {
				return errors.Errorf("invalid #clauses %d", problem.clauses)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return errors.Wrap(err, "invalid variable")
			}
			if n == 0 {
				sawClause = true
				numClauses++
				if err := emit(clause); err != nil {
					return err
				}
				clause = nil
				continue
			}
			lit := FromDimacs(n)
			if problem.vars > 0 && int(lit.Var()) > problem.vars {
				return errors.Errorf("formula contains var %d, but problem line asserts %d vars (only vars in [1, %d] expected)",
					lit.Var(), problem.vars, problem.vars)
			}
			clause = append(clause, lit)
		}
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "reading DIMACS input")
	}
	if len(clause) > 0 {
		numClauses++
		if err := emit(clause); err != nil {
			return err
		}
	}
	if problem.vars > 0 && numClauses != problem.clauses {
		return errors.Errorf("problem line specifies %d clauses, but there are %d", problem.clauses, numClauses)
	}
	return nil
}

// ParseProblem parses DIMACS text into a freshly allocated Problem.
func ParseProblem(r io.Reader) (*Problem, error) {
	p := new(Problem)
	err := Parse(r, func(c Clause) error {
		p.Add(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Write writes clauses in the DIMACS CNF format, with a problem line
// computed from the clauses themselves.
func Write(w io.Writer, clauses []Clause) error {
	bw := bufio.NewWriter(w)
	maxVar := Var(0)
	for _, c := range clauses {
		for _, l := range c {
			if l.Var() > maxVar {
				maxVar = l.Var()
			}
		}
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", maxVar, len(clauses))
	for _, c := range clauses {
		for _, l := range c {
			fmt.Fprintf(bw, "%d ", l.Dimacs())
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}
