// Package gates models recovered gate structures: claims, produced by a
// gate-recognition pass, that subsets of a CNF formula's clauses encode
// Boolean functions over designated input and output variables.
package gates

import (
	"github.com/pkg/errors"

	"github.com/sat-clique/garrett/cnf"
)

// A Gate claims that Clauses encode a Boolean function of the variables of
// Inputs with output variable Output.Var(). The sign of Output records the
// polarity at which the output appears in the forward clauses.
//
// Clauses is partitioned: the first NumFwd clauses are forward clauses and
// contain the Output literal; the remainder are backward clauses and
// contain its negation. The handles point into the clause container the
// structure was recovered from and stay valid only while that container is
// unchanged.
type Gate struct {
	Output          cnf.Lit
	Inputs          []cnf.Lit
	Clauses         []*cnf.Clause
	NumFwd          int
	NestedMonotonic bool
}

// Forward returns the forward clauses, those containing the output
// literal.
func (g *Gate) Forward() []*cnf.Clause { return g.Clauses[:g.NumFwd] }

// Backward returns the backward clauses, those containing the negated
// output literal.
func (g *Gate) Backward() []*cnf.Clause { return g.Clauses[g.NumFwd:] }

// A Structure is the result of a gate-recognition pass over a CNF problem:
// the recovered gates plus the root clauses, the clauses of the original
// formula not consumed by any gate.
type Structure struct {
	Gates []Gate
	Roots []cnf.Clause
}

// NumGateClauses returns the total number of clauses attributed to gates.
func (s *Structure) NumGateClauses() int {
	n := 0
	for i := range s.Gates {
		n += len(s.Gates[i].Clauses)
	}
	return n
}

// Check verifies the structural invariants a recognition pass must
// guarantee: every gate clause is present and mentions the output variable
// at exactly one polarity, forward clauses carry the output literal and
// backward clauses its negation, the forward count is in range, and no two
// gates share an output variable. A violation means the structure is
// malformed input, not an invalid gate.
func (s *Structure) Check() error {
	outputs := make(map[cnf.Var]struct{}, len(s.Gates))
	for i := range s.Gates {
		g := &s.Gates[i]
		o := g.Output
		if _, ok := outputs[o.Var()]; ok {
			return errors.Errorf("gates share output variable %d", o.Var())
		}
		outputs[o.Var()] = struct{}{}
		if g.NumFwd < 0 || g.NumFwd > len(g.Clauses) {
			return errors.Errorf("gate %s: forward clause count %d out of range [0, %d]",
				o, g.NumFwd, len(g.Clauses))
		}
		for j, h := range g.Clauses {
			if h == nil {
				return errors.Errorf("gate %s: clause %d is a nil handle", o, j)
			}
			c := *h
			if c.Contains(o) && c.Contains(o.Not()) {
				return errors.Errorf("gate %s: clause %s contains both polarities of the output variable", o, c)
			}
			if j < g.NumFwd {
				if !c.Contains(o) {
					return errors.Errorf("gate %s: forward clause %s lacks the output literal", o, c)
				}
			} else if !c.Contains(o.Not()) {
				return errors.Errorf("gate %s: backward clause %s lacks the negated output literal", o, c)
			}
		}
		for _, l := range g.Inputs {
			if l.Var() == o.Var() {
				return errors.Errorf("gate %s: output variable listed as an input", o)
			}
		}
	}
	return nil
}
