// Package validation proves recovered gates sound. A gate is valid when
// its clauses encode a functional relation between the declared inputs and
// the output: left-total (some output value works for every input
// assignment) and right-unique (at most one output value works). Both
// properties reduce to satisfiability queries on a fresh SAT session per
// gate; monotonically nested gates may skip the uniqueness half under a
// polarity guard.
package validation

import (
	"github.com/pkg/errors"

	"github.com/sat-clique/garrett/cnf"
	"github.com/sat-clique/garrett/gates"
	"github.com/sat-clique/garrett/solver"
)

// checkGate decides validity for a single gate. The polarity map is
// consulted only for the nested-monotone fast path.
func checkGate(g *gates.Gate, pol gates.PolarityMap) (bool, error) {
	total, err := hasLeftTotality(g)
	if err != nil {
		return false, errors.Wrapf(err, "left-totality check for gate %s", g.Output)
	}
	if !total {
		return false, nil
	}
	// A monotonically nested gate may be under-defined without changing
	// the satisfiability of the enclosing formula, so uniqueness is not
	// required. The claim is only trusted when the polarity map confirms
	// that the output variable occurs outside the gate solely as the
	// output literal, or not at all; mixed or opposite-polarity
	// occurrences revoke the fast path.
	if g.NestedMonotonic && pol.Permits(g.Output) {
		return true, nil
	}
	unique, err := hasRightUniqueness(g)
	if err != nil {
		return false, errors.Wrapf(err, "right-uniqueness check for gate %s", g.Output)
	}
	return unique, nil
}

// hasLeftTotality checks that the gate's clauses stay satisfiable under
// every input assignment. It walks one input pattern per clause, the
// pattern falsifying that clause's non-output literals: if left-totality
// fails at all, it fails along one of those patterns.
func hasLeftTotality(g *gates.Gate) (bool, error) {
	s := solver.NewSession()
	for _, c := range g.Clauses {
		s.AddClause(*c)
	}
	for _, c := range g.Clauses {
		for _, l := range *c {
			if l.Var() != g.Output.Var() {
				s.Assume(l.Not())
			}
		}
		sat, err := s.Solve()
		if err != nil {
			return false, err
		}
		if !sat {
			return false, nil
		}
	}
	return true, nil
}

// hasRightUniqueness checks that at most one output value extends any
// input assignment. Each clause is projected onto the input variables by
// dropping the output literals; the projections are jointly satisfiable
// iff some input assignment falsifies the gate independently of the
// output, so (given left-totality) unsatisfiability is exactly
// uniqueness.
func hasRightUniqueness(g *gates.Gate) (bool, error) {
	s := solver.NewSession()
	var projected cnf.Clause
	for _, c := range g.Clauses {
		projected = projected[:0]
		for _, l := range *c {
			if l.Var() != g.Output.Var() {
				projected = append(projected, l)
			}
		}
		s.AddClause(projected)
	}
	sat, err := s.Solve()
	if err != nil {
		return false, err
	}
	return !sat, nil
}

// ResolventsTautological is the solver-free alternative encoding of
// left-totality for gates with a forward/backward clause partition: every
// resolvent of a forward and a backward clause on the output variable must
// be tautological. It agrees with hasLeftTotality on any gate with a valid
// partition.
func ResolventsTautological(g *gates.Gate) bool {
	for _, fwd := range g.Forward() {
		for _, bwd := range g.Backward() {
			if !resolventTautological(*fwd, *bwd, g.Output.Var()) {
				return false
			}
		}
	}
	return true
}

func resolventTautological(a, b cnf.Clause, pivot cnf.Var) bool {
	seen := make(map[cnf.Lit]struct{}, len(a)+len(b))
	for _, c := range []cnf.Clause{a, b} {
		for _, l := range c {
			if l.Var() == pivot {
				continue
			}
			if _, ok := seen[l.Not()]; ok {
				return true
			}
			seen[l] = struct{}{}
		}
	}
	return false
}
