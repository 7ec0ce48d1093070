// Package solver wraps a CDCL SAT solver behind a small session type. A
// session accepts clauses over external cnf literals, queues unit
// assumptions for the next solve, and answers satisfiability queries. The
// backing solver is gini; external variables are mapped to solver
// variables lazily so callers never have to declare them up front.
package solver

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/sat-clique/garrett/cnf"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// A Session is one instance of the backing solver. Clauses added with
// AddClause are permanent: they constrain every subsequent Solve call.
// Assumptions queued with Assume apply to the next Solve call only.
//
// A Session is not safe for concurrent use; workers construct their own.
type Session struct {
	g    *gini.Gini
	vars map[cnf.Var]int
}

// NewSession returns a session with an empty constraint set.
func NewSession() *Session {
	return &Session{
		g:    gini.New(),
		vars: make(map[cnf.Var]int),
	}
}

// lit translates an external literal into a solver literal, allocating a
// solver variable the first time a variable is seen.
func (s *Session) lit(l cnf.Lit) z.Lit {
	v, ok := s.vars[l.Var()]
	if !ok {
		v = len(s.vars) + 1
		s.vars[l.Var()] = v
	}
	if l.IsPos() {
		return z.Dimacs2Lit(v)
	}
	return z.Dimacs2Lit(-v)
}

// AddClause adds the disjunction of the literals in c, together with any
// extra literals, as a permanent constraint.
func (s *Session) AddClause(c cnf.Clause, extra ...cnf.Lit) {
	for _, l := range c {
		s.g.Add(s.lit(l))
	}
	for _, l := range extra {
		s.g.Add(s.lit(l))
	}
	s.g.Add(z.LitNull)
}

// Assume queues a unit assumption for the next Solve call.
func (s *Session) Assume(l cnf.Lit) {
	s.g.Assume(s.lit(l))
}

// Solve reports whether the constraint set together with the queued
// assumptions is satisfiable. The queued assumptions are consumed either
// way. Ordinary unsatisfiability is not an error; a non-nil error means
// the backing solver failed internally.
func (s *Session) Solve() (bool, error) {
	switch result := s.g.Solve(); result {
	case satisfiable:
		return true, nil
	case unsatisfiable:
		return false, nil
	default:
		return false, errors.Errorf("solver returned unexpected result %d", result)
	}
}
