// Package scan recovers candidate gate structures from CNF problems. It
// is recognition glue in front of the validator: the criteria here are
// syntactic (a forward/backward clause partition around an output
// variable whose fwd/bwd resolvents are all tautological), and every
// recovered gate is a claim for the semantic checks in the validation
// package, not a proof.
package scan

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sat-clique/garrett/cnf"
	"github.com/sat-clique/garrett/gates"
	"github.com/sat-clique/garrett/validation"
)

type scanner struct {
	problem  *cnf.Problem
	occ      map[cnf.Lit][]int
	consumed []bool
	out      []gates.Gate
	members  []map[int]bool // per gate, the clause indices forming it
}

// Gates scans the problem for gate encodings and returns the recovered
// structure. Clauses not attributed to any gate become root clauses. The
// problem must not be mutated afterwards; the returned gates hold handles
// into its clause storage.
func Gates(problem *cnf.Problem) *gates.Structure {
	sc := &scanner{
		problem:  problem,
		occ:      make(map[cnf.Lit][]int),
		consumed: make([]bool, len(problem.Clauses)),
	}
	for i, c := range problem.Clauses {
		for _, l := range c {
			sc.occ[l] = append(sc.occ[l], i)
		}
	}

	// Work downwards from the likely circuit outputs: variables of unit
	// clauses first, then the remaining variables from the highest id
	// down (Tseitin-style encodings allocate gate outputs after their
	// inputs).
	queue := sc.seeds()
	tried := make(map[cnf.Var]bool)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if tried[v] {
			continue
		}
		tried[v] = true
		if g, ok := sc.tryGate(v); ok {
			for _, l := range g.Inputs {
				queue = append(queue, l.Var())
			}
		}
	}
	sc.flagMonotonic()

	structure := &gates.Structure{Gates: sc.out}
	for i, c := range problem.Clauses {
		if !sc.consumed[i] {
			structure.Roots = append(structure.Roots, append(cnf.Clause(nil), c...))
		}
	}
	logrus.Debugf("scan: recovered %d gates, %d roots", len(structure.Gates), len(structure.Roots))
	return structure
}

func (sc *scanner) seeds() []cnf.Var {
	var seeds []cnf.Var
	inUnit := make(map[cnf.Var]bool)
	for _, c := range sc.problem.Clauses {
		if len(c) == 1 {
			v := c[0].Var()
			if !inUnit[v] {
				inUnit[v] = true
				seeds = append(seeds, v)
			}
		}
	}
	rest := make(map[cnf.Var]bool)
	for l := range sc.occ {
		if !inUnit[l.Var()] {
			rest[l.Var()] = true
		}
	}
	tail := make([]cnf.Var, 0, len(rest))
	for v := range rest {
		tail = append(tail, v)
	}
	sort.Slice(tail, func(i, j int) bool { return tail[i] > tail[j] })
	return append(seeds, tail...)
}

// candidates returns the unconsumed, non-unit clauses containing l. Unit
// clauses are facts consuming a gate's output, never part of its
// encoding.
func (sc *scanner) candidates(l cnf.Lit) []int {
	var out []int
	for _, i := range sc.occ[l] {
		if !sc.consumed[i] && len(sc.problem.Clauses[i]) > 1 {
			out = append(out, i)
		}
	}
	return out
}

// tryGate attempts to recover a gate with output variable v from the
// still-unconsumed clauses mentioning v. Both polarities must occur and
// every forward/backward resolvent on v must be tautological.
func (sc *scanner) tryGate(v cnf.Var) (*gates.Gate, bool) {
	o := cnf.Pos(v)
	fwd := sc.candidates(o)
	bwd := sc.candidates(o.Not())
	if len(fwd) == 0 || len(bwd) == 0 {
		return nil, false
	}

	g := gates.Gate{
		Output: o,
		NumFwd: len(fwd),
	}
	members := make(map[int]bool, len(fwd)+len(bwd))
	inputSeen := make(map[cnf.Var]bool)
	for _, i := range append(append([]int(nil), fwd...), bwd...) {
		h := sc.problem.Handle(i)
		members[i] = true
		g.Clauses = append(g.Clauses, h)
		for _, l := range *h {
			if l.Var() != v && !inputSeen[l.Var()] {
				inputSeen[l.Var()] = true
				g.Inputs = append(g.Inputs, l)
			}
		}
	}
	if !validation.ResolventsTautological(&g) {
		return nil, false
	}

	for i := range members {
		sc.consumed[i] = true
	}
	sc.out = append(sc.out, g)
	sc.members = append(sc.members, members)
	logrus.Debugf("scan: gate %s with %d inputs, %d clauses", o, len(g.Inputs), len(g.Clauses))
	return &sc.out[len(sc.out)-1], true
}

// flagMonotonic marks gates whose output variable occurs at a single
// polarity outside the gate's own clauses, or not at all. Run once after
// scanning so the answer does not depend on recovery order.
func (sc *scanner) flagMonotonic() {
	for gi := range sc.out {
		g := &sc.out[gi]
		v := g.Output.Var()
		pos, neg := 0, 0
		for _, i := range sc.occ[cnf.Pos(v)] {
			if !sc.members[gi][i] {
				pos++
			}
		}
		for _, i := range sc.occ[cnf.Neg(v)] {
			if !sc.members[gi][i] {
				neg++
			}
		}
		g.NestedMonotonic = pos == 0 || neg == 0
	}
}
