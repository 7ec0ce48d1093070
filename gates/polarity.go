package gates

import "github.com/sat-clique/garrett/cnf"

// A Polarity records how a variable has been observed across a gate
// structure: consistently as one literal, or at both polarities (mixed).
type Polarity struct {
	lit   cnf.Lit
	mixed bool
}

// Mixed reports whether the variable was observed at both polarities.
func (p Polarity) Mixed() bool { return p.mixed }

// Lit returns the single observed literal. The second return value is
// false when the polarity is mixed.
func (p Polarity) Lit() (cnf.Lit, bool) { return p.lit, !p.mixed }

// A PolarityMap is the monotone-input-sign map: for each variable that
// appears as a gate input or in a root clause, the polarity at which it
// has been observed. It is built once per validation and read-only
// afterwards.
type PolarityMap map[cnf.Var]Polarity

// Permits reports whether the map allows treating l's variable as
// occurring only as l: either the variable was never observed, or it was
// observed exactly as l.
func (m PolarityMap) Permits(l cnf.Lit) bool {
	p, ok := m[l.Var()]
	if !ok {
		return true
	}
	seen, single := p.Lit()
	return single && seen == l
}

func (m PolarityMap) observe(l cnf.Lit) {
	v := l.Var()
	p, ok := m[v]
	if !ok {
		m[v] = Polarity{lit: l}
		return
	}
	if p.mixed || p.lit != l {
		m[v] = Polarity{mixed: true}
	}
}

func (m PolarityMap) markMixed(v cnf.Var) {
	m[v] = Polarity{mixed: true}
}

// InputPolarities derives the monotone-input-sign map from a whole gate
// structure in a single pass. Inputs of monotonically nested gates are
// observed at their recorded polarity; inputs of other gates count as
// used at both polarities. Root clause literals are observed like
// monotone inputs.
func InputPolarities(s *Structure) PolarityMap {
	m := make(PolarityMap)
	for i := range s.Gates {
		g := &s.Gates[i]
		for _, l := range g.Inputs {
			if g.NestedMonotonic {
				m.observe(l)
			} else {
				m.markMixed(l.Var())
			}
		}
	}
	for _, r := range s.Roots {
		for _, l := range r {
			m.observe(l)
		}
	}
	return m
}
