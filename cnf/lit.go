// Package cnf holds the value types for propositional formulas in
// conjunctive normal form: variables, literals, clauses, and the clause
// container the rest of the module borrows from.
package cnf

import "strconv"

// A Var identifies a propositional variable. Variable ids are opaque
// non-negative integers; real variables are > 0.
type Var uint32

// A Lit is a variable or its negation. The representation is the literal's
// index, 2*var for a positive literal and 2*var+1 for a negative one, so
// literals can be used directly as dense slice indices.
type Lit uint32

// Pos returns the positive literal of v.
func Pos(v Var) Lit { return Lit(v) << 1 }

// Neg returns the negative literal of v.
func Neg(v Var) Lit { return Lit(v)<<1 | 1 }

// FromDimacs converts a DIMACS-coded literal (negative integers indicate
// negated variables) to a Lit.
func FromDimacs(m int) Lit {
	if m < 0 {
		return Neg(Var(-m))
	}
	return Pos(Var(m))
}

// Var returns the variable of l.
func (l Lit) Var() Var { return Var(l >> 1) }

// IsPos reports whether l is a positive (unnegated) literal.
func (l Lit) IsPos() bool { return l&1 == 0 }

// Not returns the negation of l.
func (l Lit) Not() Lit { return l ^ 1 }

// Index returns the dense index of l, 2*var+sign.
func (l Lit) Index() int { return int(l) }

// Dimacs returns the DIMACS coding of l.
func (l Lit) Dimacs() int {
	if l&1 != 0 {
		return -int(l >> 1)
	}
	return int(l >> 1)
}

func (l Lit) String() string { return strconv.Itoa(l.Dimacs()) }
