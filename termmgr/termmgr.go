// Package termmgr implements the term manager collaborator: constructor
// functions that rebuild terms from simplified children and return the
// canonical representative, with light algebraic normalization
// (constant folding and atom-to-constant collapsing). Monomials are
// kept in the order given; they are not reordered.
package termmgr

import (
	"math/big"

	"github.com/groundwire/implicant/term"
)

// Manager is the rebuild/constructor surface the visitor calls after
// recursing into a composite term's children: one constructor per
// composite kind.
type Manager interface {
	ArithEq0(u term.Ref) term.Ref
	ArithGe0(u term.Ref) term.Ref

	App(args []term.Ref, boolean bool) term.Ref
	Update(args []term.Ref, boolean bool) term.Ref
	Tuple(args []term.Ref) term.Ref
	Eq(a, b term.Ref) term.Ref
	Distinct(args []term.Ref) term.Ref
	ArithBinEq(a, b term.Ref) term.Ref
	BvArray(args []term.Ref) term.Ref

	BvDiv(a, b term.Ref) term.Ref
	BvRem(a, b term.Ref) term.Ref
	BvSDiv(a, b term.Ref) term.Ref
	BvSRem(a, b term.Ref) term.Ref
	BvSMod(a, b term.Ref) term.Ref
	BvShl(a, b term.Ref) term.Ref
	BvLShr(a, b term.Ref) term.Ref
	BvAShr(a, b term.Ref) term.Ref

	BvEq(a, b term.Ref) term.Ref
	BvGe(a, b term.Ref) term.Ref
	BvSGe(a, b term.Ref) term.Ref

	Select(i uint32, u term.Ref, boolean bool) term.Ref
	Bit(i uint32, u term.Ref) term.Ref

	PowerProduct(vars []term.Ref, exp []uint32) term.Ref
	Poly(width uint32, monos []term.Monomial) term.Ref
}

// Default is the reference Manager: it delegates interning to a
// term.Store and folds what can be decided for free (e.g. reducing an
// all-constant ArithPoly to a single ArithConst, or an ArithEq0/ArithGe0
// over a constant to TRUE/FALSE outright instead of building an atom
// that will just be re-evaluated).
type Default struct {
	store *term.Store
}

func New(store *term.Store) *Default { return &Default{store: store} }

var _ Manager = (*Default)(nil)

func (m *Default) constInt(t term.Ref) (*big.Int, bool) {
	if m.store.Kind(t) == term.ArithConst {
		return m.store.Value(t), true
	}
	return nil, false
}

func (m *Default) ArithEq0(u term.Ref) term.Ref {
	if v, ok := m.constInt(u); ok {
		return term.BoolTerm(v.Sign() == 0)
	}
	return m.store.NewArithEq0(u)
}

func (m *Default) ArithGe0(u term.Ref) term.Ref {
	if v, ok := m.constInt(u); ok {
		return term.BoolTerm(v.Sign() >= 0)
	}
	return m.store.NewArithGe0(u)
}

func (m *Default) App(args []term.Ref, boolean bool) term.Ref {
	return m.store.NewApp(args[0], args[1:], boolean)
}

func (m *Default) Update(args []term.Ref, boolean bool) term.Ref {
	n := len(args)
	return m.store.NewUpdate(args[0], args[1:n-1], args[n-1], boolean)
}

func (m *Default) Tuple(args []term.Ref) term.Ref {
	return m.store.NewTuple(args...)
}

// Eq folds the reflexive case (same Ref on both sides, trivially TRUE)
// and the case where both sides are the same kind of constant; every
// other case is left to the model/visitor, since this only ever folds
// what it can decide for free.
func (m *Default) Eq(a, b term.Ref) term.Ref {
	if a == b {
		return term.TrueTerm
	}
	if eq, ok := m.tryConstEq(a, b); ok {
		return term.BoolTerm(eq)
	}
	return m.store.NewEq(a, b)
}

func (m *Default) tryConstEq(a, b term.Ref) (bool, bool) {
	ka, kb := m.store.Kind(a), m.store.Kind(b)
	if ka != kb {
		return false, false
	}
	switch ka {
	case term.ArithConst, term.BvConst:
		return m.store.Value(a).Cmp(m.store.Value(b)) == 0, true
	case term.BoolConst:
		return a == b, true
	default:
		return false, false
	}
}

func (m *Default) Distinct(args []term.Ref) term.Ref {
	if len(args) < 2 {
		panic("termmgr: Distinct requires at least 2 arguments")
	}
	for i := 0; i < len(args); i++ {
		for j := i + 1; j < len(args); j++ {
			if args[i] == args[j] {
				return term.FalseTerm
			}
			if eq, ok := m.tryConstEq(args[i], args[j]); ok && eq {
				return term.FalseTerm
			}
		}
	}
	return m.store.NewDistinct(args...)
}

func (m *Default) ArithBinEq(a, b term.Ref) term.Ref { return m.Eq(a, b) }

func (m *Default) BvArray(args []term.Ref) term.Ref { return m.store.NewBvArray(args...) }

func (m *Default) BvDiv(a, b term.Ref) term.Ref  { return m.store.NewBvDiv(a, b) }
func (m *Default) BvRem(a, b term.Ref) term.Ref  { return m.store.NewBvRem(a, b) }
func (m *Default) BvSDiv(a, b term.Ref) term.Ref { return m.store.NewBvSDiv(a, b) }
func (m *Default) BvSRem(a, b term.Ref) term.Ref { return m.store.NewBvSRem(a, b) }
func (m *Default) BvSMod(a, b term.Ref) term.Ref { return m.store.NewBvSMod(a, b) }
func (m *Default) BvShl(a, b term.Ref) term.Ref  { return m.store.NewBvShl(a, b) }
func (m *Default) BvLShr(a, b term.Ref) term.Ref { return m.store.NewBvLShr(a, b) }
func (m *Default) BvAShr(a, b term.Ref) term.Ref { return m.store.NewBvAShr(a, b) }

func (m *Default) BvEq(a, b term.Ref) term.Ref {
	if a == b {
		return term.TrueTerm
	}
	return m.store.NewBvEq(a, b)
}
func (m *Default) BvGe(a, b term.Ref) term.Ref  { return m.store.NewBvGe(a, b) }
func (m *Default) BvSGe(a, b term.Ref) term.Ref { return m.store.NewBvSGe(a, b) }

func (m *Default) Select(i uint32, u term.Ref, boolean bool) term.Ref {
	return m.store.NewSelect(i, u, boolean)
}
func (m *Default) Bit(i uint32, u term.Ref) term.Ref { return m.store.NewBit(i, u) }

func (m *Default) PowerProduct(vars []term.Ref, exp []uint32) term.Ref {
	if len(vars) == 0 {
		return m.store.NewArithConst(big.NewInt(1))
	}
	return m.store.NewPowerProduct(vars, exp)
}

// Poly rebuilds a polynomial from its (possibly simplified) monomials.
// If every non-constant monomial's variable folded down to a constant
// the visitor would already have replaced the variable slot, but if the
// whole polynomial has nothing left except the constant monomial, it
// collapses to a plain constant term.
func (m *Default) Poly(width uint32, monos []term.Monomial) term.Ref {
	if len(monos) == 1 && monos[0].IsConst() {
		if width > 0 {
			return m.store.NewBvConst(width, reduceMod(monos[0].Coeff, width))
		}
		return m.store.NewArithConst(monos[0].Coeff)
	}
	return m.store.NewPoly(width, monos)
}

func reduceMod(v *big.Int, width uint32) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Mod(v, mod)
}
