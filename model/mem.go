package model

import (
	"math/big"

	"github.com/groundwire/implicant/term"
)

// Mem is a small, self-contained reference Model: an assignment over
// the leaves of the term DAG (Uninterpreted terms, ArithConst, BvConst)
// plus structural evaluation of every composite kind the collector
// visits. The evaluator is otherwise an assumed external collaborator;
// Mem exists so the collector and its invariants can be exercised
// end-to-end without a real SMT solver.
//
// Evaluation walks children and combines their values bottom-up; it
// memoizes nothing itself, since the collector owns its own cache.
type Mem struct {
	store  *term.Store
	assign map[term.Ref]Value
}

var _ Model = (*Mem)(nil)

// NewMem creates an evaluator over store with the given leaf
// assignment. Keys must be the positive (unsigned) form of an
// Uninterpreted term.
func NewMem(store *term.Store, assign map[term.Ref]*big.Int) *Mem {
	m := &Mem{store: store, assign: make(map[term.Ref]Value, len(assign))}
	for k, v := range assign {
		if store.IsBoolean(k) {
			m.assign[k.Unsigned()] = BoolValue(v.Sign() != 0)
		} else {
			m.assign[k.Unsigned()] = IntValue(v)
		}
	}
	return m
}

// Set overrides (or adds) the assignment for a single term, positive
// polarity only.
func (m *Mem) Set(t term.Ref, v Value) { m.assign[t.Unsigned()] = v }

func (m *Mem) Eval(t term.Ref) (Value, bool) {
	u := t.Unsigned()
	v, ok := m.evalUnsigned(u)
	if !ok {
		return Value{}, false
	}
	if t.Polarity() != 0 && v.isBool {
		return BoolValue(!v.boolVal), true
	}
	return v, true
}

func (m *Mem) evalUnsigned(u term.Ref) (Value, bool) {
	if v, ok := m.assign[u]; ok {
		return v, true
	}
	if u == term.TrueTerm {
		return BoolValue(true), true
	}

	s := m.store
	switch s.Kind(u) {
	case term.BoolConst:
		return BoolValue(u == term.TrueTerm), true

	case term.ArithConst:
		return IntValue(s.Value(u)), true

	case term.BvConst:
		return BvValue(s.Width(u), s.Value(u)), true

	case term.Variable:
		return Value{}, false

	case term.ArithEq0:
		a := s.Unary(u).Arg
		iv, ok := m.evalInt(a)
		if !ok {
			return Value{}, false
		}
		return BoolValue(iv.Sign() == 0), true

	case term.ArithGe0:
		a := s.Unary(u).Arg
		iv, ok := m.evalInt(a)
		if !ok {
			return Value{}, false
		}
		return BoolValue(iv.Sign() >= 0), true

	case term.Ite:
		args := s.Ite(u)
		cv, ok := m.Eval(args.Cond)
		if !ok {
			return Value{}, false
		}
		if cv.IsTrue() {
			return m.Eval(args.Then)
		}
		return m.Eval(args.Else)

	case term.Or:
		anyUnknown := false
		for _, a := range s.Children(u).Args {
			v, ok := m.Eval(a)
			if !ok {
				anyUnknown = true
				continue
			}
			if v.IsTrue() {
				return BoolValue(true), true
			}
		}
		if anyUnknown {
			return Value{}, false
		}
		return BoolValue(false), true

	case term.Xor:
		acc := false
		for _, a := range s.Children(u).Args {
			v, ok := m.Eval(a)
			if !ok {
				return Value{}, false
			}
			acc = acc != v.IsTrue()
		}
		return BoolValue(acc), true

	case term.Eq, term.ArithBinEq:
		args := s.Children(u).Args
		return m.evalEq(args[0], args[1])

	case term.Distinct:
		args := s.Children(u).Args
		for i := 0; i < len(args); i++ {
			for j := i + 1; j < len(args); j++ {
				eqv, ok := m.evalEq(args[i], args[j])
				if !ok {
					return Value{}, false
				}
				if eqv.IsTrue() {
					return BoolValue(false), true
				}
			}
		}
		return BoolValue(true), true

	case term.BvEq:
		args := s.Children(u).Args
		av, _, ok1 := m.evalBv(args[0])
		bv, _, ok2 := m.evalBv(args[1])
		if !ok1 || !ok2 {
			return Value{}, false
		}
		return BoolValue(av.Cmp(bv) == 0), true

	case term.BvGe:
		args := s.Children(u).Args
		av, _, ok1 := m.evalBv(args[0])
		bv, _, ok2 := m.evalBv(args[1])
		if !ok1 || !ok2 {
			return Value{}, false
		}
		return BoolValue(av.Cmp(bv) >= 0), true

	case term.BvSGe:
		args := s.Children(u).Args
		av, w1, ok1 := m.evalBv(args[0])
		bv, _, ok2 := m.evalBv(args[1])
		if !ok1 || !ok2 {
			return Value{}, false
		}
		return BoolValue(toSigned(av, w1).Cmp(toSigned(bv, w1)) >= 0), true

	case term.BvDiv, term.BvRem, term.BvSDiv, term.BvSRem, term.BvSMod,
		term.BvShl, term.BvLShr, term.BvAShr:
		args := s.Children(u).Args
		av, w, ok1 := m.evalBv(args[0])
		bv, _, ok2 := m.evalBv(args[1])
		if !ok1 || !ok2 {
			return Value{}, false
		}
		return bvArith(s.Kind(u), av, bv, w), true

	case term.BvArray:
		// Best-effort: evaluate an n-bit array built from Boolean bits
		// into an unsigned integer, bit i in args[i].
		args := s.Children(u).Args
		acc := big.NewInt(0)
		for i, a := range args {
			v, ok := m.Eval(a)
			if !ok {
				return Value{}, false
			}
			if v.IsTrue() {
				acc.SetBit(acc, i, 1)
			}
		}
		return BvValue(uint32(len(args)), acc), true

	case term.Select:
		idx := s.Indexed(u)
		return m.Eval(idx.Arg)

	case term.Bit:
		idx := s.Indexed(u)
		bv, _, ok := m.evalBv(idx.Arg)
		if !ok {
			return Value{}, false
		}
		return BoolValue(bv.Bit(int(idx.Index)) == 1), true

	case term.ArithPoly, term.BvPoly64, term.BvPoly:
		return m.evalPoly(u)

	case term.PowerProduct:
		return m.evalPowerProduct(u)

	case term.Uninterpreted, term.App, term.Update, term.Tuple,
		term.Forall, term.Lambda:
		return Value{}, false

	default:
		return Value{}, false
	}
}

func (m *Mem) evalEq(a, b term.Ref) (Value, bool) {
	if m.store.IsBoolean(a) {
		av, ok1 := m.Eval(a)
		bv, ok2 := m.Eval(b)
		if !ok1 || !ok2 {
			return Value{}, false
		}
		return BoolValue(av.IsTrue() == bv.IsTrue()), true
	}
	av, ok1 := m.evalInt(a)
	bv, ok2 := m.evalInt(b)
	if !ok1 || !ok2 {
		return Value{}, false
	}
	return BoolValue(av.Cmp(bv) == 0), true
}

func (m *Mem) evalInt(t term.Ref) (*big.Int, bool) {
	v, ok := m.Eval(t)
	if !ok {
		return nil, false
	}
	if iv, ok := v.Int(); ok {
		return iv, true
	}
	if v.isBool {
		if v.boolVal {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	}
	return nil, false
}

func (m *Mem) evalBv(t term.Ref) (*big.Int, uint32, bool) {
	v, ok := m.Eval(t)
	if !ok {
		return nil, 0, false
	}
	if bv, w, ok := v.Bv(); ok {
		return bv, w, true
	}
	return nil, 0, false
}

func (m *Mem) evalPoly(u term.Ref) (Value, bool) {
	poly := m.store.Poly(u)
	acc := big.NewInt(0)
	for _, mono := range poly.Monomials {
		c := mono.Coeff
		if c == nil {
			c = big.NewInt(1)
		}
		if mono.IsConst() {
			acc.Add(acc, c)
			continue
		}
		vv, ok := m.evalInt(mono.Var)
		if !ok {
			return Value{}, false
		}
		acc.Add(acc, new(big.Int).Mul(c, vv))
	}
	if poly.Width > 0 {
		acc = reduceMod(acc, poly.Width)
		return BvValue(poly.Width, acc), true
	}
	return IntValue(acc), true
}

func (m *Mem) evalPowerProduct(u term.Ref) (Value, bool) {
	pp := m.store.PowerProduct(u)
	acc := big.NewInt(1)
	for i, v := range pp.Vars {
		vv, ok := m.evalInt(v)
		if !ok {
			return Value{}, false
		}
		e := uint32(1)
		if i < len(pp.Exp) {
			e = pp.Exp[i]
		}
		acc.Mul(acc, new(big.Int).Exp(vv, big.NewInt(int64(e)), nil))
	}
	return IntValue(acc), true
}

func reduceMod(v *big.Int, width uint32) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r := new(big.Int).Mod(v, mod)
	return r
}

func toSigned(v *big.Int, width uint32) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if v.Cmp(half) >= 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		return new(big.Int).Sub(v, mod)
	}
	return new(big.Int).Set(v)
}

func bvArith(k term.Kind, a, b *big.Int, width uint32) Value {
	var r *big.Int
	switch k {
	case term.BvDiv:
		r = safeDiv(a, b)
	case term.BvRem:
		r = safeMod(a, b)
	case term.BvSDiv:
		r = safeDiv(toSigned(a, width), toSigned(b, width))
	case term.BvSRem, term.BvSMod:
		r = safeMod(toSigned(a, width), toSigned(b, width))
	case term.BvShl:
		r = new(big.Int).Lsh(a, uint(b.Uint64()))
	case term.BvLShr:
		r = new(big.Int).Rsh(a, uint(b.Uint64()))
	case term.BvAShr:
		r = new(big.Int).Rsh(toSigned(a, width), uint(b.Uint64()))
	default:
		r = big.NewInt(0)
	}
	return BvValue(width, reduceMod(r, width))
}

func safeDiv(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Quo(a, b)
}

func safeMod(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Rem(a, b)
}
