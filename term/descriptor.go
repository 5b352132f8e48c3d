package term

import "math/big"

// IteArgs is the fixed-arity-3 descriptor of an Ite node.
type IteArgs struct {
	Cond, Then, Else Ref
}

// Composite is the descriptor shared by every n-ary or fixed-arity
// kind whose rebuild rule is "recurse on every child, rebuild if any
// child changed": App, Update, Tuple, Distinct, Eq, ArithBinEq, BvEq,
// BvGe, BvSGe, the Bv arithmetic kinds, BvArray, Or, Xor.
type Composite struct {
	Args []Ref
}

// Monomial is a single (coefficient, variable) term of a polynomial.
// The constant monomial, if present, has Var == term.ConstTerm and is
// always first.
type Monomial struct {
	Coeff *big.Int
	Var   Ref
}

// ConstTerm is the sentinel Ref identifying the constant monomial's
// "variable" slot; it is never a real interned term.
var ConstTerm = mkRef(ConstIdx, 0)

// IsConst reports whether m is the constant monomial of a polynomial.
func (m Monomial) IsConst() bool { return m.Var == ConstTerm }

// Poly is the descriptor for ArithPoly, BvPoly64, and BvPoly. Width
// distinguishes the three: 0 means unbounded arithmetic, >0 means a
// bitvector of that many bits.
type Poly struct {
	Monomials []Monomial
	Width     uint32
}

// PowerProductArgs is the descriptor for PowerProduct: a product of
// variables raised to positive exponents.
type PowerProductArgs struct {
	Vars  []Ref
	Exp   []uint32
}

// IndexedArg is the descriptor for Select(i, u) and Bit(i, u): a fixed
// index plus one subterm.
type IndexedArg struct {
	Index uint32
	Arg   Ref
}

// UnaryArg is the descriptor for ArithEq0(u) and ArithGe0(u): a single
// subterm asserted to be respectively == 0 or >= 0.
type UnaryArg struct {
	Arg Ref
}
