package term

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// entry is the internal representation of one interned (unsigned) term.
// Only the fields relevant to entry.kind are populated; callers must
// check Kind before reading a kind-specific field.
type entry struct {
	kind     Kind
	boolean  bool
	name     string
	value    *big.Int
	width    uint32
	ite      IteArgs
	unary    UnaryArg
	indexed  IndexedArg
	children Composite
	poly     Poly
	pprod    PowerProductArgs
}

// Store is a concrete, in-memory hash-consed term table: the reference
// implementation of the term.Table collaborator. New composite terms are
// content-addressed: interned by a hash of their structure rather than
// by an externally assigned id.
type Store struct {
	entries []entry
	intern  map[[20]byte]int32
}

// NewStore creates an empty term store. Index 0 is reserved for the
// Boolean constant (term.TrueTerm / term.FalseTerm).
func NewStore() *Store {
	s := &Store{
		entries: make([]entry, 1, 64),
		intern:  make(map[[20]byte]int32),
	}
	s.entries[0] = entry{kind: BoolConst, boolean: true}
	return s
}

var _ Table = (*Store)(nil)

func (s *Store) IsGood(t Ref) bool {
	idx := t.index()
	return idx >= 0 && int(idx) < len(s.entries)
}

func (s *Store) get(t Ref) *entry {
	return &s.entries[t.index()]
}

func (s *Store) Kind(t Ref) Kind { return s.get(t).kind }

func (s *Store) IsBoolean(t Ref) bool { return s.get(t).boolean }

func (s *Store) Ite(t Ref) IteArgs { return s.get(t).ite }

func (s *Store) Unary(t Ref) UnaryArg { return s.get(t).unary }

func (s *Store) Indexed(t Ref) IndexedArg { return s.get(t).indexed }

func (s *Store) Children(t Ref) Composite { return s.get(t).children }

func (s *Store) Poly(t Ref) Poly { return s.get(t).poly }

func (s *Store) PowerProduct(t Ref) PowerProductArgs { return s.get(t).pprod }

// Name returns the display name of an Uninterpreted or Variable term.
func (s *Store) Name(t Ref) string { return s.get(t).name }

// Value returns the numeric value of an ArithConst or BvConst term.
func (s *Store) Value(t Ref) *big.Int { return s.get(t).value }

// Width returns the bit-width of a BvConst or a bitvector Poly term (0
// for non-bitvector kinds).
func (s *Store) Width(t Ref) uint32 { return s.get(t).width }

// ---- hash-consing -----------------------------------------------------

// hashEntry computes the structural content hash used as the interning
// key for content-addressing a term by its structure.
func hashEntry(e entry) [20]byte {
	h, _ := blake2b.New(20, nil)
	var b [8]byte
	putKind := func(k Kind) { h.Write([]byte{byte(k)}) }
	putRef := func(r Ref) {
		binary.LittleEndian.PutUint32(b[:4], uint32(r))
		h.Write(b[:4])
	}
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(b[:4], v)
		h.Write(b[:4])
	}

	putKind(e.kind)
	h.Write([]byte(e.name))
	if e.value != nil {
		h.Write(e.value.Bytes())
		if e.value.Sign() < 0 {
			h.Write([]byte{0xff})
		}
	}
	putU32(e.width)
	putRef(e.ite.Cond)
	putRef(e.ite.Then)
	putRef(e.ite.Else)
	putRef(e.unary.Arg)
	putU32(e.indexed.Index)
	putRef(e.indexed.Arg)
	for _, a := range e.children.Args {
		putRef(a)
	}
	for _, m := range e.poly.Monomials {
		putRef(m.Var)
		if m.Coeff != nil {
			h.Write(m.Coeff.Bytes())
			if m.Coeff.Sign() < 0 {
				h.Write([]byte{0xff})
			}
		}
	}
	for i, v := range e.pprod.Vars {
		putRef(v)
		if i < len(e.pprod.Exp) {
			putU32(e.pprod.Exp[i])
		}
	}
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// intern0 returns the existing Ref for e if a structurally identical
// term is already interned, otherwise allocates a fresh index. Returned
// Ref always has positive polarity; callers apply polarity separately.
func (s *Store) intern0(e entry) Ref {
	key := hashEntry(e)
	if idx, ok := s.intern[key]; ok {
		return mkRef(idx, 0)
	}
	idx := int32(len(s.entries))
	s.entries = append(s.entries, e)
	s.intern[key] = idx
	return mkRef(idx, 0)
}

// ---- constructors -------------------------------------------------------
//
// Store's constructors perform no semantic simplification: they only
// intern whatever descriptor they are given. Constant folding and other
// algebraic normalization is termmgr.Manager's responsibility; Store is
// the DAG, not the rewriter.

func (s *Store) NewUninterpreted(name string, boolean bool) Ref {
	return s.intern0(entry{kind: Uninterpreted, boolean: boolean, name: name})
}

func (s *Store) NewVariable(name string) Ref {
	return s.intern0(entry{kind: Variable, name: name})
}

func (s *Store) NewArithConst(v *big.Int) Ref {
	return s.intern0(entry{kind: ArithConst, value: new(big.Int).Set(v)})
}

func (s *Store) NewBvConst(width uint32, v *big.Int) Ref {
	return s.intern0(entry{kind: BvConst, width: width, value: new(big.Int).Set(v)})
}

func (s *Store) NewIte(cond, then, els Ref) Ref {
	return s.intern0(entry{kind: Ite, boolean: s.IsBoolean(then), ite: IteArgs{cond, then, els}})
}

func (s *Store) NewArithEq0(u Ref) Ref {
	return s.intern0(entry{kind: ArithEq0, boolean: true, unary: UnaryArg{u}})
}

func (s *Store) NewArithGe0(u Ref) Ref {
	return s.intern0(entry{kind: ArithGe0, boolean: true, unary: UnaryArg{u}})
}

func (s *Store) newComposite(k Kind, boolean bool, args ...Ref) Ref {
	cp := make([]Ref, len(args))
	copy(cp, args)
	return s.intern0(entry{kind: k, boolean: boolean, children: Composite{Args: cp}})
}

// NewApp builds an uninterpreted function application. boolean must
// reflect the sort of fn's codomain: an App over a Boolean-returning
// function is itself a Boolean atom, just like NewUninterpreted's
// caller-supplied flag.
func (s *Store) NewApp(fn Ref, args []Ref, boolean bool) Ref {
	all := append([]Ref{fn}, args...)
	return s.newComposite(App, boolean, all...)
}

// NewUpdate builds a function/array update. boolean must reflect the
// sort of fn's codomain, the same as NewApp.
func (s *Store) NewUpdate(fn Ref, args []Ref, val Ref, boolean bool) Ref {
	all := append(append([]Ref{fn}, args...), val)
	return s.newComposite(Update, boolean, all...)
}

func (s *Store) NewTuple(args ...Ref) Ref {
	if len(args) < 2 {
		panic(fmt.Sprintf("term.NewTuple: arity %d < 2", len(args)))
	}
	return s.newComposite(Tuple, false, args...)
}

func (s *Store) NewEq(a, b Ref) Ref { return s.newComposite(Eq, true, a, b) }

func (s *Store) NewDistinct(args ...Ref) Ref { return s.newComposite(Distinct, true, args...) }

func (s *Store) NewOr(args ...Ref) Ref { return s.newComposite(Or, true, args...) }

func (s *Store) NewXor(args ...Ref) Ref { return s.newComposite(Xor, true, args...) }

func (s *Store) NewArithBinEq(a, b Ref) Ref { return s.newComposite(ArithBinEq, true, a, b) }

func (s *Store) NewBvArray(args ...Ref) Ref { return s.newComposite(BvArray, false, args...) }

func (s *Store) newBvBinOp(k Kind, a, b Ref) Ref { return s.newComposite(k, false, a, b) }

func (s *Store) NewBvDiv(a, b Ref) Ref  { return s.newBvBinOp(BvDiv, a, b) }
func (s *Store) NewBvRem(a, b Ref) Ref  { return s.newBvBinOp(BvRem, a, b) }
func (s *Store) NewBvSDiv(a, b Ref) Ref { return s.newBvBinOp(BvSDiv, a, b) }
func (s *Store) NewBvSRem(a, b Ref) Ref { return s.newBvBinOp(BvSRem, a, b) }
func (s *Store) NewBvSMod(a, b Ref) Ref { return s.newBvBinOp(BvSMod, a, b) }
func (s *Store) NewBvShl(a, b Ref) Ref  { return s.newBvBinOp(BvShl, a, b) }
func (s *Store) NewBvLShr(a, b Ref) Ref { return s.newBvBinOp(BvLShr, a, b) }
func (s *Store) NewBvAShr(a, b Ref) Ref { return s.newBvBinOp(BvAShr, a, b) }

func (s *Store) NewBvEq(a, b Ref) Ref  { return s.newComposite(BvEq, true, a, b) }
func (s *Store) NewBvGe(a, b Ref) Ref  { return s.newComposite(BvGe, true, a, b) }
func (s *Store) NewBvSGe(a, b Ref) Ref { return s.newComposite(BvSGe, true, a, b) }

// NewSelect builds a tuple/array projection. boolean must reflect the
// sort of the selected component, which the caller (not the table)
// knows.
func (s *Store) NewSelect(i uint32, u Ref, boolean bool) Ref {
	return s.intern0(entry{kind: Select, boolean: boolean, indexed: IndexedArg{i, u}})
}

func (s *Store) NewBit(i uint32, u Ref) Ref {
	return s.intern0(entry{kind: Bit, boolean: true, indexed: IndexedArg{i, u}})
}

func (s *Store) NewPowerProduct(vars []Ref, exp []uint32) Ref {
	v := make([]Ref, len(vars))
	copy(v, vars)
	e := make([]uint32, len(exp))
	copy(e, exp)
	return s.intern0(entry{kind: PowerProduct, pprod: PowerProductArgs{Vars: v, Exp: e}})
}

func (s *Store) NewPoly(width uint32, monos []Monomial) Ref {
	k := ArithPoly
	if width > 0 {
		if width <= 64 {
			k = BvPoly64
		} else {
			k = BvPoly
		}
	}
	ms := make([]Monomial, len(monos))
	for i, m := range monos {
		c := m.Coeff
		if c != nil {
			c = new(big.Int).Set(c)
		}
		ms[i] = Monomial{Coeff: c, Var: m.Var}
	}
	return s.intern0(entry{kind: k, width: width, poly: Poly{Monomials: ms, Width: width}})
}

func (s *Store) NewForall(bound []Ref, body Ref) Ref {
	all := append(append([]Ref{}, bound...), body)
	return s.newComposite(Forall, true, all...)
}

func (s *Store) NewLambda(bound []Ref, body Ref) Ref {
	all := append(append([]Ref{}, bound...), body)
	return s.newComposite(Lambda, false, all...)
}
