package collector

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groundwire/implicant/model"
	"github.com/groundwire/implicant/term"
	"github.com/groundwire/implicant/termmgr"
)

// TestAppRebuildsWithPreservedBooleanSort exercises App as a
// Boolean-sorted atom: its single argument is a Boolean atom, so
// visiting it forces a rebuild, and the rebuilt App must still
// register as an atom rather than being returned bare.
func TestAppRebuildsWithPreservedBooleanSort(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	fn := s.NewUninterpreted("fn", false)
	p := s.NewUninterpreted("p", true)
	app := s.NewApp(fn, []term.Ref{p}, true)

	rebuilt := s.NewApp(fn, []term.Ref{term.TrueTerm}, true)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{p: big.NewInt(1)})
	mdl.Set(rebuilt, model.BoolValue(true))

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{app}, &out))
	require.Contains(t, out, p)
	require.Contains(t, out, rebuilt)
}

// TestUpdateRebuildsWithPreservedBooleanSort is TestApp's counterpart
// for Update.
func TestUpdateRebuildsWithPreservedBooleanSort(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	fn := s.NewUninterpreted("fn", false)
	idx := s.NewArithConst(big.NewInt(0))
	p := s.NewUninterpreted("p", true)
	upd := s.NewUpdate(fn, []term.Ref{idx}, p, true)

	rebuilt := s.NewUpdate(fn, []term.Ref{idx}, term.TrueTerm, true)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{p: big.NewInt(1)})
	mdl.Set(rebuilt, model.BoolValue(true))

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{upd}, &out))
	require.Contains(t, out, p)
	require.Contains(t, out, rebuilt)
}

// TestDistinctRegistersAtomAroundBooleanMembers covers Distinct
// (always Boolean): its rebuilt form, after both members simplify to
// TRUE/FALSE, still must evaluate and register as a single atom.
func TestDistinctRegistersAtomAroundBooleanMembers(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)
	distinct := s.NewDistinct(p, q)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		q: big.NewInt(0),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{distinct}, &out))
	require.Contains(t, out, p)
	require.Contains(t, out, q.Negate())
	require.Contains(t, out, s.NewDistinct(term.TrueTerm, term.FalseTerm))
}

// TestSelectRebuildsWithPreservedBooleanSort covers Select over a
// Tuple whose selected component is Boolean, exercising Tuple's own
// rebuild along the way.
func TestSelectRebuildsWithPreservedBooleanSort(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	x := s.NewUninterpreted("x", false)
	tup := s.NewTuple(p, x)
	sel := s.NewSelect(0, tup, true)

	rebuiltTuple := s.NewTuple(term.TrueTerm, x)
	rebuiltSelect := s.NewSelect(0, rebuiltTuple, true)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{p: big.NewInt(1), x: big.NewInt(3)})
	mdl.Set(rebuiltSelect, model.BoolValue(true))

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{sel}, &out))
	require.Contains(t, out, p)
	require.Contains(t, out, rebuiltSelect)
}

// TestBvArrayAndBitRebuildThroughBooleanBits builds a bitvector out of
// individual Boolean bits and reads two of them back through Bit,
// covering both BvArray and Bit end to end (Mem evaluates both
// structurally, with no explicit assignment needed for either).
func TestBvArrayAndBitRebuildThroughBooleanBits(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)
	arr := s.NewBvArray(p, q)
	bit0 := s.NewBit(0, arr)
	bit1 := s.NewBit(1, arr)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		q: big.NewInt(0),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{bit0, bit1.Negate()}, &out))
	require.Contains(t, out, p)
	require.Contains(t, out, q.Negate())
}

// TestBvComparisonAndArithmeticOpsDispatch hits every Bv arithmetic
// kind and BvGe/BvSGe through the visitor's dispatch table. Each
// arithmetic op is compared against itself through BvEq: the exact
// numeric result doesn't matter, since the visitor leaves these
// constant-argument terms unchanged and Mem evaluates both sides of
// each BvEq to the same value.
func TestBvComparisonAndArithmeticOpsDispatch(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)
	width := uint32(4)
	nine := s.NewBvConst(width, big.NewInt(9))
	three := s.NewBvConst(width, big.NewInt(3))

	mdl := model.NewMem(s, nil)
	c := New(s, mdl, mgr)

	checkTrue := func(top term.Ref) {
		t.Helper()
		c.Reset()
		var out []term.Ref
		require.NoError(t, c.GetImplicants([]term.Ref{top}, &out))
		require.Equal(t, []term.Ref{top}, out)
	}

	checkTrue(s.NewBvGe(nine, three))
	checkTrue(s.NewBvSGe(three, three))
	checkTrue(s.NewBvEq(s.NewBvDiv(nine, three), s.NewBvDiv(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvRem(nine, three), s.NewBvRem(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvSDiv(nine, three), s.NewBvSDiv(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvSRem(nine, three), s.NewBvSRem(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvSMod(nine, three), s.NewBvSMod(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvShl(nine, three), s.NewBvShl(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvLShr(nine, three), s.NewBvLShr(nine, three)))
	checkTrue(s.NewBvEq(s.NewBvAShr(nine, three), s.NewBvAShr(nine, three)))
}

// TestPowerProductRebuildsAndEvaluates covers PowerProduct, including
// the rebuild branch (its one variable is wrapped in an Ite so
// visiting it changes the Ref) and structural evaluation through a
// containing ArithPoly/ArithEq0.
func TestPowerProductRebuildsAndEvaluates(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	x := s.NewUninterpreted("x", false)
	zero := s.NewArithConst(big.NewInt(0))
	itex := s.NewIte(p, x, zero)

	pow := s.NewPowerProduct([]term.Ref{itex}, []uint32{2})
	top := s.NewArithEq0(s.NewPoly(0, []term.Monomial{
		{Var: term.ConstTerm, Coeff: big.NewInt(-9)},
		{Var: pow, Coeff: big.NewInt(1)},
	}))

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		x: big.NewInt(3),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{top}, &out))
	require.Contains(t, out, p)
}
