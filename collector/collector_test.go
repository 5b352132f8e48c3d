package collector

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groundwire/implicant/model"
	"github.com/groundwire/implicant/term"
	"github.com/groundwire/implicant/termmgr"
)

// checkLiteralsTrue evaluates each literal of lits (as written,
// respecting polarity) in mdl and requires it to evaluate and be true:
// soundness here means every literal is itself true in mdl, which the
// collector guarantees by construction.
func checkLiteralsTrue(t *testing.T, mdl model.Model, lits []term.Ref) {
	t.Helper()
	for _, l := range lits {
		v, ok := mdl.Eval(l)
		require.True(t, ok, "literal %v must evaluate", l)
		require.True(t, v.IsTrue(), "literal %v must be true in the model", l)
	}
}

func TestArithIteSelectsChosenBranch(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	x := s.NewUninterpreted("x", false)
	five := s.NewArithConst(big.NewInt(5))
	p := s.NewUninterpreted("p", true)

	cond := p
	thenBranch := s.NewArithGe0(x)
	elseBranch := s.NewArithEq0(x)
	f := s.NewIte(cond, thenBranch, elseBranch)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		x: big.NewInt(3),
	})
	_ = five

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{f}, &out))
	checkLiteralsTrue(t, mdl, out)
	require.Contains(t, out, p)
	require.NotContains(t, out, cond.Negate())
	require.Contains(t, out, thenBranch)
	require.NotContains(t, out, elseBranch)
	require.NotContains(t, out, elseBranch.Negate())
}

func TestOrPicksFirstTrueDisjunct(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)
	r := s.NewUninterpreted("r", true)
	f := s.NewOr(p, q, r)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(0),
		q: big.NewInt(1),
		r: big.NewInt(1),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{f}, &out))
	require.Equal(t, []term.Ref{q}, out)
}

func TestOrFalseForcesConjunctionOfNegations(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)
	f := s.NewOr(p, q)
	top := f.Negate()

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(0),
		q: big.NewInt(0),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{top}, &out))
	require.ElementsMatch(t, []term.Ref{p.Negate(), q.Negate()}, out)
}

func TestXorVisitsAllOperands(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)
	r := s.NewUninterpreted("r", true)
	f := s.NewXor(p, q, r)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		q: big.NewInt(0),
		r: big.NewInt(0),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{f}, &out))
	require.ElementsMatch(t, []term.Ref{p, q.Negate(), r.Negate()}, out)
}

// TestSharedSubtermVisitedOnce builds a term where the same subterm
// occurs twice as both operands of an Eq, and checks the cache records
// exactly one entry for it despite being reached through two distinct
// call sites.
func TestSharedSubtermVisitedOnce(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	x := s.NewUninterpreted("x", false)
	shared := s.NewArithGe0(x)
	f := s.NewEq(shared, shared)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{x: big.NewInt(1)})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{f}, &out))
	// shared itself is registered once (its two occurrences as Eq's
	// operands collapse to a single cache entry); the outer Eq rebuilds
	// as Eq(TRUE, TRUE), which the manager folds to TRUE, so it adds no
	// literal of its own.
	require.ElementsMatch(t, []term.Ref{shared}, out)
	_, ok := c.cache.find(shared.Unsigned())
	require.True(t, ok)
}

func TestFreeVariableRejected(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	v := s.NewVariable("X")
	f := s.NewArithGe0(v)

	mdl := model.NewMem(s, nil)
	c := New(s, mdl, mgr)
	_, err := c.Process(f)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, FreeVar, ce.Code)
}

func TestQuantifierAndLambdaRejected(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)
	x := s.NewVariable("x")
	mdl := model.NewMem(s, nil)

	forall := s.NewForall([]term.Ref{x}, s.NewArithGe0(x))
	c := New(s, mdl, mgr)
	_, err := c.Process(forall)
	require.Error(t, err)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, Quantifier, fe.Code)

	lambda := s.NewLambda([]term.Ref{x}, x)
	c.Reset()
	_, err = c.Process(lambda)
	require.Error(t, err)
	var le *Error
	require.ErrorAs(t, err, &le)
	require.Equal(t, Lambda, le.Code)
}

func TestEvalGapSurfacesEvalFailed(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	mdl := model.NewMem(s, nil)

	c := New(s, mdl, mgr)
	_, err := c.Process(p)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, EvalFailed, ce.Code)
}

func TestGetImplicantsAcrossMultipleAssertions(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		q: big.NewInt(1),
	})

	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{p, q}, &out))
	require.ElementsMatch(t, []term.Ref{p, q}, out)
}

func TestProcessIsIdempotentPerAtom(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	f := s.NewOr(p, p)

	mdl := model.NewMem(s, map[term.Ref]*big.Int{p: big.NewInt(1)})
	c := New(s, mdl, mgr)
	var out []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{f}, &out))
	require.Equal(t, []term.Ref{p}, out)
}

// TestRandomFormulasYieldSoundImplicants property-tests the central
// invariant across many random formulas and assignments: whatever the
// collector returns is, literal by literal, true in the model that
// produced it.
func TestRandomFormulasYieldSoundImplicants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		s := term.NewStore()
		mgr := termmgr.New(s)
		g := term.NewGenerator(s, term.RandGenParams{Seed: seed, MaxDepth: 3, NumBools: 3, NumInts: 3})

		assign := g.RandomAssignment()
		mdl := model.NewMem(s, assign)

		f := g.RandomBoolFormula(3)
		v, ok := mdl.Eval(f)
		if !ok || !v.IsTrue() {
			continue
		}

		c := New(s, mdl, mgr)
		var out []term.Ref
		err := c.GetImplicants([]term.Ref{f}, &out)
		require.NoError(t, err)
		checkLiteralsTrue(t, mdl, out)
	}
}

// TestResetAllowsReuseAgainstNewAssertion confirms Reset clears cache,
// literal set, and scratch so the same Collector can be reused for an
// unrelated collection against the same model.
func TestResetAllowsReuseAgainstNewAssertion(t *testing.T) {
	s := term.NewStore()
	mgr := termmgr.New(s)

	p := s.NewUninterpreted("p", true)
	q := s.NewUninterpreted("q", true)
	mdl := model.NewMem(s, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		q: big.NewInt(1),
	})

	c := New(s, mdl, mgr)
	var out1 []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{p}, &out1))
	require.Equal(t, []term.Ref{p}, out1)

	c.Reset()
	var out2 []term.Ref
	require.NoError(t, c.GetImplicants([]term.Ref{q}, &out2))
	require.Equal(t, []term.Ref{q}, out2)
}
