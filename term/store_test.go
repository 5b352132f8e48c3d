package term

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolarityOps(t *testing.T) {
	s := NewStore()
	p := s.NewUninterpreted("p", true)
	np := p.Negate()

	require.NotEqual(t, p, np)
	require.Equal(t, p, np.Negate())
	require.Equal(t, p.Unsigned(), np.Unsigned())
	require.True(t, p.Positive())
	require.False(t, np.Positive())
	require.Equal(t, FalseTerm, TrueTerm.Negate())
}

func TestHashConsingDedupes(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpreted("x", false)
	y := s.NewUninterpreted("y", false)

	e1 := s.NewEq(x, y)
	e2 := s.NewEq(x, y)
	require.Equal(t, e1, e2, "structurally identical terms must intern to the same Ref")

	e3 := s.NewEq(y, x)
	require.NotEqual(t, e1, e3, "argument order is part of structural identity")
}

func TestPolyConstMonomialFirst(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpreted("x", false)
	p := s.NewPoly(0, []Monomial{
		{Var: ConstTerm, Coeff: big.NewInt(2)},
		{Var: x, Coeff: big.NewInt(3)},
	})
	require.Equal(t, ArithPoly, s.Kind(p))
	poly := s.Poly(p)
	require.True(t, poly.Monomials[0].IsConst())
	require.Equal(t, x, poly.Monomials[1].Var)
}

func TestBvPolyWidthSelectsKind(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpreted("x", false)
	small := s.NewPoly(32, []Monomial{{Var: x, Coeff: big.NewInt(1)}})
	require.Equal(t, BvPoly64, s.Kind(small))

	big_ := s.NewPoly(128, []Monomial{{Var: x, Coeff: big.NewInt(1)}})
	require.Equal(t, BvPoly, s.Kind(big_))
}

func TestIteDescriptor(t *testing.T) {
	s := NewStore()
	c := s.NewUninterpreted("c", true)
	a := s.NewUninterpreted("a", false)
	b := s.NewUninterpreted("b", false)
	it := s.NewIte(c, a, b)
	require.Equal(t, Ite, s.Kind(it))
	args := s.Ite(it)
	require.Equal(t, IteArgs{c, a, b}, args)
}
