package term

import (
	"math/big"
	"math/rand"
)

// RandGenParams configures Generator, the random term/formula generator
// used by collector's property-based tests: a seeded math/rand source
// plus bounds on formula depth and vocabulary size.
type RandGenParams struct {
	Seed     int64
	MaxDepth int
	NumBools int
	NumInts  int
}

// DefaultRandGenParams returns reasonable bounded defaults (not unbounded).
func DefaultRandGenParams() RandGenParams {
	return RandGenParams{
		Seed:     1,
		MaxDepth: 4,
		NumBools: 3,
		NumInts:  3,
	}
}

// Generator builds random formulas over a fixed vocabulary of
// uninterpreted Boolean atoms and integer variables, plus a model
// assignment for that vocabulary.
type Generator struct {
	rnd    *rand.Rand
	params RandGenParams
	store  *Store
	Bools  []Ref
	Ints   []Ref
}

func NewGenerator(s *Store, p RandGenParams) *Generator {
	g := &Generator{rnd: rand.New(rand.NewSource(p.Seed)), params: p, store: s}
	for i := 0; i < p.NumBools; i++ {
		g.Bools = append(g.Bools, s.NewUninterpreted(letterName("p", i), true))
	}
	for i := 0; i < p.NumInts; i++ {
		g.Ints = append(g.Ints, s.NewUninterpreted(letterName("x", i), false))
	}
	return g
}

func letterName(prefix string, i int) string {
	b := []byte(prefix)
	b = append(b, byte('a'+i%26))
	return string(b)
}

// RandomAssignment produces an assignment map covering every atom and
// integer variable the generator knows about.
func (g *Generator) RandomAssignment() map[Ref]*big.Int {
	m := make(map[Ref]*big.Int)
	for _, b := range g.Bools {
		v := int64(0)
		if g.rnd.Intn(2) == 1 {
			v = 1
		}
		m[b] = big.NewInt(v)
	}
	for _, x := range g.Ints {
		m[x] = big.NewInt(int64(g.rnd.Intn(21) - 10))
	}
	return m
}

// RandomBoolFormula builds a random Boolean-sorted term using Or, Xor,
// Eq, ArithGe0 over an arithmetic Ite, and the vocabulary
// atoms/variables; it never builds ArithEq0.
func (g *Generator) RandomBoolFormula(depth int) Ref {
	if depth <= 0 || g.rnd.Intn(3) == 0 {
		return g.randomLeafBool()
	}
	switch g.rnd.Intn(5) {
	case 0:
		n := 2 + g.rnd.Intn(2)
		args := make([]Ref, n)
		for i := range args {
			args[i] = g.RandomBoolFormula(depth - 1)
		}
		return g.store.NewOr(args...)
	case 1:
		n := 2 + g.rnd.Intn(2)
		args := make([]Ref, n)
		for i := range args {
			args[i] = g.RandomBoolFormula(depth - 1)
		}
		return g.store.NewXor(args...)
	case 2:
		c := g.RandomBoolFormula(depth - 1)
		a := g.RandomArithTerm(depth - 1)
		b := g.RandomArithTerm(depth - 1)
		return g.store.NewArithGe0(g.store.NewIte(c, a, b))
	case 3:
		a := g.RandomArithTerm(depth - 1)
		b := g.RandomArithTerm(depth - 1)
		return g.store.NewEq(a, b)
	default:
		return g.randomLeafBool()
	}
}

func (g *Generator) randomLeafBool() Ref {
	if len(g.Bools) == 0 {
		return TrueTerm
	}
	r := g.Bools[g.rnd.Intn(len(g.Bools))]
	if g.rnd.Intn(2) == 1 {
		return r.Negate()
	}
	return r
}

// RandomArithTerm builds a random integer-sorted term using ArithPoly
// nodes and Ite-of-arith nodes.
func (g *Generator) RandomArithTerm(depth int) Ref {
	if depth <= 0 || g.rnd.Intn(2) == 0 || len(g.Ints) == 0 {
		c := big.NewInt(int64(g.rnd.Intn(11) - 5))
		return g.store.NewArithConst(c)
	}
	switch g.rnd.Intn(2) {
	case 0:
		x := g.Ints[g.rnd.Intn(len(g.Ints))]
		k := big.NewInt(int64(g.rnd.Intn(5) - 2))
		monos := []Monomial{
			{Var: ConstTerm, Coeff: k},
			{Var: x, Coeff: big.NewInt(1)},
		}
		return g.store.NewPoly(0, monos)
	default:
		c := g.RandomBoolFormula(depth - 1)
		a := g.RandomArithTerm(depth - 1)
		b := g.RandomArithTerm(depth - 1)
		return g.store.NewIte(c, a, b)
	}
}
