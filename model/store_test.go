package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groundwire/implicant/term"
)

func TestStoreCachesEvalResults(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpreted("x", false)
	mem := NewMem(s, map[term.Ref]*big.Int{x: big.NewInt(7)})
	cached := NewInMemoryStore(mem)

	v, ok := cached.Eval(x)
	require.True(t, ok)
	iv, ok := v.Int()
	require.True(t, ok)
	require.Equal(t, big.NewInt(7), iv)

	// second Eval must be served from the kv cache and agree
	v2, ok := cached.Eval(x)
	require.True(t, ok)
	iv2, _ := v2.Int()
	require.Equal(t, 0, iv.Cmp(iv2))
}

func TestStoreRoundTripsNegativeInt(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpreted("x", false)
	mem := NewMem(s, map[term.Ref]*big.Int{x: big.NewInt(-7)})
	cached := NewInMemoryStore(mem)

	v, ok := cached.Eval(x)
	require.True(t, ok)
	iv, ok := v.Int()
	require.True(t, ok)
	require.Equal(t, big.NewInt(-7), iv)

	// second Eval is served from the kv cache and must preserve the sign
	v2, ok := cached.Eval(x)
	require.True(t, ok)
	iv2, _ := v2.Int()
	require.Equal(t, big.NewInt(-7), iv2)
}

func TestStoreRoundTripsBoolAndBv(t *testing.T) {
	s := term.NewStore()
	p := s.NewUninterpreted("p", true)
	mem := NewMem(s, nil)
	mem.Set(p, BoolValue(true))
	cached := NewInMemoryStore(mem)

	v, ok := cached.Eval(p)
	require.True(t, ok)
	require.True(t, v.IsTrue())

	v2, ok := cached.Eval(p.Negate())
	require.True(t, ok)
	require.False(t, v2.IsTrue())

	// a bitvector value is served from the kv cache on the second Eval
	// and must keep its width and payload
	bv := s.NewBvConst(8, big.NewInt(200))
	_, ok = cached.Eval(bv)
	require.True(t, ok)
	v3, ok := cached.Eval(bv)
	require.True(t, ok)
	bvv, w, ok := v3.Bv()
	require.True(t, ok)
	require.Equal(t, uint32(8), w)
	require.Equal(t, 0, bvv.Cmp(big.NewInt(200)))
}
