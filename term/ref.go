// Package term defines the read-only view of a hash-consed term DAG:
// term references, kinds, and per-kind descriptors. It owns no storage
// policy of its own beyond the reference implementation in store.go.
package term

// Ref is an opaque term identifier: an index with a polarity bit packed
// into the low bit. negate and unsigned are O(1).
type Ref int32

const (
	// NullTerm is the sentinel "no term" value, used by the visit cache
	// to mean "not present".
	NullTerm Ref = -1

	// boolIndex is the reserved index of the Boolean constant term.
	// TrueTerm is its positive polarity, FalseTerm its negation.
	boolIndex = 0

	// TrueTerm and FalseTerm are the two distinguished Boolean constants.
	TrueTerm  Ref = Ref(boolIndex << 1)
	FalseTerm Ref = TrueTerm ^ 1
)

// ConstIdx is the sentinel variable index identifying the constant
// monomial of a polynomial.
const ConstIdx int32 = -1

// index returns the unsigned index packed into t, discarding polarity.
func (t Ref) index() int32 { return int32(t) >> 1 }

// Polarity returns 0 for a positive occurrence, 1 for a negated one.
func (t Ref) Polarity() int { return int(t) & 1 }

// Negate flips polarity in O(1); it never touches the index.
func (t Ref) Negate() Ref { return t ^ 1 }

// Unsigned strips polarity, returning the canonical positive form used
// as a cache/interning key.
func (t Ref) Unsigned() Ref { return t &^ 1 }

// Positive reports whether t has positive polarity.
func (t Ref) Positive() bool { return t.Polarity() == 0 }

// WithPolarity reapplies pol (0 or 1) to the unsigned form of t.
func (t Ref) WithPolarity(pol int) Ref {
	u := t.Unsigned()
	if pol&1 != 0 {
		return u ^ 1
	}
	return u
}

// mkRef packs an index and a polarity bit into a Ref. Callers outside
// this package obtain fresh indices only through a Table implementation.
func mkRef(index int32, pol int) Ref {
	r := Ref(index << 1)
	if pol&1 != 0 {
		r ^= 1
	}
	return r
}

func boolTerm(b bool) Ref {
	if b {
		return TrueTerm
	}
	return FalseTerm
}

// BoolValue returns (b, true) if t is TrueTerm or FalseTerm.
func BoolValue(t Ref) (bool, bool) {
	switch t {
	case TrueTerm:
		return true, true
	case FalseTerm:
		return false, true
	default:
		return false, false
	}
}

// BoolTerm is the public constructor from a plain bool to TrueTerm/FalseTerm.
func BoolTerm(b bool) Ref { return boolTerm(b) }
