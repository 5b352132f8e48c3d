package term

// Table is the read-only term table collaborator: given a term
// reference, it reports the term's kind, Boolean sort, and a per-kind
// descriptor of its children. It is consumed by the visitor; the
// visitor never mutates it.
//
// Descriptor accessors are only valid to call when Kind(t) matches the
// kind the accessor is named for; callers (the visitor) always check
// Kind first.
type Table interface {
	// IsGood reports whether t is a valid, currently-interned reference.
	IsGood(t Ref) bool

	// Kind returns the term kind of the unsigned form of t.
	Kind(t Ref) Kind

	// IsBoolean reports whether t has Boolean sort.
	IsBoolean(t Ref) bool

	// Ite returns the descriptor of an Ite(c, a, b) node.
	Ite(t Ref) IteArgs

	// Unary returns the descriptor of an ArithEq0(u) or ArithGe0(u) node.
	Unary(t Ref) UnaryArg

	// Indexed returns the descriptor of a Select(i, u) or Bit(i, u) node.
	Indexed(t Ref) IndexedArg

	// Children returns the descriptor of any n-ary/fixed-arity composite
	// listed for term.Composite in descriptor.go.
	Children(t Ref) Composite

	// Poly returns the descriptor of an ArithPoly, BvPoly64, or BvPoly node.
	Poly(t Ref) Poly

	// PowerProduct returns the descriptor of a PowerProduct node.
	PowerProduct(t Ref) PowerProductArgs
}
