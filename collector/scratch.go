package collector

import "github.com/groundwire/implicant/term"

// scratch is a LIFO arena of reusable term.Ref slices. Each recursive
// case that processes an n-ary composite borrows a fresh n-element
// slice, fills it with simplified children, and releases it before the
// case returns.
//
// Go's slice growth already amortizes allocation, so scratch exists for
// a different invariant: allocations within one composite case are
// released before the case returns, and the whole arena is reset on
// failure, rather than for performance that `make([]term.Ref, n)` per
// call wouldn't also give; see collector.go's Reset.
type scratch struct {
	pool [][]term.Ref
}

// alloc borrows (or allocates) a slice of length n.
func (s *scratch) alloc(n int) []term.Ref {
	if len(s.pool) > 0 {
		top := s.pool[len(s.pool)-1]
		if cap(top) >= n {
			s.pool = s.pool[:len(s.pool)-1]
			return top[:n]
		}
	}
	return make([]term.Ref, n)
}

// release returns a slice to the pool for reuse by a later alloc.
func (s *scratch) release(a []term.Ref) {
	s.pool = append(s.pool, a[:0])
}

// reset discards every pooled buffer. Called after a failed Process
// call so the next call starts clean.
func (s *scratch) reset() {
	s.pool = s.pool[:0]
}
