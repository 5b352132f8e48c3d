package collector

import "github.com/groundwire/implicant/term"

// litSet is the deduplicated, insert-only set of collected literals,
// with a freeze step separating the insertion phase from drain.
type litSet struct {
	items  map[term.Ref]struct{}
	order  []term.Ref
	frozen bool
}

func newLitSet() *litSet {
	return &litSet{items: make(map[term.Ref]struct{})}
}

// add inserts t. TRUE is explicitly filtered since it carries no
// information as a conjunct; duplicate adds are no-ops. add panics if
// called after freeze — a programming error in this package, not a
// caller-reachable state.
func (l *litSet) add(t term.Ref) {
	if l.frozen {
		panic("collector: add after freeze")
	}
	if t == term.TrueTerm {
		return
	}
	if _, ok := l.items[t]; ok {
		return
	}
	l.items[t] = struct{}{}
	l.order = append(l.order, t)
}

// freeze stops further insertions and returns the collected literals in
// (implementation-defined, but deterministic within one run) insertion
// order.
func (l *litSet) freeze() []term.Ref {
	l.frozen = true
	out := make([]term.Ref, len(l.order))
	copy(out, l.order)
	return out
}

func (l *litSet) reset() {
	l.items = make(map[term.Ref]struct{})
	l.order = l.order[:0]
	l.frozen = false
}

func (l *litSet) len() int { return len(l.order) }
