package collector

import "github.com/groundwire/implicant/term"

// visitCache memoizes the unsigned-term -> simplified-term mapping: look
// up by content key, insert monotonically within one top-level call, no
// eviction.
type visitCache struct {
	m map[term.Ref]term.Ref
}

func newVisitCache() *visitCache {
	return &visitCache{m: make(map[term.Ref]term.Ref)}
}

// find returns (simplified, true) if u (already unsigned) has been
// visited, or (term.NullTerm, false) otherwise.
func (c *visitCache) find(u term.Ref) (term.Ref, bool) {
	v, ok := c.m[u]
	if !ok {
		return term.NullTerm, false
	}
	return v, true
}

// store records the simplified form of the unsigned term u. Storing
// twice for the same u is a programming error (the visitor only ever
// computes each unsigned term once per call), so it panics rather than
// silently overwriting.
func (c *visitCache) store(u, simplified term.Ref) {
	if _, ok := c.m[u]; ok {
		panic("collector: duplicate cache insert")
	}
	c.m[u] = simplified
}

func (c *visitCache) reset() {
	c.m = make(map[term.Ref]term.Ref)
}
