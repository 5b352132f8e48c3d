//go:build litcollect_debug

package collector

import "github.com/groundwire/implicant/term"

// debugCheck re-evaluates every literal just registered against the
// model and confirms it is true. It is compiled in only under the
// litcollect_debug build tag, since it re-runs every evaluation the
// visitor already did and is meant for development, not production
// collection.
func (c *Collector) debugCheck(lits []term.Ref) error {
	for _, l := range lits {
		v, ok := c.mdl.Eval(l)
		if !ok {
			return fail(InternalError, l)
		}
		if !v.IsTrue() {
			return fail(InternalError, l)
		}
	}
	return nil
}
