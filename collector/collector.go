// Package collector implements the model-guided literal collector: given
// a ground Boolean term known to be TRUE in a model, it returns a
// conjunction of literals — each true in the model — that together imply
// the term, without invoking a decision procedure, a SAT search, or
// quantifier instantiation. It is ordinary recursion over a term.Table
// plus model.Model and termmgr.Manager collaborators; failures unwind
// through normal Go error returns rather than a stashed jump buffer.
package collector

import (
	"github.com/groundwire/implicant/model"
	"github.com/groundwire/implicant/term"
	"github.com/groundwire/implicant/termmgr"
)

// Collector bundles the read-only term table, the model it collects
// implicants against, the rebuild manager, and the mutable per-run state
// (cache, literal set, scratch arena). One Collector can serve many
// Process/GetImplicants calls against the same model; Reset clears the
// per-run state between independent collections.
type Collector struct {
	tbl term.Table
	mdl model.Model
	mgr termmgr.Manager

	cache *visitCache
	lits  *litSet
	scr   *scratch
}

// New builds a Collector over the given table, model, and manager. The
// collector only reads the table and the model; it calls the manager's
// constructors to rebuild terms, and those may intern new terms.
func New(tbl term.Table, mdl model.Model, mgr termmgr.Manager) *Collector {
	return &Collector{
		tbl:   tbl,
		mdl:   mdl,
		mgr:   mgr,
		cache: newVisitCache(),
		lits:  newLitSet(),
		scr:   &scratch{},
	}
}

// Reset discards the visit cache, the collected literals, and the
// scratch arena, so the next Process/GetImplicants call starts from a
// clean slate against the same collaborators.
func (c *Collector) Reset() {
	c.cache.reset()
	c.lits.reset()
	c.scr.reset()
}

// Process simplifies t against the model, registering any Boolean atoms
// it passes through along the way into the collector's literal set. The
// caller is responsible for checking that the returned term is TRUE when
// t is expected to be an assertion; Process itself does not enforce
// that.
//
// On error, the scratch arena is reset so the next call starts clean,
// while the cache and literal set are left exactly as they were at the
// point of failure: call Reset before reusing the Collector for an
// unrelated collection.
func (c *Collector) Process(t term.Ref) (term.Ref, error) {
	v, err := c.visit(t)
	if err != nil {
		c.scr.reset()
		return term.NullTerm, err
	}
	return v, nil
}

// GetImplicants processes every assertion in order, appending newly
// collected literals to *out. Each assertion must simplify to TRUE —
// callers are expected to have already checked the whole conjunction is
// satisfied by the model; a false (or otherwise inconsistent) assertion
// is reported as InternalError rather than silently ignored.
//
// The literal set is frozen exactly once, after the last assertion, so
// the returned literals reflect every assertion's contribution and no
// further literals can be registered against this Collector afterward
// (call Reset to start a new collection).
func (c *Collector) GetImplicants(assertions []term.Ref, out *[]term.Ref) error {
	for _, a := range assertions {
		v, err := c.Process(a)
		if err != nil {
			return err
		}
		if v != term.TrueTerm {
			return fail(InternalError, a)
		}
	}
	frozen := c.lits.freeze()
	if err := c.debugCheck(frozen); err != nil {
		return err
	}
	*out = append(*out, frozen...)
	return nil
}
