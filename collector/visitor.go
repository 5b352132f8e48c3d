package collector

import (
	"github.com/groundwire/implicant/term"
)

// visit returns the simplified form of t, a term that is TRUE in the
// collector's model whenever t is, and is built entirely from literals
// already registered in lits. It strips and reapplies polarity around a
// single recursion on the unsigned form, so each shared subterm is
// visited at most once regardless of how many signed occurrences of it
// appear in the formula.
func (c *Collector) visit(t term.Ref) (term.Ref, error) {
	u := t.Unsigned()
	if cached, ok := c.cache.find(u); ok {
		return applyPolarity(cached, t.Polarity()), nil
	}
	result, err := c.visitUnsigned(u)
	if err != nil {
		return term.NullTerm, err
	}
	c.cache.store(u, result)
	return applyPolarity(result, t.Polarity()), nil
}

// applyPolarity composes the polarity of the original occurrence with
// the already-computed result for its unsigned form. The result is
// always either TRUE/FALSE (for a Boolean atom, where negating means
// flipping between the two) or an unsigned non-Boolean term (where
// polarity is always 0 and this is a no-op); plain bit-flip is the
// correct composition in both cases, unlike Ref.WithPolarity, which
// would discard TRUE and FALSE's shared index-0 sign instead of XORing
// it.
func applyPolarity(result term.Ref, pol int) term.Ref {
	if pol&1 != 0 {
		return result.Negate()
	}
	return result
}

// visitUnsigned dispatches on the kind of the always-positive term u and
// applies that kind's rebuild/atom-registration rule. u is never itself
// signed: callers only ever reach here through visit, which has already
// stripped polarity and consulted the cache.
func (c *Collector) visitUnsigned(u term.Ref) (term.Ref, error) {
	switch k := c.tbl.Kind(u); k {
	case term.BoolConst, term.ArithConst, term.BvConst:
		return u, nil

	case term.Uninterpreted:
		if c.tbl.IsBoolean(u) {
			return c.registerAtom(u)
		}
		return u, nil

	case term.Variable:
		return term.NullTerm, fail(FreeVar, u)

	case term.ArithEq0:
		return c.visitArithAtom(u, c.mgr.ArithEq0)

	case term.ArithGe0:
		return c.visitArithAtom(u, c.mgr.ArithGe0)

	case term.Ite:
		return c.visitIte(u)

	case term.App:
		isBool := c.tbl.IsBoolean(u)
		return c.visitNary(u, func(a []term.Ref) term.Ref { return c.mgr.App(a, isBool) })

	case term.Update:
		isBool := c.tbl.IsBoolean(u)
		return c.visitNary(u, func(a []term.Ref) term.Ref { return c.mgr.Update(a, isBool) })

	case term.Tuple:
		return c.visitNary(u, func(a []term.Ref) term.Ref { return c.mgr.Tuple(a) })

	case term.Distinct:
		return c.visitNary(u, func(a []term.Ref) term.Ref { return c.mgr.Distinct(a) })

	case term.BvArray:
		return c.visitNary(u, func(a []term.Ref) term.Ref { return c.mgr.BvArray(a) })

	case term.Eq:
		return c.visitBinary(u, c.mgr.Eq)

	case term.ArithBinEq:
		return c.visitBinary(u, c.mgr.ArithBinEq)

	case term.BvEq:
		return c.visitBinary(u, c.mgr.BvEq)

	case term.BvGe:
		return c.visitBinary(u, c.mgr.BvGe)

	case term.BvSGe:
		return c.visitBinary(u, c.mgr.BvSGe)

	case term.BvDiv:
		return c.visitBinary(u, c.mgr.BvDiv)

	case term.BvRem:
		return c.visitBinary(u, c.mgr.BvRem)

	case term.BvSDiv:
		return c.visitBinary(u, c.mgr.BvSDiv)

	case term.BvSRem:
		return c.visitBinary(u, c.mgr.BvSRem)

	case term.BvSMod:
		return c.visitBinary(u, c.mgr.BvSMod)

	case term.BvShl:
		return c.visitBinary(u, c.mgr.BvShl)

	case term.BvLShr:
		return c.visitBinary(u, c.mgr.BvLShr)

	case term.BvAShr:
		return c.visitBinary(u, c.mgr.BvAShr)

	case term.Select:
		isBool := c.tbl.IsBoolean(u)
		return c.visitIndexed(u, func(i uint32, arg term.Ref) term.Ref { return c.mgr.Select(i, arg, isBool) })

	case term.Bit:
		return c.visitIndexed(u, c.mgr.Bit)

	case term.PowerProduct:
		return c.visitPowerProduct(u)

	case term.ArithPoly, term.BvPoly64, term.BvPoly:
		return c.visitPoly(u)

	case term.Or:
		return c.visitOr(u)

	case term.Xor:
		return c.visitXor(u)

	case term.Forall:
		return term.NullTerm, fail(Quantifier, u)

	case term.Lambda:
		return term.NullTerm, fail(Lambda, u)

	default:
		return term.NullTerm, fail(InternalError, u)
	}
}

// registerAtom evaluates the Boolean atom t in the model and records the
// signed literal that matches t's truth value: t itself if true,
// negate(t) if false. A rebuilt atom that already canonicalized to
// TRUE/FALSE is handled by the same path, since evaluating TRUE/FALSE
// against any model trivially agrees and litSet.add already drops TRUE.
func (c *Collector) registerAtom(t term.Ref) (term.Ref, error) {
	v, ok := c.mdl.Eval(t)
	if !ok {
		return term.NullTerm, fail(EvalFailed, t)
	}
	if v.IsTrue() {
		c.lits.add(t)
		return term.TrueTerm, nil
	}
	c.lits.add(t.Negate())
	return term.FalseTerm, nil
}

// visitArithAtom implements the shared ArithEq0/ArithGe0 rule: recurse
// into the single argument, rebuild only if it changed, then register
// the (possibly rebuilt) atom.
func (c *Collector) visitArithAtom(u term.Ref, rebuild func(term.Ref) term.Ref) (term.Ref, error) {
	arg := c.tbl.Unary(u).Arg
	v, err := c.visit(arg)
	if err != nil {
		return term.NullTerm, err
	}
	t := u
	if v != arg {
		t = rebuild(v)
	}
	return c.registerAtom(t)
}

// visitIte recurses into the condition only, then into whichever of
// then/else the model selects — the one case in the table that never
// visits both children.
func (c *Collector) visitIte(u term.Ref) (term.Ref, error) {
	args := c.tbl.Ite(u)
	cv, err := c.visit(args.Cond)
	if err != nil {
		return term.NullTerm, err
	}
	switch cv {
	case term.TrueTerm:
		return c.visit(args.Then)
	case term.FalseTerm:
		return c.visit(args.Else)
	default:
		return term.NullTerm, fail(InternalError, u)
	}
}

// visitNary implements the shared n-ary rule: recurse into every child,
// rebuild only if at least one child changed, and if u is Boolean
// register the result as an atom instead of returning it bare.
func (c *Collector) visitNary(u term.Ref, rebuild func([]term.Ref) term.Ref) (term.Ref, error) {
	isBool := c.tbl.IsBoolean(u)
	args := c.tbl.Children(u).Args
	out, changed, err := c.visitChildren(args)
	if err != nil {
		return term.NullTerm, err
	}
	t := u
	if changed {
		t = rebuild(out)
	}
	c.scr.release(out)
	if isBool {
		return c.registerAtom(t)
	}
	return t, nil
}

// visitBinary is visitNary specialized to the fixed-arity-2 kinds whose
// Manager constructor takes (a, b) rather than a slice.
func (c *Collector) visitBinary(u term.Ref, rebuild func(a, b term.Ref) term.Ref) (term.Ref, error) {
	return c.visitNary(u, func(a []term.Ref) term.Ref { return rebuild(a[0], a[1]) })
}

// visitIndexed implements Select/Bit: recurse into the single argument,
// rebuild only if it changed, and register as an atom when Boolean
// (always for Bit; for Select, when the table marks the term Boolean).
func (c *Collector) visitIndexed(u term.Ref, rebuild func(i uint32, arg term.Ref) term.Ref) (term.Ref, error) {
	isBool := c.tbl.IsBoolean(u)
	idx := c.tbl.Indexed(u)
	v, err := c.visit(idx.Arg)
	if err != nil {
		return term.NullTerm, err
	}
	t := u
	if v != idx.Arg {
		t = rebuild(idx.Index, v)
	}
	if isBool {
		return c.registerAtom(t)
	}
	return t, nil
}

// visitPowerProduct recurses into every variable of the product and
// rebuilds only if one changed. A power product is always arithmetic,
// never Boolean, so the result is returned as-is.
func (c *Collector) visitPowerProduct(u term.Ref) (term.Ref, error) {
	pp := c.tbl.PowerProduct(u)
	vars, changed, err := c.visitChildren(pp.Vars)
	if err != nil {
		return term.NullTerm, err
	}
	t := u
	if changed {
		t = c.mgr.PowerProduct(vars, pp.Exp)
	}
	c.scr.release(vars)
	return t, nil
}

// visitPoly recurses into each non-constant monomial's variable, leaving
// the constant monomial (if present) untouched, and rebuilds the
// polynomial only if some monomial's variable changed.
func (c *Collector) visitPoly(u term.Ref) (term.Ref, error) {
	poly := c.tbl.Poly(u)
	monos := make([]term.Monomial, len(poly.Monomials))
	changed := false
	for i, mo := range poly.Monomials {
		if mo.IsConst() {
			monos[i] = mo
			continue
		}
		v, err := c.visit(mo.Var)
		if err != nil {
			return term.NullTerm, err
		}
		monos[i] = term.Monomial{Coeff: mo.Coeff, Var: v}
		if v != mo.Var {
			changed = true
		}
	}
	if !changed {
		return u, nil
	}
	return c.mgr.Poly(poly.Width, monos), nil
}

// visitOr evaluates the disjunction in the model first. If it is true,
// only the first disjunct the model also makes true is recursed into
// (deterministic, left-to-right); every other disjunct is left
// unvisited, so only one side of a wide Or ever contributes literals. If
// the disjunction is false, every disjunct must independently simplify
// to FALSE, so all of them are visited and their negations recorded.
func (c *Collector) visitOr(u term.Ref) (term.Ref, error) {
	args := c.tbl.Children(u).Args
	val, ok := c.mdl.Eval(u)
	if !ok {
		return term.NullTerm, fail(EvalFailed, u)
	}
	if !val.IsTrue() {
		for _, a := range args {
			v, err := c.visit(a)
			if err != nil {
				return term.NullTerm, err
			}
			if v != term.FalseTerm {
				return term.NullTerm, fail(InternalError, a)
			}
		}
		return term.FalseTerm, nil
	}
	for _, a := range args {
		av, ok := c.mdl.Eval(a)
		if !ok {
			return term.NullTerm, fail(EvalFailed, a)
		}
		if !av.IsTrue() {
			continue
		}
		v, err := c.visit(a)
		if err != nil {
			return term.NullTerm, err
		}
		if v != term.TrueTerm {
			return term.NullTerm, fail(InternalError, a)
		}
		return term.TrueTerm, nil
	}
	// The model satisfies u but no disjunct evaluates to true under the
	// same model: the model is internally inconsistent with respect to
	// this term, which the visitor cannot repair.
	return term.NullTerm, fail(InternalError, u)
}

// visitXor never short-circuits: every operand's truth value depends on
// all the others, so all are recursed into and their Boolean results
// folded with XOR.
func (c *Collector) visitXor(u term.Ref) (term.Ref, error) {
	args := c.tbl.Children(u).Args
	acc := false
	for _, a := range args {
		v, err := c.visit(a)
		if err != nil {
			return term.NullTerm, err
		}
		b, ok := term.BoolValue(v)
		if !ok {
			return term.NullTerm, fail(InternalError, a)
		}
		acc = acc != b
	}
	return term.BoolTerm(acc), nil
}

// visitChildren recurses into each element of args in order, borrowing a
// scratch slice for the simplified results. The caller is responsible
// for releasing the returned slice once it has used it (e.g. passed it
// to a Manager rebuild call, which always copies).
func (c *Collector) visitChildren(args []term.Ref) ([]term.Ref, bool, error) {
	out := c.scr.alloc(len(args))
	changed := false
	for i, a := range args {
		v, err := c.visit(a)
		if err != nil {
			c.scr.release(out)
			return nil, false, err
		}
		out[i] = v
		if v != a {
			changed = true
		}
	}
	return out, changed, nil
}
