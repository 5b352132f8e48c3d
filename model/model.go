// Package model defines the model-evaluator collaborator: given a term,
// return a value handle; given a value, test Boolean truth. It is the
// abstract interface the collector depends on, plus one concrete
// in-memory implementation (mem.go) used to exercise and test the
// collector end-to-end.
package model

import (
	"math/big"

	"github.com/groundwire/implicant/term"
)

// Value is an opaque value handle returned by Eval. The zero Value is
// never returned for a successful evaluation.
type Value struct {
	boolVal  bool
	isBool   bool
	intVal   *big.Int
	bvVal    *big.Int
	bvWidth  uint32
}

// BoolValue constructs a Boolean value handle.
func BoolValue(b bool) Value { return Value{boolVal: b, isBool: true} }

// IntValue constructs an (unbounded) arithmetic value handle.
func IntValue(v *big.Int) Value { return Value{intVal: v} }

// BvValue constructs a bitvector value handle of the given width.
func BvValue(width uint32, v *big.Int) Value { return Value{bvVal: v, bvWidth: width} }

// IsTrue reports whether v is the Boolean value true. Calling it on a
// non-Boolean value is a caller bug, so it simply returns false rather
// than panicking.
func (v Value) IsTrue() bool { return v.isBool && v.boolVal }

// Int returns the arithmetic payload of v, if any.
func (v Value) Int() (*big.Int, bool) {
	if v.intVal != nil {
		return v.intVal, true
	}
	return nil, false
}

// Bv returns the bitvector payload of v, if any.
func (v Value) Bv() (*big.Int, uint32, bool) {
	if v.bvVal != nil {
		return v.bvVal, v.bvWidth, true
	}
	return nil, 0, false
}

// Model is the evaluator collaborator. Eval returns (Value{}, false)
// when the model has no value for t; that is not an error by itself,
// only a precondition the caller (the collector) turns into
// EvalFailed.
type Model interface {
	Eval(t term.Ref) (Value, bool)
}
