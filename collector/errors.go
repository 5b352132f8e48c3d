package collector

import (
	"golang.org/x/xerrors"

	"github.com/groundwire/implicant/term"
)

// Code is one of the five stable, negative-by-convention error classes
// a collection can fail with. Go has no native negative-error-code
// convention, so Code is surfaced as part of a typed *Error instead;
// callers that need the historical integer values can use Code.Errno.
type Code int

const (
	// EvalFailed: the model could not interpret some subterm.
	EvalFailed Code = iota + 1
	// FreeVar: a free (universal) variable appeared in a term the
	// collector was told is ground.
	FreeVar
	// Quantifier: a Forall node appeared.
	Quantifier
	// Lambda: a Lambda node appeared.
	Lambda
	// InternalError: an unreachable kind was reached, or a rebuilt
	// Boolean term evaluated inconsistently with the pre-rebuild one.
	InternalError
)

func (c Code) String() string {
	switch c {
	case EvalFailed:
		return "EvalFailed"
	case FreeVar:
		return "FreeVar"
	case Quantifier:
		return "Quantifier"
	case Lambda:
		return "Lambda"
	case InternalError:
		return "InternalError"
	default:
		return "UnknownCode"
	}
}

// Errno is the stable negative integer form of Code, for callers that
// need a plain numeric error convention instead of the Code type.
func (c Code) Errno() int {
	switch c {
	case EvalFailed:
		return -1
	case FreeVar:
		return -2
	case Quantifier:
		return -3
	case Lambda:
		return -4
	case InternalError:
		return -5
	default:
		return -100
	}
}

// Error is returned by Process/GetImplicants on any non-local exit. The
// failure unwinds through ordinary Go error returns; Process resets the
// scratch arena, while the cache and literal set accumulated so far are
// deliberately left untouched — see Collector.Reset.
type Error struct {
	Code Code
	Term term.Ref
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return xerrors.Errorf("lit_collect: %s at term %d: %w", e.Code, e.Term, e.Err).Error()
	}
	return xerrors.Errorf("lit_collect: %s at term %d", e.Code, e.Term).Error()
}

func (e *Error) Unwrap() error { return e.Err }

func fail(code Code, t term.Ref) error {
	return &Error{Code: code, Term: t}
}
