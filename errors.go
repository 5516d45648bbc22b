package jsdeob

import "runtime"

// Error is the wrapper type for errors specific to this library,
// matching the teacher's own `flate.Error`/`bzip2.Error` string-wrapper
// idiom.
type Error string

func (e Error) Error() string { return "jsdeob: " + string(e) }

// ParseError wraps a failure from the C2 parser adapter: the input was
// not well-formed enough for the parser to recover from.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "jsdeob: parse: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// PrintError wraps a failure from the C2 printer. The rewrite passes
// never produce a tree the printer can't handle, so a caller observing
// this has found a bug in a pass, not a bad input.
type PrintError struct {
	Err error
}

func (e *PrintError) Error() string { return "jsdeob: print: " + e.Err.Error() }
func (e *PrintError) Unwrap() error { return e.Err }

// InternalError wraps an invariant violation detected inside a rewrite
// or discovery pass. Passes panic with one of these on detecting
// impossible state; errRecover turns the panic back into a normal
// error at the top of Deobfuscate, the same boundary-recovery idiom
// the teacher uses in flate/bzip2's own errRecover.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return "jsdeob: internal: " + e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// errRecover is called via defer at the top of Deobfuscate. A pass
// that panics with one of this package's error types has that error
// surfaced normally; any other error is wrapped as an InternalError,
// since the only panics a correctly-written pass should ever raise are
// spec.md-named invariant violations. A runtime.Error (index out of
// range, nil dereference) always means a genuine bug and is re-raised.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		return
	case runtime.Error:
		panic(ex)
	case *ParseError, *PrintError, *InternalError:
		*err = ex.(error)
	case error:
		*err = &InternalError{Err: ex}
	default:
		panic(ex)
	}
}
