package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the plugin lifecycle the error occurred
type Phase string

const (
	PhaseInit Phase = "init" // engine construction
	PhaseLoad Phase = "load" // module loading and instantiation
	PhaseCall Phase = "call" // exported function invocation
)

// Kind categorizes the error
type Kind string

const (
	KindEngineInit       Kind = "engine_init"       // execution engine could not be constructed
	KindCompile          Kind = "compile"           // bytecode invalid or unsupported
	KindStore            Kind = "store"             // execution store creation failed
	KindCapability       Kind = "capability"        // guest capability (WASI) configuration failed
	KindHostBinding      Kind = "host_binding"      // host function definition failed
	KindInstantiation    Kind = "instantiation"     // linking or start-up of the guest failed
	KindUnsupportedShape Kind = "unsupported_shape" // unknown call parameter shape
	KindCallFailed       Kind = "call_failed"       // engine error or guest trap during a call
	KindResultType       Kind = "result_type"       // export returned an unexpected result type
)

// Error is the structured error type used throughout wasm-vm
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for the adapter's error taxonomy

// EngineInit creates an engine construction error
func EngineInit(cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindEngineInit,
		Detail: "create execution engine",
		Cause:  cause,
	}
}

// Compile creates a bytecode compilation error
func Compile(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindCompile,
		Detail: "compile module",
		Cause:  cause,
	}
}

// Store creates an execution store creation error
func Store(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindStore,
		Detail: "create execution store",
		Cause:  cause,
	}
}

// Capability creates a guest capability configuration error
func Capability(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindCapability,
		Detail: "configure guest capabilities",
		Cause:  cause,
	}
}

// HostBinding creates a host function definition error naming the entry
func HostBinding(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindHostBinding,
		Detail: fmt.Sprintf("define host function %q", name),
		Cause:  cause,
	}
}

// Instantiation creates a linking or start-up error with the engine's
// diagnostic attached
func Instantiation(diagnostic string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: diagnostic,
		Cause:  cause,
	}
}

// UnsupportedShape creates an unknown parameter shape error
func UnsupportedShape(shape uint8) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindUnsupportedShape,
		Detail: fmt.Sprintf("unknown param shape: %d", shape),
	}
}

// CallFailed creates a call failure carrying the formatted diagnostic
func CallFailed(name, diagnostic string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindCallFailed,
		Detail: fmt.Sprintf("call %q: %s", name, diagnostic),
		Cause:  cause,
	}
}

// ResultType creates a result type mismatch error
func ResultType(name string, got string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindResultType,
		Detail: fmt.Sprintf("function %q returned unexpected type: %s", name, got),
	}
}
