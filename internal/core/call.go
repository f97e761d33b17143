package core

import (
	"maps"
	"reflect"
	"runtime"
	"slices"
	"strings"
)

// Call is the uniform argument bag for an intercepted invocation: the ordered
// positional values plus the bound-parameter mapping. Predicates and
// replacements receive a Call instead of a synthesized typed signature, which
// keeps the engine free of per-callable code generation. A snapshotted Call
// also serves as the immutable call-log entry.
type Call struct {
	Positional []any
	Named      map[string]any
}

// Arg returns the positional argument at the given index, or nil if the index
// is out of range.
func (c Call) Arg(index int) any {
	if index < 0 || index >= len(c.Positional) {
		return nil
	}

	return c.Positional[index]
}

// Param returns the bound-parameter value for the given name, or nil if no
// parameter was bound under that name.
func (c Call) Param(name string) any {
	return c.Named[name]
}

// snapshot returns a copy of the call with its own slice and map headers, so
// the log entry stays stable even if the caller mutates its argument storage
// afterward.
func (c Call) snapshot() Call {
	return Call{
		Positional: slices.Clone(c.Positional),
		Named:      maps.Clone(c.Named),
	}
}

// Callable is a replacement or original implementation, invoked with the
// uniform argument bag.
type Callable func(call Call) (any, error)

// Predicate decides whether a case applies to a call. A nil Predicate is the
// always-true predicate and marks its case as a default case.
type Predicate func(call Call) bool

// DispatchFunc routes an intercepted call into the dispatch engine. The
// Installer hands this to the interception point it creates for a name.
type DispatchFunc func(name string, positional []any, named map[string]any) (any, error)

// funcName returns a stable string rendering of the given function, used as
// the implicit name of a predicated case.
func funcName(f any) string {
	value := reflect.ValueOf(f)
	if value.Kind() != reflect.Func {
		return "unknown"
	}

	// docs say to use UnsafePointer explicitly instead of Pointer()
	// https://pkg.go.dev/reflect@go1.21.1#Value.Pointer
	name := runtime.FuncForPC(uintptr(value.UnsafePointer())).Name()
	// this suffix gets appended sometimes. It's unimportant, as far as I can tell.
	name = strings.TrimSuffix(name, "-fm")

	return name
}
