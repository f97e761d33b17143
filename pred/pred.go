// Package pred provides predicate combinators for psmock cases. Predicates
// examine the uniform argument bag of an intercepted call, so the same
// helpers work against any callable regardless of its real signature:
//
//	session.AddMock("Get-Data", psmock.When(pred.ParamEquals("source", "disk")))
//
// Omit psmock.When entirely to register a default case; a nil predicate is
// the always-true predicate.
package pred

import (
	"reflect"

	psmock "github.com/jonwagner/PSMock"
)

// ParamEquals matches calls whose bound parameter has the given value,
// compared with reflect.DeepEqual. A call without the parameter never
// matches.
func ParamEquals(name string, want any) psmock.Predicate {
	return func(call psmock.Call) bool {
		got, ok := call.Named[name]

		return ok && reflect.DeepEqual(got, want)
	}
}

// ArgEquals matches calls whose positional argument at the given index has
// the given value, compared with reflect.DeepEqual. A call with fewer
// arguments never matches.
func ArgEquals(index int, want any) psmock.Predicate {
	return func(call psmock.Call) bool {
		if index < 0 || index >= len(call.Positional) {
			return false
		}

		return reflect.DeepEqual(call.Positional[index], want)
	}
}

// ArgCount matches calls carrying exactly n positional arguments.
func ArgCount(n int) psmock.Predicate {
	return func(call psmock.Call) bool {
		return len(call.Positional) == n
	}
}

// ParamSatisfies matches calls whose bound parameter is a T accepted by the
// given function. A missing parameter or one of another type never matches.
func ParamSatisfies[T any](name string, accept func(T) bool) psmock.Predicate {
	return func(call psmock.Call) bool {
		got, ok := call.Named[name]
		if !ok {
			return false
		}

		typed, ok := got.(T)

		return ok && accept(typed)
	}
}

// And matches calls accepted by every given predicate. A nil predicate in the
// list is always-true, mirroring its meaning on a case.
func And(predicates ...psmock.Predicate) psmock.Predicate {
	return func(call psmock.Call) bool {
		for _, p := range predicates {
			if p != nil && !p(call) {
				return false
			}
		}

		return true
	}
}

// Or matches calls accepted by at least one of the given predicates.
func Or(predicates ...psmock.Predicate) psmock.Predicate {
	return func(call psmock.Call) bool {
		for _, p := range predicates {
			if p == nil || p(call) {
				return true
			}
		}

		return false
	}
}

// Not inverts a predicate. Not(nil) never matches.
func Not(predicate psmock.Predicate) psmock.Predicate {
	return func(call psmock.Call) bool {
		return predicate != nil && !predicate(call)
	}
}
