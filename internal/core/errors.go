package core

import "errors"

// Sentinel errors for the public operations. Callers distinguish failure
// kinds with errors.Is; the wrapped message always carries the failing name
// and, where applicable, the case name.
var (
	// ErrNoMockRegistered reports a lookup or removal target absent from the
	// current scope. Inside the dispatch engine it indicates a lifecycle bug:
	// the installer routed a call for a name with no record anywhere.
	ErrNoMockRegistered = errors.New("no mock registered")

	// ErrUnsupportedTarget reports an attempt to register against an
	// indirection. The interception mechanism is itself a name redirection,
	// and redirecting a redirection is unsupported.
	ErrUnsupportedTarget = errors.New("unsupported mock target")

	// ErrInvalidCallable reports a name that does not resolve to anything
	// callable or known, where one is required.
	ErrInvalidCallable = errors.New("invalid callable")
)

// Sentinel errors for Resolver results.
var (
	// ErrIndirection reports that a name redirects to another name rather
	// than to a concrete implementation.
	ErrIndirection = errors.New("name is an indirection")

	// ErrNotFound reports that a name has no current implementation. Mocking
	// such a name is allowed: the callable exists only because mocking
	// created it.
	ErrNotFound = errors.New("name not found")
)
