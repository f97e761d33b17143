package core

// Installer owns the interception point for a callable name in the host
// environment: it rebinds the name so future calls route into the dispatch
// engine, and removes that plumbing again on unbind.
type Installer interface {
	// Bind makes future calls to name route through dispatch. Binding is
	// idempotent per name. Binding a name that is currently an indirection to
	// something else must fail with an error wrapping ErrIndirection.
	Bind(name string, dispatch DispatchFunc) error

	// Unbind removes the interception point for name. Unbinding a name that
	// was never bound is a no-op.
	Unbind(name string) error
}

// Resolver looks up the real, pre-mocking implementation of a name, outside
// the interception layer.
type Resolver interface {
	// ResolveOriginal returns the concrete implementation currently behind
	// name. It returns an error wrapping ErrIndirection when the name
	// redirects to another name, and an error wrapping ErrNotFound when the
	// name has no implementation at all.
	ResolveOriginal(name string) (Callable, error)
}
