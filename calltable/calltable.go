// Package calltable provides the default interception layer for psmock: an
// indirection table mapping callable names to implementations. Code under
// test invokes named callables through Table.Call, which is the shared
// invocation path the dispatch engine hooks into. The table doubles as the
// session's Installer (bind/unbind of interception points) and Resolver
// (original-implementation lookup).
package calltable

import (
	"fmt"

	"github.com/jonwagner/PSMock/internal/core"
)

// maxAliasHops bounds alias-chain resolution so a cycle surfaces as an error
// instead of looping.
const maxAliasHops = 64

// Table maps callable names to implementations, aliases to target names, and
// intercepted names to their dispatch routes.
//
// Like the session it serves, a Table is not safe for concurrent use.
type Table struct {
	funcs    map[string]core.Callable
	aliases  map[string]string
	bindings map[string]core.DispatchFunc
}

// New creates an empty table.
func New() *Table {
	return &Table{
		funcs:    make(map[string]core.Callable),
		aliases:  make(map[string]string),
		bindings: make(map[string]core.DispatchFunc),
	}
}

// Register defines (or redefines) the implementation behind a name. A direct
// definition supersedes any alias previously registered under the name.
func (t *Table) Register(name string, fn core.Callable) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", core.ErrInvalidCallable)
	}

	if fn == nil {
		return fmt.Errorf("%w: nil implementation for %q", core.ErrInvalidCallable, name)
	}

	delete(t.aliases, name)
	t.funcs[name] = fn

	return nil
}

// MustRegister is Register for setup code that has no error path of its own.
// It panics on failure.
func (t *Table) MustRegister(name string, fn core.Callable) {
	if err := t.Register(name, fn); err != nil {
		panic(err)
	}
}

// Alias makes name an indirection to target. An alias shadows any
// implementation previously registered under the same name. Aliased names
// cannot be mocked: the interception mechanism is itself a redirection.
func (t *Table) Alias(name, target string) error {
	if name == "" || target == "" {
		return fmt.Errorf("%w: alias and target must be non-empty", core.ErrInvalidCallable)
	}

	delete(t.funcs, name)
	t.aliases[name] = target

	return nil
}

// Call invokes the named callable with the given positional arguments and
// bound-parameter mapping. Aliases are resolved first; a bound name routes
// through its dispatch function, an unbound one runs its registered
// implementation directly.
func (t *Table) Call(name string, positional []any, named map[string]any) (any, error) {
	resolved, err := t.resolve(name)
	if err != nil {
		return nil, err
	}

	if dispatch, ok := t.bindings[resolved]; ok {
		return dispatch(resolved, positional, named)
	}

	if fn, ok := t.funcs[resolved]; ok {
		return fn(core.Call{Positional: positional, Named: named})
	}

	return nil, fmt.Errorf("%w: %q", core.ErrInvalidCallable, name)
}

// Bind implements core.Installer. It rejects names that are currently
// aliases: redirecting a redirection is unsupported. Rebinding an
// already-bound name is allowed and replaces the route.
func (t *Table) Bind(name string, dispatch core.DispatchFunc) error {
	if _, isAlias := t.aliases[name]; isAlias {
		return fmt.Errorf("%w: %q", core.ErrIndirection, name)
	}

	t.bindings[name] = dispatch

	return nil
}

// Unbind implements core.Installer. Unbinding a name that was never bound is
// a no-op.
func (t *Table) Unbind(name string) error {
	delete(t.bindings, name)

	return nil
}

// ResolveOriginal implements core.Resolver. It reports aliases as
// indirections and unknown names as not found; it never routes through
// bindings, so it sees the real implementation even while the name is
// intercepted.
func (t *Table) ResolveOriginal(name string) (core.Callable, error) {
	if _, isAlias := t.aliases[name]; isAlias {
		return nil, fmt.Errorf("%w: %q", core.ErrIndirection, name)
	}

	if fn, ok := t.funcs[name]; ok {
		return fn, nil
	}

	return nil, fmt.Errorf("%w: %q", core.ErrNotFound, name)
}

// resolve follows the alias chain from name to a concrete name.
func (t *Table) resolve(name string) (string, error) {
	current := name

	for range maxAliasHops {
		target, ok := t.aliases[current]
		if !ok {
			return current, nil
		}

		current = target
	}

	return "", fmt.Errorf("%w: alias cycle at %q", core.ErrInvalidCallable, name)
}
