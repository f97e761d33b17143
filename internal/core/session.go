package core

import (
	"errors"
	"fmt"
)

// Session owns the context stack and implements the public operations:
// registration, lookup, dispatch, removal, and scope management. The current
// context pointer is the session's only mutable cell outside the records
// themselves, reassigned only by EnterContext and ExitContext.
//
// A Session is not safe for concurrent use. The intended execution model is a
// single goroutine running test code and the code under test sequentially; no
// operation suspends, and all of them complete within the calling frame.
type Session struct {
	installer Installer
	resolver  Resolver
	current   *Context
}

// NewSession creates a session with a fresh root context. The installer and
// resolver must be non-nil; calltable.Table implements both.
func NewSession(installer Installer, resolver Resolver) *Session {
	return &Session{
		installer: installer,
		resolver:  resolver,
		current:   newContext(nil),
	}
}

// AddMock registers a new case against the named callable in the current
// context. Registration is idempotent-additive: it never replaces an existing
// case. The first registration for a name in a context creates the record,
// captures the original implementation (exactly once; it is not re-resolved
// later), captures the fallback link to any enclosing context's record for
// the same name, and installs the interception point when no enclosing record
// installed it already.
//
// AddMock fails with ErrUnsupportedTarget when the name currently resolves to
// an indirection rather than a concrete implementation.
func (s *Session) AddMock(name string, opts ...CaseOption) (*Record, *Case, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: empty callable name", ErrInvalidCallable)
	}

	rec, ok := s.current.mocks[name]
	if !ok {
		created, err := s.createRecord(name)
		if err != nil {
			return nil, nil, err
		}

		rec = created
		s.current.mocks[name] = rec
	}

	c := newCase(opts...)
	rec.addCase(c)

	return rec, c, nil
}

// createRecord builds a record for a first registration in the current
// context: original capture, fallback capture, and the one-time bind.
func (s *Session) createRecord(name string) (*Record, error) {
	original, err := s.resolver.ResolveOriginal(name)

	switch {
	case errors.Is(err, ErrIndirection):
		return nil, fmt.Errorf("%w: %q resolves to an indirection", ErrUnsupportedTarget, name)
	case errors.Is(err, ErrNotFound):
		original = nil
	case err != nil:
		return nil, fmt.Errorf("resolving original for %q: %w", name, err)
	}

	// The record is not in the current context yet, so this walk only sees
	// enclosing contexts.
	fallback := s.current.lookup(name)

	if fallback == nil {
		if err := s.installer.Bind(name, s.Invoke); err != nil {
			if errors.Is(err, ErrIndirection) {
				return nil, fmt.Errorf("%w: cannot bind %q: %w", ErrUnsupportedTarget, name, err)
			}

			return nil, fmt.Errorf("binding %q: %w", name, err)
		}
	}

	return &Record{name: name, original: original, fallback: fallback}, nil
}

// GetMock returns the innermost record registered for the name, walking the
// context stack outward through parent links. Fallback links are never
// followed.
func (s *Session) GetMock(name string) (*Record, bool) {
	rec := s.current.lookup(name)

	return rec, rec != nil
}

// GetCase returns the first case with the given name on the innermost record
// for the callable name. The search does not continue into other records.
func (s *Session) GetCase(name, caseName string) (*Case, bool) {
	rec := s.current.lookup(name)
	if rec == nil {
		return nil, false
	}

	return rec.Case(caseName)
}

// Invoke is the dispatch engine, triggered per intercepted call. It selects
// the first case of the innermost record whose predicate accepts the call,
// logs the call on that case and on the record, and runs the replacement.
// When no case matches: a record with an original runs the original and stops
// there — the fallback chain is never consulted once a real implementation
// exists. A record without one defers to its fallback record, and when the
// chain runs out the call silently returns nothing.
func (s *Session) Invoke(name string, positional []any, named map[string]any) (any, error) {
	rec := s.current.lookup(name)
	if rec == nil {
		return nil, fmt.Errorf("%w: %q reached dispatch with no record; interception outlived its registration", ErrNoMockRegistered, name)
	}

	call := Call{Positional: positional, Named: named}

	for rec != nil {
		for _, c := range rec.cases {
			if !c.matches(call) {
				continue
			}

			logged := call.snapshot()
			c.record(logged)
			rec.record(logged)

			return c.invoke(call)
		}

		if rec.original != nil {
			return rec.original(call)
		}

		rec = rec.fallback
	}

	return nil, nil
}

// RemoveMock removes the record for name from the current context, or, when
// case names are given, only the cases carrying those names. The record
// survives a filtered removal as long as any case remains. Fully removing a
// record uninstalls the interception point when no enclosing registration
// still needs it (that is, when the record's fallback is unset).
//
// RemoveMock fails with ErrNoMockRegistered when the current context has no
// record for the name, even if an enclosing context does.
func (s *Session) RemoveMock(name string, caseNames ...string) error {
	rec, ok := s.current.mocks[name]
	if !ok {
		return fmt.Errorf("%w: %q in current context", ErrNoMockRegistered, name)
	}

	if len(caseNames) > 0 {
		rec.removeCasesNamed(caseNames...)

		if len(rec.cases) > 0 {
			return nil
		}
	}

	delete(s.current.mocks, name)

	if rec.fallback == nil {
		if err := s.installer.Unbind(name); err != nil {
			return fmt.Errorf("unbinding %q: %w", name, err)
		}
	}

	return nil
}

// ClearMocks removes every record in the current context. Each removal is
// independent: a failure unbinding one name does not stop the others. The
// returned error joins any failures.
func (s *Session) ClearMocks() error {
	var errs []error

	for name := range s.current.mocks {
		if err := s.RemoveMock(name); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// EnterContext pushes a new empty context; registrations land in it until the
// matching ExitContext. Nesting is unbounded.
func (s *Session) EnterContext() {
	s.current = newContext(s.current)
}

// ExitContext tears down every record of the current context, then pops it.
// Exiting the root context tears its records down without popping.
func (s *Session) ExitContext() error {
	err := s.ClearMocks()

	if s.current.parent != nil {
		s.current = s.current.parent
	}

	return err
}

// RunInContext runs work inside a fresh context and exits that context
// unconditionally afterward: on normal completion, on error, and on panic.
// It returns work's error, or the exit error if work succeeded.
func (s *Session) RunInContext(work func() error) (err error) {
	s.EnterContext()

	defer func() {
		exitErr := s.ExitContext()
		if err == nil {
			err = exitErr
		}
	}()

	return work()
}

// Shutdown exits every nested context in LIFO order and clears the root. The
// root context itself survives, so the session remains usable.
func (s *Session) Shutdown() error {
	var errs []error

	for s.current.parent != nil {
		if err := s.ExitContext(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.ClearMocks(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
