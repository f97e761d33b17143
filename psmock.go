// Package psmock lets test code replace the behavior of a named callable at
// runtime, selectively by argument predicate, with automatic cleanup across
// nested scopes and per-replacement call tracking.
//
// This is the public API entry point. The resolution and dispatch engine
// lives in internal/core; the default interception layer is calltable.Table.
package psmock

import (
	"github.com/jonwagner/PSMock/calltable"
	"github.com/jonwagner/PSMock/internal/core"
)

// Call is the uniform argument bag handed to predicates and replacements, and
// the shape of call-log entries.
type Call = core.Call

// Callable is a replacement or original implementation.
type Callable = core.Callable

// Case is one conditional replacement registered against a callable name.
type Case = core.Case

// CaseOption configures a case being registered with AddMock.
type CaseOption = core.CaseOption

// DispatchFunc routes an intercepted call into the dispatch engine.
type DispatchFunc = core.DispatchFunc

// Installer owns the interception point for a callable name.
type Installer = core.Installer

// Predicate decides whether a case applies to a call. A nil Predicate is the
// always-true predicate and marks its case as a default case.
type Predicate = core.Predicate

// Record is the per-name aggregate of cases, original-implementation
// reference, fallback link, and call log, scoped to one context.
type Record = core.Record

// Resolver looks up the real, pre-mocking implementation of a name.
type Resolver = core.Resolver

// Session owns the context stack and the public mocking operations.
type Session = core.Session

// DefaultCaseName is the implicit name of a case registered with the
// always-true predicate.
const DefaultCaseName = core.DefaultCaseName

// Error kinds surfaced by the public operations. Distinguish them with
// errors.Is.
var (
	ErrNoMockRegistered  = core.ErrNoMockRegistered
	ErrUnsupportedTarget = core.ErrUnsupportedTarget
	ErrInvalidCallable   = core.ErrInvalidCallable
	ErrIndirection       = core.ErrIndirection
	ErrNotFound          = core.ErrNotFound
)

// NewSession creates a session on top of the given interception collaborators.
func NewSession(installer Installer, resolver Resolver) *Session {
	return core.NewSession(installer, resolver)
}

// NewTableSession creates a session wired to a fresh calltable.Table, which
// serves as both its installer and its resolver. Register real
// implementations and aliases on the table; route the code under test's calls
// through Table.Call.
func NewTableSession() (*Session, *calltable.Table) {
	table := calltable.New()

	return core.NewSession(table, table), table
}

// With sets the replacement body for the case being registered.
func With(replacement Callable) CaseOption {
	return core.With(replacement)
}

// When sets the predicate for the case being registered.
func When(predicate Predicate) CaseOption {
	return core.When(predicate)
}

// Named sets an explicit name for the case being registered.
func Named(name string) CaseOption {
	return core.Named(name)
}
