package psmock

import (
	"sync"

	"github.com/jonwagner/PSMock/calltable"
)

// TestReporter is the minimal interface psmock needs from test frameworks.
// *testing.T and *testing.B satisfy it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// GetOrCreateSession returns the session and call table for the given test,
// creating them if needed. Multiple calls with the same TestReporter return
// the same pair, so setup helpers and assertions in one test share state.
//
// If the TestReporter supports Cleanup (like *testing.T), the session is shut
// down and removed from the registry when the test completes, so mocks never
// leak between tests.
func GetOrCreateSession(t TestReporter) (*Session, *calltable.Table) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if entry, ok := registry[t]; ok {
		return entry.session, entry.table
	}

	session, table := NewTableSession()
	registry[t] = &registryEntry{session: session, table: table}

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()

			if err := session.Shutdown(); err != nil {
				t.Fatalf("psmock: session teardown failed: %v", err)
			}
		})
	}

	return session, table
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*registryEntry)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

type registryEntry struct {
	session *Session
	table   *calltable.Table
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
