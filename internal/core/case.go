package core

import "slices"

// DefaultCaseName is the implicit name of a case registered with the
// always-true predicate.
const DefaultCaseName = "default"

// Case is one conditional replacement for a callable: a predicate deciding
// whether it applies, the replacement body to run when it does, and a log of
// the calls it handled.
type Case struct {
	name        string
	predicate   Predicate
	replacement Callable
	isDefault   bool
	calls       []Call
}

// caseConfig collects the optional pieces of a case registration.
type caseConfig struct {
	name        string
	predicate   Predicate
	replacement Callable
}

// CaseOption configures a case being registered with AddMock.
type CaseOption func(*caseConfig)

// With sets the replacement body for the case. Without it the case is a no-op
// that returns nothing.
func With(replacement Callable) CaseOption {
	return func(cfg *caseConfig) {
		cfg.replacement = replacement
	}
}

// When sets the predicate for the case. Without it (or with a nil predicate)
// the case is a default case that matches every call.
func When(predicate Predicate) CaseOption {
	return func(cfg *caseConfig) {
		cfg.predicate = predicate
	}
}

// Named sets an explicit name for the case. Names are labels, not keys:
// several cases may share one, and removal by name removes all of them.
func Named(name string) CaseOption {
	return func(cfg *caseConfig) {
		cfg.name = name
	}
}

// newCase builds a case from the given options. The implicit name is
// "default" for default cases and a rendering of the predicate function
// otherwise.
func newCase(opts ...CaseOption) *Case {
	var cfg caseConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	isDefault := cfg.predicate == nil

	name := cfg.name
	if name == "" {
		if isDefault {
			name = DefaultCaseName
		} else {
			name = funcName(cfg.predicate)
		}
	}

	return &Case{
		name:        name,
		predicate:   cfg.predicate,
		replacement: cfg.replacement,
		isDefault:   isDefault,
	}
}

// Name returns the case's name.
func (c *Case) Name() string {
	return c.name
}

// IsDefault reports whether the case carries the always-true predicate.
func (c *Case) IsDefault() bool {
	return c.isDefault
}

// Calls returns a copy of the calls this case has handled, in order.
func (c *Case) Calls() []Call {
	return slices.Clone(c.calls)
}

// Count returns the number of calls this case has handled.
func (c *Case) Count() int {
	return len(c.calls)
}

// matches reports whether the case applies to the given call.
func (c *Case) matches(call Call) bool {
	if c.predicate == nil {
		return true
	}

	return c.predicate(call)
}

// invoke runs the replacement body. A nil replacement is a no-op returning
// nothing.
func (c *Case) invoke(call Call) (any, error) {
	if c.replacement == nil {
		return nil, nil
	}

	return c.replacement(call)
}

// record appends a call-log entry.
func (c *Case) record(call Call) {
	c.calls = append(c.calls, call)
}
