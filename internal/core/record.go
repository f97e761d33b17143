package core

import "slices"

// Record is the per-name registration: the ordered case list, the original
// implementation captured when the record was created, the fallback link to an
// enclosing context's record for the same name, and the aggregate call log.
//
// A record with an empty case list is never observable: removing the last
// case removes the whole record.
type Record struct {
	name     string
	cases    []*Case
	calls    []Call
	original Callable
	fallback *Record
}

// Name returns the callable name this record is registered against.
func (r *Record) Name() string {
	return r.name
}

// Cases returns a copy of the record's case list, in dispatch order.
func (r *Record) Cases() []*Case {
	return slices.Clone(r.cases)
}

// Case returns the first case with the given name, if any.
func (r *Record) Case(name string) (*Case, bool) {
	for _, c := range r.cases {
		if c.name == name {
			return c, true
		}
	}

	return nil, false
}

// Calls returns a copy of the calls dispatched through this record, across
// all of its cases, in order.
func (r *Record) Calls() []Call {
	return slices.Clone(r.calls)
}

// Count returns the number of calls dispatched through this record.
func (r *Record) Count() int {
	return len(r.calls)
}

// addCase inserts a case per the ordering invariant: non-default cases are
// prepended, so the most recently added specific predicate is tried first;
// default cases go after every non-default case but before previously-added
// defaults, so the defaults form their own most-recent-first run at the tail.
func (r *Record) addCase(c *Case) {
	if !c.isDefault {
		r.cases = slices.Insert(r.cases, 0, c)

		return
	}

	at := len(r.cases)

	for i, existing := range r.cases {
		if existing.isDefault {
			at = i

			break
		}
	}

	r.cases = slices.Insert(r.cases, at, c)
}

// removeCasesNamed drops every case whose name is in the given set and
// reports whether any case was removed.
func (r *Record) removeCasesNamed(names ...string) bool {
	before := len(r.cases)

	r.cases = slices.DeleteFunc(r.cases, func(c *Case) bool {
		return slices.Contains(names, c.name)
	})

	return len(r.cases) != before
}

// record appends a call-log entry to the aggregate log.
func (r *Record) record(call Call) {
	r.calls = append(r.calls, call)
}
