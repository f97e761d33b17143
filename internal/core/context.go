package core

// Context is one scope of registrations. Records registered while a context
// is current are torn down in bulk when it exits. The parent link is fixed at
// creation and never mutated.
type Context struct {
	mocks  map[string]*Record
	parent *Context
}

// newContext creates an empty context enclosed by the given parent. The root
// context has a nil parent.
func newContext(parent *Context) *Context {
	return &Context{
		mocks:  make(map[string]*Record),
		parent: parent,
	}
}

// lookup walks from this context outward through parent links and returns the
// first record found for the name, or nil. Innermost wins. Fallback links are
// never followed here: fallback is a dispatch-time concept, not a visibility
// concept.
func (c *Context) lookup(name string) *Record {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if rec, ok := ctx.mocks[name]; ok {
			return rec
		}
	}

	return nil
}
