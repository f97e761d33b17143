package pred_test

import (
	"testing"

	. "github.com/onsi/gomega"

	psmock "github.com/jonwagner/PSMock"
	"github.com/jonwagner/PSMock/pred"
)

// call builds an argument bag from named parameters only.
func call(named map[string]any) psmock.Call {
	return psmock.Call{Named: named}
}

// TestParamEquals covers match, mismatch, and absent parameter.
func TestParamEquals(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	p := pred.ParamEquals("source", "disk")

	g.Expect(p(call(map[string]any{"source": "disk"}))).To(BeTrue())
	g.Expect(p(call(map[string]any{"source": "net"}))).To(BeFalse())
	g.Expect(p(call(nil))).To(BeFalse())
}

// TestParamEquals_DeepEquality verifies comparison of composite values.
func TestParamEquals_DeepEquality(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	p := pred.ParamEquals("ids", []int{1, 2})

	g.Expect(p(call(map[string]any{"ids": []int{1, 2}}))).To(BeTrue())
	g.Expect(p(call(map[string]any{"ids": []int{2, 1}}))).To(BeFalse())
}

// TestArgEquals covers positional match, mismatch, and out-of-range index.
func TestArgEquals(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	p := pred.ArgEquals(1, "b")

	g.Expect(p(psmock.Call{Positional: []any{"a", "b"}})).To(BeTrue())
	g.Expect(p(psmock.Call{Positional: []any{"a", "c"}})).To(BeFalse())
	g.Expect(p(psmock.Call{Positional: []any{"a"}})).To(BeFalse())
}

// TestArgCount verifies exact positional-arity matching.
func TestArgCount(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	p := pred.ArgCount(2)

	g.Expect(p(psmock.Call{Positional: []any{1, 2}})).To(BeTrue())
	g.Expect(p(psmock.Call{Positional: []any{1}})).To(BeFalse())
	g.Expect(p(psmock.Call{})).To(BeFalse())
}

// TestParamSatisfies covers typed acceptance, rejection, wrong type, and
// absent parameter.
func TestParamSatisfies(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	p := pred.ParamSatisfies("n", func(n int) bool { return n > 10 })

	g.Expect(p(call(map[string]any{"n": 11}))).To(BeTrue())
	g.Expect(p(call(map[string]any{"n": 10}))).To(BeFalse())
	g.Expect(p(call(map[string]any{"n": "11"}))).To(BeFalse())
	g.Expect(p(call(nil))).To(BeFalse())
}

// TestCombinators covers And, Or, and Not, including their nil-predicate
// conventions.
func TestCombinators(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	isDisk := pred.ParamEquals("source", "disk")
	isBig := pred.ParamSatisfies("size", func(n int) bool { return n > 100 })

	bigDisk := call(map[string]any{"source": "disk", "size": 200})
	smallDisk := call(map[string]any{"source": "disk", "size": 5})
	bigNet := call(map[string]any{"source": "net", "size": 200})

	g.Expect(pred.And(isDisk, isBig)(bigDisk)).To(BeTrue())
	g.Expect(pred.And(isDisk, isBig)(smallDisk)).To(BeFalse())
	g.Expect(pred.And(isDisk, nil)(smallDisk)).To(BeTrue(), "nil means always-true inside And")
	g.Expect(pred.And()(smallDisk)).To(BeTrue())

	g.Expect(pred.Or(isDisk, isBig)(bigNet)).To(BeTrue())
	g.Expect(pred.Or(isDisk, isBig)(call(nil))).To(BeFalse())
	g.Expect(pred.Or()(bigDisk)).To(BeFalse())

	g.Expect(pred.Not(isDisk)(bigNet)).To(BeTrue())
	g.Expect(pred.Not(isDisk)(bigDisk)).To(BeFalse())
	g.Expect(pred.Not(nil)(bigDisk)).To(BeFalse())
}
