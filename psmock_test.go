package psmock_test

import (
	"testing"

	. "github.com/onsi/gomega"

	psmock "github.com/jonwagner/PSMock"
	"github.com/jonwagner/PSMock/pred"
)

// getData simulates the real implementation of the callable under test.
func getData(psmock.Call) (any, error) {
	return "orig", nil
}

// returning is a replacement that ignores its arguments and returns value.
func returning(value any) psmock.Callable {
	return func(psmock.Call) (any, error) {
		return value, nil
	}
}

// TestScenario_SpecificThenDefault walks the canonical flow: a predicated
// case answers matching calls, a default answers the rest, and removing the
// predicated case hands its calls to the default.
func TestScenario_SpecificThenDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session, table := psmock.NewTableSession()
	table.MustRegister("Get-Data", getData)

	_, _, err := session.AddMock("Get-Data",
		psmock.Named("x-case"),
		psmock.When(pred.ParamEquals("p", "x")),
		psmock.With(returning("A")))
	g.Expect(err).NotTo(HaveOccurred())

	_, _, err = session.AddMock("Get-Data", psmock.With(returning("B")))
	g.Expect(err).NotTo(HaveOccurred())

	out, err := table.Call("Get-Data", nil, map[string]any{"p": "x"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal("A"))

	out, err = table.Call("Get-Data", nil, map[string]any{"p": "y"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal("B"))

	g.Expect(session.RemoveMock("Get-Data", "x-case")).To(Succeed())

	out, err = table.Call("Get-Data", nil, map[string]any{"p": "x"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal("B"))
}

// TestScenario_UnmockedCallRunsOriginal verifies that with no registration at
// all, calls reach the real implementation and nothing is counted.
func TestScenario_UnmockedCallRunsOriginal(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session, table := psmock.NewTableSession()
	table.MustRegister("Get-Data", getData)

	out, err := table.Call("Get-Data", nil, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal("orig"))

	_, ok := session.GetMock("Get-Data")
	g.Expect(ok).To(BeFalse())
}

// TestScenario_NestedContextShadowing verifies shadowing and unshadowing
// across a nested context: inner registration wins while the context is
// active, and behavior after exit is identical to before entry.
func TestScenario_NestedContextShadowing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session, table := psmock.NewTableSession()
	table.MustRegister("Get-Data", getData)

	_, _, err := session.AddMock("Get-Data", psmock.With(returning("OUTER")))
	g.Expect(err).NotTo(HaveOccurred())

	callGetData := func() any {
		t.Helper()

		out, err := table.Call("Get-Data", nil, nil)
		if err != nil {
			t.Fatalf("calling Get-Data: %v", err)
		}

		return out
	}

	g.Expect(callGetData()).To(Equal("OUTER"))

	err = session.RunInContext(func() error {
		if _, _, err := session.AddMock("Get-Data", psmock.With(returning("INNER"))); err != nil {
			return err
		}

		g.Expect(callGetData()).To(Equal("INNER"))

		return nil
	})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(callGetData()).To(Equal("OUTER"))
}

// TestScenario_MockCreatedCallable verifies mocking a name with no real
// implementation: registration succeeds, dispatch works, and full removal
// makes the name unknown again.
func TestScenario_MockCreatedCallable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session, table := psmock.NewTableSession()

	_, _, err := session.AddMock("Imaginary-Cmd", psmock.With(returning("made up")))
	g.Expect(err).NotTo(HaveOccurred())

	out, err := table.Call("Imaginary-Cmd", nil, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal("made up"))

	g.Expect(session.RemoveMock("Imaginary-Cmd")).To(Succeed())

	_, err = table.Call("Imaginary-Cmd", nil, nil)
	g.Expect(err).To(MatchError(psmock.ErrInvalidCallable))
}

// TestScenario_AliasCannotBeMocked verifies the unsupported-target error for
// indirections, end to end through the table.
func TestScenario_AliasCannotBeMocked(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session, table := psmock.NewTableSession()
	table.MustRegister("Get-Data", getData)
	g.Expect(table.Alias("gd", "Get-Data")).To(Succeed())

	_, _, err := session.AddMock("gd")

	g.Expect(err).To(MatchError(psmock.ErrUnsupportedTarget))
}

// TestScenario_ShutdownRestoresTable verifies that a full shutdown removes
// every interception point, so the table serves originals again.
func TestScenario_ShutdownRestoresTable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session, table := psmock.NewTableSession()
	table.MustRegister("Get-Data", getData)

	_, _, err := session.AddMock("Get-Data", psmock.With(returning("mocked")))
	g.Expect(err).NotTo(HaveOccurred())

	session.EnterContext()

	_, _, err = session.AddMock("Get-Data", psmock.With(returning("deeper")))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(session.Shutdown()).To(Succeed())

	out, err := table.Call("Get-Data", nil, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal("orig"))
}
