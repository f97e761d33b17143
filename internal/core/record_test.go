package core_test

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/jonwagner/PSMock/internal/core"
)

// TestCaseOrder_Rapid checks the structural insertion invariant over
// arbitrary registration sequences: every non-default case precedes every
// default case, non-defaults appear most-recent-first, and defaults appear
// most-recent-first within their own tail run.
func TestCaseOrder_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		host := newFakeHost()
		s := core.NewSession(host, host)

		count := rapid.IntRange(1, 15).Draw(rt, "registrations")

		var specificNames, defaultNames []string // registration order

		for i := range count {
			name := strconv.Itoa(i)
			opts := []core.CaseOption{core.Named(name)}

			if rapid.Bool().Draw(rt, "isDefault") {
				defaultNames = append(defaultNames, name)
			} else {
				specificNames = append(specificNames, name)
				opts = append(opts, core.When(paramIs("p", name)))
			}

			if _, _, err := s.AddMock("Get-Data", opts...); err != nil {
				rt.Fatalf("registration %d failed: %v", i, err)
			}
		}

		rec, ok := s.GetMock("Get-Data")
		if !ok {
			rt.Fatalf("record missing after %d registrations", count)
		}

		var want []string

		for i := len(specificNames) - 1; i >= 0; i-- {
			want = append(want, specificNames[i])
		}

		for i := len(defaultNames) - 1; i >= 0; i-- {
			want = append(want, defaultNames[i])
		}

		cases := rec.Cases()
		if len(cases) != len(want) {
			rt.Fatalf("got %d cases, expected %d", len(cases), len(want))
		}

		for i, c := range cases {
			if c.Name() != want[i] {
				rt.Fatalf("case %d is %q, expected %q", i, c.Name(), want[i])
			}
		}
	})
}
