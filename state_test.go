package nmri_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/davidesantangelo/nmri"
)

func TestAssignRoundTrip(t *testing.T) {
	st := nmri.NewState()
	r, err := st.Assign("x", "5*2")
	if err != nil {
		t.Fatalf("assigning x: %v", err)
	}
	if r != 10 {
		t.Fatalf("assignment result is %g, want 10", r)
	}
	if v, err := st.Evaluate("x"); err != nil || v != 10 {
		t.Errorf("evaluating x gave %g, %v; want 10", v, err)
	}
	if ans, ok := st.Lookup("ans"); !ok || ans != 10 {
		t.Errorf("ans is %g (defined %v), want 10", ans, ok)
	}
	// Reassignment updates in place.
	if _, err := st.Assign("x", "x + 1"); err != nil {
		t.Fatalf("reassigning x: %v", err)
	}
	if v, _ := st.Lookup("x"); v != 11 {
		t.Errorf("x is %g after reassignment, want 11", v)
	}
}

func TestAssignReserved(t *testing.T) {
	st := nmri.NewState()
	for _, name := range []string{"pi", "e", "sin", "ln", "ans", "help", "store", "log"} {
		_, err := st.Assign(name, "3")
		var rerr *nmri.ReservedNameError
		if !errors.As(err, &rerr) {
			t.Errorf("assigning %q: error %#v is not *ReservedNameError", name, err)
		}
	}
}

func TestFailedCycleLeavesStateUntouched(t *testing.T) {
	st := nmri.NewState()
	if _, err := st.Assign("x", "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Evaluate("x * 2"); err != nil {
		t.Fatal(err)
	}
	before := st.Vars()
	last := st.LastResult

	failures := []string{
		"1/0",
		"x +",
		"sqrt(0-1)",
		"(2+3",
		"y = 1/0",
		"nope + 1",
	}
	for _, src := range failures {
		if name, expr, ok := nmri.SplitAssignment(src); ok {
			if _, err := st.Assign(name, expr); err == nil {
				t.Fatalf("assignment %q succeeded", src)
			}
		} else if _, err := st.Evaluate(src); err == nil {
			t.Fatalf("evaluation %q succeeded", src)
		}
		if st.LastResult != last {
			t.Errorf("after %q: LastResult changed to %g", src, st.LastResult)
		}
		if got := st.Vars(); !reflect.DeepEqual(got, before) {
			t.Errorf("after %q: variable store changed:\n\twas %v\n\tnow %v", src, before, got)
		}
	}
}

func TestStoreFull(t *testing.T) {
	st := nmri.NewState()
	// ans occupies one slot.
	for i := len(st.Vars()); i < nmri.MaxVariables; i++ {
		if err := st.Set(fmt.Sprintf("v%d", i), float64(i)); err != nil {
			t.Fatalf("creating variable %d: %v", i, err)
		}
	}
	err := st.Set("overflow", 1)
	var serr *nmri.StoreFullError
	if !errors.As(err, &serr) {
		t.Fatalf("error %#v is not *StoreFullError", err)
	}
	// Updates still work at capacity.
	if err := st.Set("v5", 99); err != nil {
		t.Errorf("updating existing variable at capacity: %v", err)
	}
	if v, _ := st.Lookup("v5"); v != 99 {
		t.Errorf("v5 is %g, want 99", v)
	}
}

func TestVariableIdentityStable(t *testing.T) {
	st := nmri.NewState()
	st.Set("a", 1)
	st.Set("b", 2)
	st.Set("a", 3)
	vars := st.Vars()
	want := []nmri.Variable{{Name: "ans", Value: 0}, {Name: "a", Value: 3}, {Name: "b", Value: 2}}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("store order:\n\twant %v\n\tgot  %v", want, vars)
	}
}

func TestSplitAssignment(t *testing.T) {
	cases := []struct {
		line string
		name string
		expr string
		ok   bool
	}{
		{"x = 5", "x", " 5", true},
		{"x=5", "x", "5", true},
		{"long_name2 = 1 + 2", "long_name2", " 1 + 2", true},
		{"pi = 3", "pi", " 3", true}, // splits; Assign rejects the reserved name
		{"2 + 2", "", "", false},
		{"= 5", "", "", false},
		{"x + 1 = 5", "", "", false}, // operator before =
		{"1x = 5", "", "", false},    // invalid identifier
		{"x y = 5", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		name, expr, ok := nmri.SplitAssignment(c.line)
		if name != c.name || expr != c.expr || ok != c.ok {
			t.Errorf("SplitAssignment(%q) = %q, %q, %v; want %q, %q, %v",
				c.line, name, expr, ok, c.name, c.expr, c.ok)
		}
	}
}

func TestValidName(t *testing.T) {
	valid := []string{"x", "_x", "abc_123", "A1"}
	invalid := []string{"", "1a", "a b", "a-b", "x!", string(make([]byte, nmri.MaxIdentLen))}
	for _, n := range valid {
		if !nmri.ValidName(n) {
			t.Errorf("ValidName(%q) = false, want true", n)
		}
	}
	for _, n := range invalid {
		if nmri.ValidName(n) {
			t.Errorf("ValidName(%q) = true, want false", n)
		}
	}
}

func TestCleanNearZero(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1e-12, 0},
		{-1e-12, 0},
		{0, 0},
		{1e-9, 1e-9},
		{5, 5},
		{-5, -5},
	}
	for _, c := range cases {
		if got := nmri.CleanNearZero(c.in); got != c.want {
			t.Errorf("CleanNearZero(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestLoggingSinkFailureHarmless(t *testing.T) {
	var lines []string
	st := nmri.NewState(nmri.WithLogger(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}))
	if _, err := st.Evaluate("2+2"); err != nil {
		t.Fatal(err)
	}
	if len(lines) == 0 {
		t.Error("no log lines for a successful evaluation")
	}
	quiet := nmri.NewState()
	r, err := quiet.Evaluate("2+2")
	if err != nil || r != 4 {
		t.Errorf("evaluation without a sink gave %g, %v", r, err)
	}
}
