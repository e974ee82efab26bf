package nmri_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/davidesantangelo/nmri"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "2", 2},
		{"add", "2+2", 4},
		{"precedence", "2+3*4", 14},
		{"parens", "(2+3)*4", 20},
		{"pow-right-assoc", "2^3^2", 512},
		{"pow-right-assoc-edge", "2^3^1", 8},
		{"left-assoc-sub", "8-2-1", 5},
		{"unary", "-7+10", 3},
		{"mod", "7%3", 1},
		{"pct-add", "100 + 20%", 120},
		{"pct-sub", "100 - 20%", 80},
		{"pct-mul", "100 * 20%", 20},
		{"pct-div", "100 / 50%", 200},
		{"pct-left-mul", "50% * 100", 50},
		{"pct-bare", "20%", 0.20},
		{"pct-func-arg", "floor(250%)", 2},
		{"sin", "sin(0)", 0},
		{"sqrt", "sqrt(16)", 4},
		{"exp-ln", "ln(exp(1))", math.Log(math.Exp(1))},
		{"abs", "abs(0-5)", 5},
		{"round", "round(2.5)", 3},
		{"const-pi", "cos(pi)", math.Cos(math.Pi)},
		{"nested-funcs", "sqrt(abs(0-16))", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := nmri.NewState()
			r, err := st.Evaluate(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r != c.want {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.want, r)
			}
			if st.LastResult != r {
				t.Errorf("LastResult is %g, want %g", st.LastResult, r)
			}
			if ans, ok := st.Lookup("ans"); !ok || ans != r {
				t.Errorf("ans is %g (defined %v), want %g", ans, ok, r)
			}
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	// Pure arithmetic is bit-reproducible.
	srcs := []string{"2^3^2", "1/3 + 1/7", "sin(1) * exp(2.5)", "sqrt(2)^2"}
	for _, src := range srcs {
		a, err := nmri.NewState().Evaluate(src)
		if err != nil {
			t.Fatalf("evaluating %q: %v", src, err)
		}
		b, err := nmri.NewState().Evaluate(src)
		if err != nil {
			t.Fatalf("evaluating %q: %v", src, err)
		}
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("%q not reproducible: %x vs %x", src, math.Float64bits(a), math.Float64bits(b))
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"div-zero", "1/0", &nmri.DivZeroError{}},
		{"div-zero-pct", "1 / 0%", &nmri.DivZeroError{}},
		{"mod-zero", "5 % 0", &nmri.ModZeroError{}},
		{"sqrt-neg", "sqrt(0-1)", &nmri.DomainError{}},
		{"log-zero", "log(0)", &nmri.DomainError{}},
		{"log-neg", "ln(0-3)", &nmri.DomainError{}},
		{"asin-out", "asin(2)", &nmri.DomainError{}},
		{"acos-out", "acos(0-2)", &nmri.DomainError{}},
		{"missing-operand", "2+", &nmri.OperandError{}},
		{"bare-function", "sin", &nmri.ArgumentError{}},
		{"adjacent-numbers", "2 3", &nmri.MalformedError{}},
		{"empty", "", &nmri.EmptyError{}},
		{"empty-parens", "()", &nmri.MalformedError{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := nmri.NewState()
			r, err := st.Evaluate(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave %g, want error", c.src, r)
			}
			target := reflect.New(reflect.TypeOf(c.want)).Interface()
			if !errors.As(err, target) {
				t.Errorf("evaluating %q: error %#v is not %T", c.src, err, c.want)
			}
		})
	}
}

func TestEvaluatePercentWarnings(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"pow", "2 ^ 50%", math.Pow(2, 50)},
		{"mod", "7% % 3", math.Mod(7, 3)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var warnings []string
			st := nmri.NewState(nmri.WithWarnings(func(msg string) {
				warnings = append(warnings, msg)
			}))
			r, err := st.Evaluate(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r != c.want {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.want, r)
			}
			if len(warnings) != 1 {
				t.Errorf("evaluating %q: %d warnings, want 1: %q", c.src, len(warnings), warnings)
			}
		})
	}
}

func TestEvaluateNeverNaN(t *testing.T) {
	// Errors are typed; a failing expression must not surface NaN or a bogus
	// success.
	for _, src := range []string{"1/0", "sqrt(0-1)", "log(0)", "5%0"} {
		st := nmri.NewState()
		r, err := st.Evaluate(src)
		if err == nil {
			t.Errorf("evaluating %q gave %g, want error", src, r)
		}
		if math.IsNaN(st.LastResult) {
			t.Errorf("evaluating %q left NaN in LastResult", src)
		}
	}
}
