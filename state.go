package nmri

import (
	"math"
	"strings"
	"unicode"
)

// Variable is one entry in the variable store.
type Variable struct {
	Name  string
	Value float64
}

// State is the whole mutable state of one calculator: the variable store, the
// ans and memory registers, and the logging and warning sinks. It is not safe
// to use a State concurrently.
type State struct {
	// vars is append-only by name: a variable keeps its index for the life of
	// the State.
	vars []Variable

	// LastResult is the most recent successful evaluation, read back as ans.
	LastResult float64
	// Memory is the accumulator behind the mem/m+/m-/mr/mc commands.
	Memory float64

	logf func(format string, args ...any)
	warn func(msg string)
}

// Option is an option used when creating a State.
type Option interface {
	stateOption()
}

type (
	logOpt  func(format string, args ...any)
	warnOpt func(msg string)
)

func (logOpt) stateOption()  {}
func (warnOpt) stateOption() {}

// WithLogger directs significant events (results, assignments, failures) to
// f. The sink is best effort: it is called after state updates and can never
// affect an evaluation's outcome.
func WithLogger(f func(format string, args ...any)) Option { return logOpt(f) }

// WithWarnings directs non-fatal warnings, such as a percentage operand in a
// power operation, to f.
func WithWarnings(f func(msg string)) Option { return warnOpt(f) }

// NewState creates a calculator state. ans starts out defined as 0.
func NewState(opts ...Option) *State {
	s := &State{}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case logOpt:
			s.logf = opt
		case warnOpt:
			s.warn = opt
		case nil:
			// skip
		default:
			panic("nmri: unknown option type")
		}
	}
	s.Set("ans", 0)
	return s
}

func (s *State) log(format string, args ...any) {
	if s.logf != nil {
		s.logf(format, args...)
	}
}

func (s *State) warnf(msg string) {
	if s.warn != nil {
		s.warn(msg)
	}
}

// find returns the index of a variable by exact, case-sensitive name.
func (s *State) find(name string) (int, bool) {
	for i := range s.vars {
		if s.vars[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Lookup returns the current value of a variable.
func (s *State) Lookup(name string) (float64, bool) {
	if i, ok := s.find(name); ok {
		return s.vars[i].Value, true
	}
	return 0, false
}

// Set creates or updates a variable. Creation fails with *StoreFullError once
// MaxVariables entries exist; updates always succeed.
func (s *State) Set(name string, val float64) error {
	if i, ok := s.find(name); ok {
		s.vars[i].Value = val
		return nil
	}
	if len(s.vars) >= MaxVariables {
		return &StoreFullError{Name: name}
	}
	s.vars = append(s.vars, Variable{Name: name, Value: val})
	return nil
}

// Vars returns a copy of the variable store in creation order.
func (s *State) Vars() []Variable {
	v := make([]Variable, len(s.vars))
	copy(v, s.vars)
	return v
}

// commit records a successful evaluation. ans exists from NewState, so the
// Set cannot fail.
func (s *State) commit(r float64) {
	s.LastResult = r
	s.Set("ans", r)
}

// Evaluate runs the tokenize, convert, evaluate pipeline on one expression.
// On success it updates LastResult and ans; on failure all state is exactly
// as it was before the call.
func (s *State) Evaluate(expr string) (float64, error) {
	toks, err := s.Tokenize(expr)
	if err != nil {
		s.log("evaluation error: tokenize %q: %v", expr, err)
		return 0, err
	}
	if len(toks) == 0 {
		return 0, &EmptyError{}
	}
	post, err := ToPostfix(toks)
	if err != nil {
		s.log("evaluation error: convert %q: %v", expr, err)
		return 0, err
	}
	r, err := s.EvalPostfix(post)
	if err != nil {
		s.log("evaluation error: evaluate %q: %v", expr, err)
		return 0, err
	}
	s.commit(r)
	s.log("result: %s = %g", strings.TrimSpace(expr), r)
	return r, nil
}

// Assign evaluates expr and commits the result to the named variable, then to
// LastResult and ans. Reserved names are rejected before any evaluation. On
// any failure the variable, LastResult, and ans are all left unmodified.
func (s *State) Assign(name, expr string) (float64, error) {
	if IsReserved(name) {
		err := &ReservedNameError{Name: name}
		s.log("assignment error: %v", err)
		return 0, err
	}
	toks, err := s.Tokenize(expr)
	if err != nil {
		s.log("assignment error: tokenize %q = %q: %v", name, expr, err)
		return 0, err
	}
	if len(toks) == 0 {
		s.log("assignment error: missing expression for %q", name)
		return 0, &EmptyError{}
	}
	post, err := ToPostfix(toks)
	if err != nil {
		s.log("assignment error: convert %q = %q: %v", name, expr, err)
		return 0, err
	}
	r, err := s.EvalPostfix(post)
	if err != nil {
		s.log("assignment error: evaluate %q = %q: %v", name, expr, err)
		return 0, err
	}
	if err := s.Set(name, r); err != nil {
		s.log("assignment error: store %q: %v", name, err)
		return 0, err
	}
	s.commit(r)
	s.log("assignment: %s = %g (expression %q)", name, r, strings.TrimSpace(expr))
	return r, nil
}

// SplitAssignment decides whether a line is an assignment and splits it. A
// line is an assignment iff it contains = at a position strictly before any
// of + - * / ^ % and the left-hand side is a syntactically valid identifier.
// Reserved-name rejection is Assign's job, so "pi = 3" splits fine and then
// fails with a *ReservedNameError.
func SplitAssignment(line string) (name, expr string, ok bool) {
	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return "", "", false
	}
	if op := strings.IndexAny(line, "+-*/^%"); op >= 0 && op < eq {
		return "", "", false
	}
	name = strings.TrimSpace(line[:eq])
	if !ValidName(name) {
		return "", "", false
	}
	return name, line[eq+1:], true
}

// ValidName reports whether name is a syntactically valid identifier of
// acceptable length: [A-Za-z_][A-Za-z0-9_]*, under MaxIdentLen characters.
func ValidName(name string) bool {
	if name == "" || len(name) >= MaxIdentLen {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// CleanNearZero maps results within 1e-10 of zero to exactly zero, keeping
// signed-zero and rounding artifacts like "sin(pi)" out of display output.
func CleanNearZero(v float64) float64 {
	if math.Abs(v) < 1e-10 {
		return 0
	}
	return v
}
