package nmri

import (
	"math"
	"strconv"
)

// Func identifies a unary mathematical function. Trigonometric functions work
// in radians.
type Func int8

const (
	FuncSin Func = iota
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncLog // natural logarithm
	FuncSqrt
	FuncExp
	FuncAbs
	FuncFloor
	FuncCeil
	FuncRound
)

func (f Func) String() string {
	switch f {
	case FuncSin:
		return "sin"
	case FuncCos:
		return "cos"
	case FuncTan:
		return "tan"
	case FuncAsin:
		return "asin"
	case FuncAcos:
		return "acos"
	case FuncAtan:
		return "atan"
	case FuncLog:
		return "log"
	case FuncSqrt:
		return "sqrt"
	case FuncExp:
		return "exp"
	case FuncAbs:
		return "abs"
	case FuncFloor:
		return "floor"
	case FuncCeil:
		return "ceil"
	case FuncRound:
		return "round"
	}
	return "func(" + strconv.Itoa(int(f)) + ")"
}

// funcNames maps every recognized spelling to its function. ln is an alias
// for the natural logarithm.
var funcNames = map[string]Func{
	"sin":   FuncSin,
	"cos":   FuncCos,
	"tan":   FuncTan,
	"asin":  FuncAsin,
	"acos":  FuncAcos,
	"atan":  FuncAtan,
	"log":   FuncLog,
	"ln":    FuncLog,
	"sqrt":  FuncSqrt,
	"exp":   FuncExp,
	"abs":   FuncAbs,
	"floor": FuncFloor,
	"ceil":  FuncCeil,
	"round": FuncRound,
}

// LookupFunc resolves a function name, including aliases.
func LookupFunc(name string) (Func, bool) {
	f, ok := funcNames[name]
	return f, ok
}

// apply evaluates the function at x. Arguments outside the function's domain
// yield a *DomainError rather than a NaN result.
func (f Func) apply(x float64) (float64, error) {
	switch f {
	case FuncSin:
		return math.Sin(x), nil
	case FuncCos:
		return math.Cos(x), nil
	case FuncTan:
		return math.Tan(x), nil
	case FuncAsin:
		if x < -1 || x > 1 {
			return 0, &DomainError{Fn: f, X: x}
		}
		return math.Asin(x), nil
	case FuncAcos:
		if x < -1 || x > 1 {
			return 0, &DomainError{Fn: f, X: x}
		}
		return math.Acos(x), nil
	case FuncAtan:
		return math.Atan(x), nil
	case FuncLog:
		if x <= 0 {
			return 0, &DomainError{Fn: f, X: x}
		}
		return math.Log(x), nil
	case FuncSqrt:
		if x < 0 {
			return 0, &DomainError{Fn: f, X: x}
		}
		return math.Sqrt(x), nil
	case FuncExp:
		return math.Exp(x), nil
	case FuncAbs:
		return math.Abs(x), nil
	case FuncFloor:
		return math.Floor(x), nil
	case FuncCeil:
		return math.Ceil(x), nil
	case FuncRound:
		return math.Round(x), nil
	}
	panic("nmri: invalid function " + f.String())
}

// constants are the named values the lexer resolves directly to number
// tokens. ans is not here; it reads the calculator's last result.
var constants = map[string]float64{
	"pi":    math.Pi,
	"e":     math.E,
	"phi":   math.Phi,
	"gamma": 0.5772156649015329,
	"c":     299792458,       // speed of light, m/s
	"h":     6.62607015e-34,  // Planck constant, J*s
	"G":     6.6743e-11,      // gravitational constant
	"Na":    6.02214076e23,   // Avogadro number
	"k":     1.380649e-23,    // Boltzmann constant, J/K
}

// Constant resolves a named constant.
func Constant(name string) (float64, bool) {
	if name == "inf" {
		return math.Inf(1), true
	}
	v, ok := constants[name]
	return v, ok
}

// commandVerbs are the interactive command words, reserved so that a
// variable cannot shadow them.
var commandVerbs = []string{
	"help", "exit", "quit", "clear", "cls", "history",
	"vars", "variables", "mem", "memory", "mr", "mc", "store", "log",
}

// reserved is the single set of identifiers that can never be assigned:
// constants, function names, and command verbs.
var reserved = func() map[string]bool {
	m := make(map[string]bool, len(constants)+len(funcNames)+len(commandVerbs)+2)
	for name := range constants {
		m[name] = true
	}
	m["inf"] = true
	m["ans"] = true
	for name := range funcNames {
		m[name] = true
	}
	for _, name := range commandVerbs {
		m[name] = true
	}
	return m
}()

// IsReserved reports whether name may not be used as an assignment target.
func IsReserved(name string) bool {
	return reserved[name]
}
