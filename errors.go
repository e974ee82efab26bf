package nmri

import "strconv"

// InputError is an error with position information. Every error resulting
// from invalid expression text implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the input that caused the error.
	Pos() int
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InvalidCharError indicates a character that cannot start any token.
type InvalidCharError struct {
	// Col is the position of the character.
	Col int
	// Char is the offending character.
	Char rune
}

func (err *InvalidCharError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char)+" in expression")
}

func (err *InvalidCharError) Pos() int { return err.Col }

// IdentTooLongError indicates an identifier longer than MaxIdentLen-1
// characters.
type IdentTooLongError struct {
	// Col is the position of the identifier.
	Col int
	// Ident is a prefix of the overlong identifier.
	Ident string
}

func (err *IdentTooLongError) Error() string {
	return errpos(err.Col, "identifier "+strconv.Quote(err.Ident)+" too long (max "+strconv.Itoa(MaxIdentLen-1)+" characters)")
}

func (err *IdentTooLongError) Pos() int { return err.Col }

// UnknownIdentError indicates an identifier that is not a constant, function,
// or defined variable.
type UnknownIdentError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier.
	Name string
}

func (err *UnknownIdentError) Error() string {
	return errpos(err.Col, "unknown identifier "+strconv.Quote(err.Name))
}

func (err *UnknownIdentError) Pos() int { return err.Col }

// ComplexityError indicates an expression that produced more than MaxTokens
// tokens.
type ComplexityError struct {
	// Col is the position at which the token limit was exceeded.
	Col int
}

func (err *ComplexityError) Error() string {
	return errpos(err.Col, "expression too complex (more than "+strconv.Itoa(MaxTokens)+" tokens)")
}

func (err *ComplexityError) Pos() int { return err.Col }

// BracketError indicates mismatched parentheses.
type BracketError struct {
	// Col is the position of the unmatched parenthesis, or 0 if it was
	// detected at the end of the input.
	Col int
	// Open is true for an unclosed ( and false for a stray ).
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Col, "close parenthesis with no open parenthesis")
}

func (err *BracketError) Pos() int { return err.Col }

// OverflowError indicates that the converter's stack or output queue exceeded
// its capacity.
type OverflowError struct {
	// Col is the position of the token that overflowed.
	Col int
}

func (err *OverflowError) Error() string {
	return errpos(err.Col, "expression too large to convert")
}

func (err *OverflowError) Pos() int { return err.Col }

// InternalError indicates a broken invariant, such as an assignment token
// reaching the converter. It always denotes a bug in the caller rather than
// bad input.
type InternalError struct {
	// Col is the position of the offending token.
	Col int
	// Msg describes the violated invariant.
	Msg string
}

func (err *InternalError) Error() string {
	return errpos(err.Col, "internal: "+err.Msg)
}

func (err *InternalError) Pos() int { return err.Col }

// OperandError indicates a binary operator with fewer than two operands
// available.
type OperandError struct {
	// Op is the operator.
	Op Op
}

func (err *OperandError) Error() string {
	return "insufficient operands for operator " + err.Op.String()
}

// ArgumentError indicates a function with no argument available.
type ArgumentError struct {
	// Fn is the function.
	Fn Func
}

func (err *ArgumentError) Error() string {
	return "insufficient arguments for function " + err.Fn.String()
}

// DivZeroError indicates division by zero.
type DivZeroError struct{}

func (err *DivZeroError) Error() string { return "division by zero" }

// ModZeroError indicates modulo by zero.
type ModZeroError struct{}

func (err *ModZeroError) Error() string { return "modulo by zero" }

// DomainError indicates a function argument outside the function's domain.
type DomainError struct {
	// Fn is the function.
	Fn Func
	// X is the out-of-domain argument, after percentage normalization.
	X float64
}

func (err *DomainError) Error() string {
	return strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain of " + err.Fn.String()
}

// MalformedError indicates a postfix sequence that did not reduce to exactly
// one value.
type MalformedError struct {
	// Depth is the number of values left on the stack.
	Depth int
}

func (err *MalformedError) Error() string {
	return "malformed expression (" + strconv.Itoa(err.Depth) + " values left on stack)"
}

// EmptyError indicates an empty expression where one was required.
type EmptyError struct{}

func (err *EmptyError) Error() string { return "empty expression" }

// StoreFullError indicates that the variable store has reached MaxVariables
// entries.
type StoreFullError struct {
	// Name is the variable that could not be created.
	Name string
}

func (err *StoreFullError) Error() string {
	return "cannot create " + strconv.Quote(err.Name) + ": variable store full (max " + strconv.Itoa(MaxVariables) + ")"
}

// ReservedNameError indicates an assignment to a constant, function, or
// command name.
type ReservedNameError struct {
	// Name is the reserved identifier.
	Name string
}

func (err *ReservedNameError) Error() string {
	return "cannot assign to reserved name " + strconv.Quote(err.Name)
}

var (
	_ InputError = (*InvalidCharError)(nil)
	_ InputError = (*IdentTooLongError)(nil)
	_ InputError = (*UnknownIdentError)(nil)
	_ InputError = (*ComplexityError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OverflowError)(nil)
	_ InputError = (*InternalError)(nil)
)
