package nmri

import "strconv"

// TokenKind discriminates the variants of Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota

	// TokenNumber is a numeric literal, possibly percentage-tagged. Constants
	// and variables are resolved to numbers by the lexer.
	TokenNumber
	// TokenOperator is a binary arithmetic operator.
	TokenOperator
	// TokenFunction is a unary mathematical function.
	TokenFunction
	// TokenLParen and TokenRParen are the grouping brackets.
	TokenLParen
	TokenRParen
	// TokenAssign is an identifier followed by =. It only ever appears as the
	// first token of a line and must be stripped before conversion.
	TokenAssign
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "none"
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenFunction:
		return "function"
	case TokenLParen:
		return "lparen"
	case TokenRParen:
		return "rparen"
	case TokenAssign:
		return "assign"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Op is a binary arithmetic operator.
type Op int8

const (
	OpAdd Op = iota // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
	OpPow           // ^
	OpMod           // %
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpMod:
		return "%"
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// precedence returns the binding strength of the operator. Higher binds
// tighter.
func (op Op) precedence() int {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv, OpMod:
		return 2
	case OpPow:
		return 3
	}
	return 0
}

// leftAssoc reports whether the operator is left-associative. Only ^ is
// right-associative, so 2^3^2 parses as 2^(3^2).
func (op Op) leftAssoc() bool {
	return op != OpPow
}

// Token is one element of a lexed expression. Tokens are immutable once
// produced; which fields are meaningful depends on Kind.
type Token struct {
	Kind TokenKind

	Num  float64 // TokenNumber
	Pct  bool    // TokenNumber written with a trailing %
	Op   Op      // TokenOperator
	Fn   Func    // TokenFunction
	Name string  // TokenAssign target

	// Col is the 1-based rune column the token started at, for error
	// reporting.
	Col int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		s := strconv.FormatFloat(t.Num, 'g', -1, 64)
		if t.Pct {
			s += "%"
		}
		return s
	case TokenOperator:
		return t.Op.String()
	case TokenFunction:
		return t.Fn.String()
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenAssign:
		return t.Name + "="
	}
	return t.Kind.String()
}
