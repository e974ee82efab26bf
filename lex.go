package nmri

import (
	"strconv"
	"unicode"
)

// Limits bound the work done in one evaluation cycle; the slices behind them
// grow as needed.
const (
	// MaxTokens is the most tokens one expression may produce.
	MaxTokens = 100
	// MaxIdentLen bounds identifier length; at most MaxIdentLen-1 characters
	// are allowed.
	MaxIdentLen = 32
	// MaxVariables is the most variables one State may hold.
	MaxVariables = 100
	// MaxInput is the longest input line the surrounding layers should accept,
	// in bytes.
	MaxInput = 256
)

// lexer scans one line of expression text. It resolves constants and
// variables to number tokens immediately, so it needs the State.
type lexer struct {
	src  []rune
	pos  int
	st   *State
	toks []Token
	// operand is whether the next token should be an operand (start of
	// expression, after an operator, or after an open parenthesis). It decides
	// whether + and - are unary.
	operand bool
}

// Tokenize converts one line of expression text into tokens. Constants,
// variables, and ans resolve to number tokens; a unary sign becomes a
// synthetic zero literal followed by the binary operator, so "-7" lexes as
// "0 - 7".
func (s *State) Tokenize(input string) ([]Token, error) {
	l := lexer{src: []rune(input), st: s, operand: true}
	return l.run()
}

// col is the 1-based column of the rune at the current position.
func (l *lexer) col() int { return l.pos + 1 }

func (l *lexer) emit(t Token) error {
	if len(l.toks) >= MaxTokens {
		return &ComplexityError{Col: t.Col}
	}
	l.toks = append(l.toks, t)
	return nil
}

func (l *lexer) run() ([]Token, error) {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case unicode.IsSpace(r):
			l.pos++
		case r == '_' || unicode.IsLetter(r):
			if err := l.scanIdent(); err != nil {
				return nil, err
			}
		case unicode.IsDigit(r), r == '.' && l.digitAt(l.pos+1):
			if err := l.scanNumber(); err != nil {
				return nil, err
			}
		case r == '(':
			if err := l.emit(Token{Kind: TokenLParen, Col: l.col()}); err != nil {
				return nil, err
			}
			l.pos++
			l.operand = true
		case r == ')':
			if err := l.emit(Token{Kind: TokenRParen, Col: l.col()}); err != nil {
				return nil, err
			}
			l.pos++
			l.operand = false
		default:
			if op, ok := charToOp(r); ok {
				if err := l.scanOperator(op); err != nil {
					return nil, err
				}
				break
			}
			return nil, &InvalidCharError{Col: l.col(), Char: r}
		}
	}
	return l.toks, nil
}

func (l *lexer) digitAt(i int) bool {
	return i < len(l.src) && unicode.IsDigit(l.src[i])
}

// scanIdent reads an identifier and resolves it, in order, as an assignment
// target, a constant, a function, or a variable.
func (l *lexer) scanIdent() error {
	col := l.col()
	start := l.pos
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos++
	}
	name := string(l.src[start:l.pos])
	if len(name) >= MaxIdentLen {
		return &IdentTooLongError{Col: col, Ident: name[:MaxIdentLen-1]}
	}

	// An identifier immediately followed by = starts an assignment.
	i := l.pos
	for i < len(l.src) && unicode.IsSpace(l.src[i]) {
		i++
	}
	if i < len(l.src) && l.src[i] == '=' {
		l.pos = i + 1
		l.operand = true
		return l.emit(Token{Kind: TokenAssign, Name: name, Col: col})
	}

	if name == "ans" {
		l.operand = false
		return l.emit(Token{Kind: TokenNumber, Num: l.st.LastResult, Col: col})
	}
	if v, ok := Constant(name); ok {
		l.operand = false
		return l.emit(Token{Kind: TokenNumber, Num: v, Col: col})
	}
	if f, ok := LookupFunc(name); ok {
		l.operand = true
		return l.emit(Token{Kind: TokenFunction, Fn: f, Col: col})
	}
	if v, ok := l.st.Lookup(name); ok {
		l.operand = false
		return l.emit(Token{Kind: TokenNumber, Num: v, Col: col})
	}
	return &UnknownIdentError{Col: col, Name: name}
}

// scanNumber reads a decimal or scientific-notation literal, plus an optional
// trailing percent sign. The scan takes the longest valid prefix, so "2e"
// lexes as the number 2 followed by the identifier e.
func (l *lexer) scanNumber() error {
	col := l.col()
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	// Exponent, only if a digit actually follows it.
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		i := l.pos + 1
		if i < len(l.src) && (l.src[i] == '+' || l.src[i] == '-') {
			i++
		}
		if l.digitAt(i) {
			l.pos = i + 1
			for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	text := string(l.src[start:l.pos])
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// The scan admits only strings ParseFloat accepts, so this is
		// unreachable; keep the guard anyway.
		return &InvalidCharError{Col: col, Char: l.src[start]}
	}
	tok := Token{Kind: TokenNumber, Num: num, Col: col}
	if l.pos < len(l.src) && l.src[l.pos] == '%' {
		tok.Pct = true
		l.pos++
	}
	l.operand = false
	return l.emit(tok)
}

// scanOperator emits op, preceded by a synthetic zero when a sign appears in
// operand position.
func (l *lexer) scanOperator(op Op) error {
	col := l.col()
	if (op == OpAdd || op == OpSub) && l.operand {
		if err := l.emit(Token{Kind: TokenNumber, Num: 0, Col: col}); err != nil {
			return err
		}
	}
	if err := l.emit(Token{Kind: TokenOperator, Op: op, Col: col}); err != nil {
		return err
	}
	l.pos++
	l.operand = true
	return nil
}

func charToOp(r rune) (Op, bool) {
	switch r {
	case '+':
		return OpAdd, true
	case '-':
		return OpSub, true
	case '*':
		return OpMul, true
	case '/':
		return OpDiv, true
	case '^':
		return OpPow, true
	case '%':
		return OpMod, true
	}
	return 0, false
}
