package nmri

// ToPostfix reorders an infix token sequence into postfix (reverse Polish)
// order with Dijkstra's shunting-yard algorithm. Operators pop earlier
// operators of higher precedence, or equal precedence when left-associative;
// a close parenthesis pops to its match and then binds an adjacent function
// to the just-closed argument. Assignment tokens must be stripped by the
// caller before conversion.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens))

	out := func(t Token) error {
		if len(output) >= MaxTokens {
			return &OverflowError{Col: t.Col}
		}
		output = append(output, t)
		return nil
	}
	push := func(t Token) error {
		if len(stack) >= MaxTokens {
			return &OverflowError{Col: t.Col}
		}
		stack = append(stack, t)
		return nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			if err := out(tok); err != nil {
				return nil, err
			}
		case TokenFunction:
			// Deferred until its parenthesized argument closes.
			if err := push(tok); err != nil {
				return nil, err
			}
		case TokenOperator:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenOperator {
					break
				}
				p, q := tok.Op.precedence(), top.Op.precedence()
				if !(p < q || (p == q && tok.Op.leftAssoc())) {
					break
				}
				stack = stack[:len(stack)-1]
				if err := out(top); err != nil {
					return nil, err
				}
			}
			if err := push(tok); err != nil {
				return nil, err
			}
		case TokenLParen:
			if err := push(tok); err != nil {
				return nil, err
			}
		case TokenRParen:
			for {
				if len(stack) == 0 {
					return nil, &BracketError{Col: tok.Col}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == TokenLParen {
					break
				}
				if err := out(top); err != nil {
					return nil, err
				}
			}
			if len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunction {
				fn := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if err := out(fn); err != nil {
					return nil, err
				}
			}
		case TokenAssign:
			return nil, &InternalError{Col: tok.Col, Msg: "assignment token in conversion"}
		default:
			panic("nmri: invalid token kind " + tok.Kind.String())
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == TokenLParen {
			return nil, &BracketError{Col: top.Col, Open: true}
		}
		if err := out(top); err != nil {
			return nil, err
		}
	}
	return output, nil
}
