package nmri

import "math"

// value is one element of the evaluation stack. The percentage tag is scratch
// state scoped to a single evaluation; every operator and function result
// clears it.
type value struct {
	num float64
	pct bool
}

// norm resolves a percentage-tagged value to its literal fraction.
func (v value) norm() float64 {
	if v.pct {
		return v.num / 100
	}
	return v.num
}

// EvalPostfix executes a postfix token sequence against a value stack and
// returns the single remaining value.
//
// Percentage-tagged operands are asymmetric. For + and -, a tagged
// right operand means "that percent of the left operand", so 100 - 20% is 80.
// For * and /, a tagged operand on either side is the literal fraction, so
// 100 * 20% is 20. ^ and % ignore the tag and report a warning through the
// warning sink. A tag that survives to the final value (a bare percentage
// literal) resolves to num/100.
func (s *State) EvalPostfix(postfix []Token) (float64, error) {
	stack := make([]value, 0, 8)
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNumber:
			if len(stack) >= MaxTokens {
				return 0, &OverflowError{Col: tok.Col}
			}
			stack = append(stack, value{num: tok.Num, pct: tok.Pct})
		case TokenOperator:
			if len(stack) < 2 {
				return 0, &OperandError{Op: tok.Op}
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			r, err := s.applyOp(tok.Op, a, b)
			if err != nil {
				return 0, err
			}
			stack = append(stack, value{num: r})
		case TokenFunction:
			if len(stack) < 1 {
				return 0, &ArgumentError{Fn: tok.Fn}
			}
			arg := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r, err := tok.Fn.apply(arg.norm())
			if err != nil {
				return 0, err
			}
			stack = append(stack, value{num: r})
		default:
			return 0, &InternalError{Col: tok.Col, Msg: tok.Kind.String() + " token in evaluation"}
		}
	}
	if len(stack) != 1 {
		return 0, &MalformedError{Depth: len(stack)}
	}
	return stack[0].norm(), nil
}

func (s *State) applyOp(op Op, a, b value) (float64, error) {
	switch op {
	case OpAdd:
		if b.pct {
			return a.num + b.num/100*a.num, nil
		}
		return a.num + b.num, nil
	case OpSub:
		if b.pct {
			return a.num - b.num/100*a.num, nil
		}
		return a.num - b.num, nil
	case OpMul:
		return a.norm() * b.norm(), nil
	case OpDiv:
		x, y := a.norm(), b.norm()
		if y == 0 {
			return 0, &DivZeroError{}
		}
		return x / y, nil
	case OpPow:
		if a.pct || b.pct {
			s.warnf("percentage ignored in power operation")
		}
		return math.Pow(a.num, b.num), nil
	case OpMod:
		if a.pct || b.pct {
			s.warnf("percentage ignored in modulo operation")
		}
		if b.num == 0 {
			return 0, &ModZeroError{}
		}
		return math.Mod(a.num, b.num), nil
	}
	panic("nmri: invalid operator " + op.String())
}
