package minipy

import "math"

func (exec *Execution) applyUnary(op TokenType, right Value, pos Position) (Value, error) {
	switch op {
	case tokenMinus:
		if right.Kind() != KindNumber {
			return Value{}, exec.errorAt(pos, ErrTypeMismatch, "unary '-' requires a number, got %s", right.Kind())
		}
		return NewNumber(-right.Number()), nil
	case tokenPlus:
		if right.Kind() != KindNumber {
			return Value{}, exec.errorAt(pos, ErrTypeMismatch, "unary '+' requires a number, got %s", right.Kind())
		}
		return NewNumber(right.Number()), nil
	case tokenTilde:
		n, err := exec.integerOperand("'~'", right, pos)
		if err != nil {
			return Value{}, err
		}
		return NewNumber(float64(^n)), nil
	case tokenNot:
		if right.Kind() != KindNumber {
			return Value{}, exec.errorAt(pos, ErrTypeMismatch, "'not' requires a number, got %s", right.Kind())
		}
		return newComparison(!right.Truthy()), nil
	default:
		return Value{}, exec.errorAt(pos, ErrTypeMismatch, "unsupported unary operator '%s'", op)
	}
}

func (exec *Execution) applyBinary(op TokenType, left, right Value, pos Position) (Value, error) {
	switch op {
	case tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenPercent:
		return exec.applyArithmetic(op, left, right, pos)
	case tokenAmp, tokenPipe, tokenCaret, tokenLShift, tokenRShift:
		return exec.applyBitwise(op, left, right, pos)
	case tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE:
		return exec.applyComparison(op, left, right, pos)
	default:
		return Value{}, exec.errorAt(pos, ErrTypeMismatch, "unsupported operator '%s'", op)
	}
}

func (exec *Execution) applyArithmetic(op TokenType, left, right Value, pos Position) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return Value{}, exec.errorAt(pos, ErrTypeMismatch,
			"operator '%s' requires numbers, got %s and %s", op, left.Kind(), right.Kind())
	}

	l, r := left.Number(), right.Number()
	switch op {
	case tokenPlus:
		return NewNumber(l + r), nil
	case tokenMinus:
		return NewNumber(l - r), nil
	case tokenAsterisk:
		return NewNumber(l * r), nil
	case tokenSlash:
		if r == 0 {
			return Value{}, exec.errorAt(pos, ErrDivisionByZero, "division by zero")
		}
		return NewNumber(l / r), nil
	default:
		if r == 0 {
			return Value{}, exec.errorAt(pos, ErrDivisionByZero, "modulo by zero")
		}
		return NewNumber(math.Mod(l, r)), nil
	}
}

// applyBitwise operates on integer-valued numbers; the result is carried
// back into the float representation.
func (exec *Execution) applyBitwise(op TokenType, left, right Value, pos Position) (Value, error) {
	opName := "'" + string(op) + "'"
	l, err := exec.integerOperand(opName, left, pos)
	if err != nil {
		return Value{}, err
	}
	r, err := exec.integerOperand(opName, right, pos)
	if err != nil {
		return Value{}, err
	}

	switch op {
	case tokenAmp:
		return NewNumber(float64(l & r)), nil
	case tokenPipe:
		return NewNumber(float64(l | r)), nil
	case tokenCaret:
		return NewNumber(float64(l ^ r)), nil
	case tokenLShift:
		if r < 0 {
			return Value{}, exec.errorAt(pos, ErrTypeMismatch, "negative shift count")
		}
		return NewNumber(float64(l << uint64(r))), nil
	default:
		if r < 0 {
			return Value{}, exec.errorAt(pos, ErrTypeMismatch, "negative shift count")
		}
		return NewNumber(float64(l >> uint64(r))), nil
	}
}

func (exec *Execution) applyComparison(op TokenType, left, right Value, pos Position) (Value, error) {
	if left.Kind() != right.Kind() {
		return Value{}, exec.errorAt(pos, ErrTypeMismatch,
			"cannot compare %s with %s", left.Kind(), right.Kind())
	}

	var cmp int
	switch left.Kind() {
	case KindNumber:
		switch {
		case left.Number() < right.Number():
			cmp = -1
		case left.Number() > right.Number():
			cmp = 1
		}
	case KindString:
		switch {
		case left.Text() < right.Text():
			cmp = -1
		case left.Text() > right.Text():
			cmp = 1
		}
	}

	switch op {
	case tokenEQ:
		return newComparison(left.Equal(right)), nil
	case tokenNotEQ:
		return newComparison(!left.Equal(right)), nil
	case tokenLT:
		return newComparison(cmp < 0), nil
	case tokenLTE:
		return newComparison(cmp <= 0), nil
	case tokenGT:
		return newComparison(cmp > 0), nil
	default:
		return newComparison(cmp >= 0), nil
	}
}

func (exec *Execution) integerOperand(opName string, v Value, pos Position) (int64, error) {
	if v.Kind() != KindNumber {
		return 0, exec.errorAt(pos, ErrTypeMismatch, "operator %s requires numbers, got %s", opName, v.Kind())
	}
	f := v.Number()
	if f != math.Trunc(f) {
		return 0, exec.errorAt(pos, ErrTypeMismatch, "operator %s requires integer-valued numbers, got %s", opName, v.String())
	}
	return int64(f), nil
}
