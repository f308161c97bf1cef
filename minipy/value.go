package minipy

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the closed set of runtime value kinds.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the runtime representation: a 64-bit float or a string. There
// is no boolean kind; comparisons yield a Number holding exactly 1.0 or
// 0.0. Such results carry the comparison flag, which only changes how the
// value formats when printed.
type Value struct {
	kind       ValueKind
	num        float64
	str        string
	comparison bool
}

func NewNumber(f float64) Value { return Value{kind: KindNumber, num: f} }
func NewString(s string) Value  { return Value{kind: KindString, str: s} }

func newComparison(b bool) Value {
	v := Value{kind: KindNumber, comparison: true}
	if b {
		v.num = 1.0
	}
	return v
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Number() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// String renders the value the way print emits it: strings verbatim,
// numbers minimally, comparison results with one forced fractional digit.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.comparison {
			return strconv.FormatFloat(v.num, 'f', 1, 64)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy maps a Number to a branch decision. Callers must reject
// non-number values first; conditions are numbers only.
func (v Value) Truthy() bool {
	return v.kind == KindNumber && v.num != 0
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	default:
		return false
	}
}
