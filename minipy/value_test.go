package minipy

import "testing"

func TestValueString(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{NewNumber(42), "42"},
		{NewNumber(3.14), "3.14"},
		{NewNumber(-0.5), "-0.5"},
		{NewNumber(0), "0"},
		{newComparison(true), "1.0"},
		{newComparison(false), "0.0"},
		{NewString("hello"), "hello"},
		{NewString(""), ""},
	}
	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Fatalf("String(): got %q want %q", got, tc.want)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	if !NewNumber(1).Truthy() || !NewNumber(-0.1).Truthy() {
		t.Fatalf("nonzero numbers must be truthy")
	}
	if NewNumber(0).Truthy() {
		t.Fatalf("zero must be falsy")
	}
	if NewString("x").Truthy() {
		t.Fatalf("strings are never truthy")
	}
}

func TestValueEqual(t *testing.T) {
	if !NewNumber(2).Equal(NewNumber(2)) {
		t.Fatalf("equal numbers")
	}
	// The comparison flag is a formatting detail, not part of identity.
	if !newComparison(true).Equal(NewNumber(1)) {
		t.Fatalf("comparison result equals plain 1")
	}
	if NewNumber(1).Equal(NewString("1")) {
		t.Fatalf("kinds must match")
	}
	if !NewString("a").Equal(NewString("a")) || NewString("a").Equal(NewString("b")) {
		t.Fatalf("string equality")
	}
}
