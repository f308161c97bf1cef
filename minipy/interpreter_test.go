package minipy

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func runSource(t *testing.T, source string) []string {
	t.Helper()
	lines, err := Run(source)
	if err != nil {
		t.Fatalf("run %q: %v", source, err)
	}
	return lines
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("line count: got %d want %d\ngot: %q", len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func runtimeError(t *testing.T, source string, kind RuntimeErrorKind) *RuntimeError {
	t.Helper()
	_, err := Run(source)
	if err == nil {
		t.Fatalf("run %q: expected runtime error", source)
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("run %q: expected *RuntimeError, got %T (%v)", source, err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("run %q: kind %s, want %s", source, rerr.Kind, kind)
	}
	return rerr
}

func TestComparisonsPrintAsFloats(t *testing.T) {
	source := "x = 10\ny = 5\nprint(x > y)\nprint(x < y)\nprint(x == y)\n"
	assertLines(t, runSource(t, source), []string{"1.0", "0.0", "0.0"})
}

func TestIfElseBranching(t *testing.T) {
	source := "x = 10\nif x > 5:\n    print(100)\nelse:\n    print(200)\n"
	assertLines(t, runSource(t, source), []string{"100"})

	source = "x = 3\nif x > 5:\n    print(100)\nelse:\n    print(200)\n"
	assertLines(t, runSource(t, source), []string{"200"})
}

func TestWhileLoopCountsUp(t *testing.T) {
	source := "counter = 0\nwhile counter < 5:\n    print(counter)\n    counter = counter + 1\n"
	assertLines(t, runSource(t, source), []string{"0", "1", "2", "3", "4"})
}

func TestStringValues(t *testing.T) {
	source := "greeting = \"Hello, World!\"\nprint(greeting)\nprint(\"direct\")\n"
	assertLines(t, runSource(t, source), []string{"Hello, World!", "direct"})
}

func TestNumberFormatting(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"print(42)\n", "42"},
		{"print(100)\n", "100"},
		{"print(0)\n", "0"},
		{"print(3.14)\n", "3.14"},
		{"print(2.50)\n", "2.5"},
		{"print(10 / 4)\n", "2.5"},
		{"print(7 / 2)\n", "3.5"},
		{"print(1 + 2)\n", "3"},
		{"print(-5)\n", "-5"},
		{"print(10.)\n", "10"},
	}
	for _, tc := range cases {
		assertLines(t, runSource(t, tc.source), []string{tc.want})
	}
}

func TestPrintedNumbersRoundTrip(t *testing.T) {
	for _, literal := range []string{"42", "3.14", "0.1", "123456.789", "2"} {
		lines := runSource(t, "print("+literal+")\n")
		parsed, err := strconv.ParseFloat(lines[0], 64)
		if err != nil {
			t.Fatalf("output %q does not parse: %v", lines[0], err)
		}
		want, _ := strconv.ParseFloat(literal, 64)
		if parsed != want {
			t.Fatalf("round trip %s: got %v", literal, parsed)
		}
	}
}

func TestArithmeticOperators(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"6 + 4", "10"},
		{"6 - 4", "2"},
		{"6 * 4", "24"},
		{"6 / 4", "1.5"},
		{"7 % 3", "1"},
		{"7.5 % 2", "1.5"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
	}
	for _, tc := range cases {
		assertLines(t, runSource(t, "print("+tc.expr+")\n"), []string{tc.want})
	}
}

func TestBitwiseOperators(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"12 & 10", "8"},
		{"12 | 10", "14"},
		{"12 ^ 10", "6"},
		{"5 << 2", "20"},
		{"20 >> 2", "5"},
		{"~5", "-6"},
		{"8 | 4 & 2", "8"},
	}
	for _, tc := range cases {
		assertLines(t, runSource(t, "print("+tc.expr+")\n"), []string{tc.want})
	}
}

func TestBitwiseRequiresIntegerOperands(t *testing.T) {
	runtimeError(t, "print(1.5 & 2)\n", ErrTypeMismatch)
	runtimeError(t, "print(~0.5)\n", ErrTypeMismatch)
	runtimeError(t, "print(1 << 2.5)\n", ErrTypeMismatch)
}

func TestNegativeShiftCount(t *testing.T) {
	rerr := runtimeError(t, "print(1 << -1)\n", ErrTypeMismatch)
	if !strings.Contains(rerr.Message, "negative shift") {
		t.Fatalf("message: %q", rerr.Message)
	}
}

func TestUnaryOperators(t *testing.T) {
	source := "x = 5\nprint(-x)\nprint(+x)\nprint(not 0)\nprint(not 3)\nprint(not x > 2)\n"
	assertLines(t, runSource(t, source), []string{"-5", "5", "1.0", "0.0", "0.0"})
}

func TestStringComparison(t *testing.T) {
	source := "print(\"abc\" < \"abd\")\nprint(\"abc\" == \"abc\")\nprint(\"b\" >= \"a\")\nprint(\"a\" != \"a\")\n"
	assertLines(t, runSource(t, source), []string{"1.0", "1.0", "1.0", "0.0"})
}

func TestComparisonResultInArithmetic(t *testing.T) {
	// A comparison result is still a number once it flows onward.
	source := "x = 3 > 2\nprint(x + 1)\n"
	assertLines(t, runSource(t, source), []string{"2"})
}

func TestAugmentedAssignment(t *testing.T) {
	source := "x = 10\nx += 5\nprint(x)\nx -= 3\nprint(x)\nx *= 2\nprint(x)\nx /= 4\nprint(x)\nx %= 4\nprint(x)\n"
	assertLines(t, runSource(t, source), []string{"15", "12", "24", "6", "2"})

	source = "x = 12\nx &= 10\nprint(x)\nx |= 4\nprint(x)\nx ^= 1\nprint(x)\nx <<= 2\nprint(x)\nx >>= 1\nprint(x)\n"
	assertLines(t, runSource(t, source), []string{"8", "12", "13", "52", "26"})
}

func TestAugmentedAssignmentRequiresExistingVariable(t *testing.T) {
	rerr := runtimeError(t, "missing += 1\n", ErrUndefinedVariable)
	if !strings.Contains(rerr.Message, "missing") {
		t.Fatalf("message: %q", rerr.Message)
	}
}

func TestStringConcatenationRejected(t *testing.T) {
	runtimeError(t, "print(\"a\" + \"b\")\n", ErrTypeMismatch)
	runtimeError(t, "print(1 + \"b\")\n", ErrTypeMismatch)
}

func TestMixedComparisonRejected(t *testing.T) {
	rerr := runtimeError(t, "print(1 == \"1\")\n", ErrTypeMismatch)
	if !strings.Contains(rerr.Message, "cannot compare") {
		t.Fatalf("message: %q", rerr.Message)
	}
}

func TestConditionMustBeNumber(t *testing.T) {
	runtimeError(t, "if \"yes\":\n    print(1)\n", ErrTypeMismatch)
	runtimeError(t, "while \"yes\":\n    print(1)\n", ErrTypeMismatch)
}

func TestDivisionByZero(t *testing.T) {
	rerr := runtimeError(t, "print(1 / 0)\n", ErrDivisionByZero)
	if !strings.Contains(rerr.Message, "division by zero") {
		t.Fatalf("message: %q", rerr.Message)
	}
	runtimeError(t, "print(1 % 0)\n", ErrDivisionByZero)
	runtimeError(t, "x = 0\nprint(10 / x)\n", ErrDivisionByZero)
}

func TestUndefinedVariable(t *testing.T) {
	rerr := runtimeError(t, "print(ghost)\n", ErrUndefinedVariable)
	if !strings.Contains(rerr.Message, "ghost") {
		t.Fatalf("message: %q", rerr.Message)
	}
}

func TestOutputBeforeErrorIsKept(t *testing.T) {
	lines, err := Run("print(1)\nprint(2)\nprint(ghost)\n")
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	assertLines(t, lines, []string{"1", "2"})
}

func TestRuntimeErrorCarriesCodeFrame(t *testing.T) {
	rerr := runtimeError(t, "x = 1\nprint(ghost)\n", ErrUndefinedVariable)
	if rerr.Pos.Line != 2 {
		t.Fatalf("error line: got %d want 2", rerr.Pos.Line)
	}
	if !strings.Contains(rerr.CodeFrame, "print(ghost)") {
		t.Fatalf("code frame missing source line:\n%s", rerr.CodeFrame)
	}
}

func TestWhileFalseConditionSkipsBody(t *testing.T) {
	assertLines(t, runSource(t, "while 0:\n    print(1)\nprint(2)\n"), []string{"2"})
}

func TestIfFalseWithoutElse(t *testing.T) {
	assertLines(t, runSource(t, "if 0:\n    print(1)\n"), nil)
}

func TestNestedControlFlow(t *testing.T) {
	source := "i = 0\nwhile i < 3:\n    if i > 0:\n        print(i)\n    i = i + 1\n"
	assertLines(t, runSource(t, source), []string{"1", "2"})
}

func TestInlineSuiteExecution(t *testing.T) {
	source := "x = 10\nif x > 5: print(100) else: print(200)\n"
	assertLines(t, runSource(t, source), []string{"100"})
}

func TestReassignmentChangesKind(t *testing.T) {
	source := "v = 42\nprint(v)\nv = \"now a string\"\nprint(v)\nv = 1.5\nprint(v)\n"
	assertLines(t, runSource(t, source), []string{"42", "now a string", "1.5"})
}

func TestRunIsDeterministic(t *testing.T) {
	source := "total = 0\ni = 0\nwhile i < 10:\n    total = total + i\n    i = i + 1\nprint(total)\n"
	first := runSource(t, source)
	second := runSource(t, source)
	assertLines(t, first, []string{"45"})
	assertLines(t, second, first)
}

func TestScriptReusableAcrossEnvs(t *testing.T) {
	script, err := Compile("x = x + 1\nprint(x)\n")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	env := NewEnv()
	env.Set("x", NewNumber(1))
	var buf LineBuffer
	if err := script.Execute(env, &buf); err != nil {
		t.Fatalf("execute: %v", err)
	}
	assertLines(t, buf.Lines(), []string{"2"})

	other := NewEnv()
	other.Set("x", NewNumber(40))
	var buf2 LineBuffer
	if err := script.Execute(other, &buf2); err != nil {
		t.Fatalf("execute: %v", err)
	}
	assertLines(t, buf2.Lines(), []string{"41"})
}

func TestEnvPersistsAcrossScripts(t *testing.T) {
	env := NewEnv()
	var buf LineBuffer

	first, err := Compile("x = 7\n")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := first.Execute(env, &buf); err != nil {
		t.Fatalf("execute: %v", err)
	}

	second, err := Compile("print(x * 2)\n")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := second.Execute(env, &buf); err != nil {
		t.Fatalf("execute: %v", err)
	}
	assertLines(t, buf.Lines(), []string{"14"})
}

func TestEnvNamesSorted(t *testing.T) {
	env := NewEnv()
	env.Set("zeta", NewNumber(1))
	env.Set("alpha", NewNumber(2))
	env.Set("mid", NewNumber(3))
	names := env.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("names: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names: got %v want %v", names, want)
		}
	}
}

func TestWriterSink(t *testing.T) {
	var sb strings.Builder
	script, err := Compile("print(1)\nprint(\"two\")\n")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := script.Execute(NewEnv(), NewWriterSink(&sb)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := sb.String(), "1\ntwo\n"; got != want {
		t.Fatalf("writer output: got %q want %q", got, want)
	}
}

func TestEmptyProgramProducesNoOutput(t *testing.T) {
	assertLines(t, runSource(t, ""), nil)
}
