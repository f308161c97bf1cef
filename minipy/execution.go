package minipy

import "fmt"

// Execution walks the AST in source order against a single flat
// environment. Nothing is shared between executions, so independent
// programs can run concurrently on separate Execution values.
type Execution struct {
	script *Script
	env    *Env
	sink   OutputSink
}

func (exec *Execution) runProgram() error {
	return exec.evalStatements(exec.script.program.Statements)
}

func (exec *Execution) evalStatements(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := exec.evalStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) evalStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *AssignStmt:
		return exec.evalAssignStatement(s)
	case *PrintStmt:
		value, err := exec.evalExpression(s.Value)
		if err != nil {
			return err
		}
		exec.sink.WriteLine(value.String())
		return nil
	case *IfStmt:
		return exec.evalIfStatement(s)
	case *WhileStmt:
		return exec.evalWhileStatement(s)
	default:
		return exec.errorAt(stmt.Pos(), ErrTypeMismatch, "unsupported statement")
	}
}

func (exec *Execution) evalAssignStatement(s *AssignStmt) error {
	value, err := exec.evalExpression(s.Value)
	if err != nil {
		return err
	}

	if s.Op != "" {
		current, ok := exec.env.Get(s.Name)
		if !ok {
			return exec.errorAt(s.Pos(), ErrUndefinedVariable, "undefined variable %q", s.Name)
		}
		value, err = exec.applyBinary(s.Op, current, value, s.Pos())
		if err != nil {
			return err
		}
	}

	exec.env.Set(s.Name, value)
	return nil
}

func (exec *Execution) evalIfStatement(s *IfStmt) error {
	truthy, err := exec.evalCondition(s.Condition)
	if err != nil {
		return err
	}
	if truthy {
		return exec.evalStatements(s.Consequent)
	}
	return exec.evalStatements(s.Alternate)
}

func (exec *Execution) evalWhileStatement(s *WhileStmt) error {
	for {
		truthy, err := exec.evalCondition(s.Condition)
		if err != nil {
			return err
		}
		if !truthy {
			return nil
		}
		if err := exec.evalStatements(s.Body); err != nil {
			return err
		}
	}
}

// evalCondition enforces that branch and loop conditions are numbers;
// truthiness is `!= 0.0`.
func (exec *Execution) evalCondition(expr Expression) (bool, error) {
	value, err := exec.evalExpression(expr)
	if err != nil {
		return false, err
	}
	if value.Kind() != KindNumber {
		return false, exec.errorAt(expr.Pos(), ErrTypeMismatch, "condition must be a number, got %s", value.Kind())
	}
	return value.Truthy(), nil
}

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *Identifier:
		value, ok := exec.env.Get(e.Name)
		if !ok {
			return Value{}, exec.errorAt(e.Pos(), ErrUndefinedVariable, "undefined variable %q", e.Name)
		}
		return value, nil
	case *UnaryExpr:
		right, err := exec.evalExpression(e.Right)
		if err != nil {
			return Value{}, err
		}
		return exec.applyUnary(e.Operator, right, e.Pos())
	case *BinaryExpr:
		left, err := exec.evalExpression(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := exec.evalExpression(e.Right)
		if err != nil {
			return Value{}, err
		}
		return exec.applyBinary(e.Operator, left, right, e.Pos())
	default:
		return Value{}, exec.errorAt(expr.Pos(), ErrTypeMismatch, "unsupported expression")
	}
}

func (exec *Execution) errorAt(pos Position, kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Pos:       pos,
		CodeFrame: formatCodeFrame(exec.script.source, pos),
	}
}
