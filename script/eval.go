package script

import (
	"github.com/chewxy/math32"

	"github.com/gasandbox/pga"
)

// Env holds the variables visible to a script. Assignments are
// remembered in first-assignment order so callers can turn the
// results into scene layers deterministically.
type Env struct {
	vars  map[string]pga.Multivector
	order []string
}

// NewEnv returns an environment with the basis blades e0, e1, e2,
// e01, e02, e12 and e012 predefined. Predefined names do not appear
// in Names until a script assigns over them.
func NewEnv() *Env {
	return &Env{vars: map[string]pga.Multivector{
		"e0":   {E0: 1},
		"e1":   {E1: 1},
		"e2":   {E2: 1},
		"e01":  {E01: 1},
		"e02":  {E02: 1},
		"e12":  {E12: 1},
		"e012": {E012: 1},
	}}
}

// Get looks up a variable.
func (e *Env) Get(name string) (pga.Multivector, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set assigns a variable, recording the name on first assignment.
func (e *Env) Set(name string, value pga.Multivector) {
	if !e.assigned(name) {
		e.order = append(e.order, name)
	}
	e.vars[name] = value
}

func (e *Env) assigned(name string) bool {
	for _, n := range e.order {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns the assigned variable names in first-assignment
// order.
func (e *Env) Names() []string {
	return e.order
}

// Run evaluates every statement of the program against the
// environment.
func (e *Env) Run(prog *Program) error {
	for i := range prog.Statements {
		stmt := &prog.Statements[i]
		value, err := e.eval(stmt.Value)
		if err != nil {
			return err
		}
		e.Set(stmt.Name, value)
	}
	return nil
}

func (e *Env) eval(expr Expr) (pga.Multivector, error) {
	switch expr := expr.(type) {
	case *NameExpr:
		v, ok := e.vars[expr.Name]
		if !ok {
			return pga.Zero, errorAt(expr.Pos, "unknown variable %q", expr.Name)
		}
		return v, nil

	case *NumberExpr:
		return pga.Scalar(expr.Value), nil

	case *UnaryExpr:
		operand, err := e.eval(expr.Operand)
		if err != nil {
			return pga.Zero, err
		}
		switch expr.Op {
		case OpNegate:
			return operand.Neg(), nil
		case OpDual:
			return operand.Dual(), nil
		case OpReverse:
			return operand.Reverse(), nil
		case OpNormalize:
			return operand.Normalized(), nil
		case OpMagnitude:
			return pga.Scalar(operand.Magnitude()), nil
		case OpSin:
			return pga.Scalar(math32.Sin(operand.S)), nil
		case OpCos:
			return pga.Scalar(math32.Cos(operand.S)), nil
		case OpASin:
			return pga.Scalar(math32.Asin(operand.S)), nil
		case OpACos:
			return pga.Scalar(math32.Acos(operand.S)), nil
		}

	case *BinaryExpr:
		left, err := e.eval(expr.Left)
		if err != nil {
			return pga.Zero, err
		}
		right, err := e.eval(expr.Right)
		if err != nil {
			return pga.Zero, err
		}
		switch expr.Op {
		case OpAdd:
			return left.Add(right), nil
		case OpSubtract:
			return left.Sub(right), nil
		case OpMultiply:
			return left.Mul(right), nil
		case OpDivide:
			// Division is only defined by a nonzero scalar.
			if right.Grade(0) != right {
				return pga.Zero, errorAt(expr.Pos, "divisor must be a scalar")
			}
			if right.S == 0 {
				return pga.Zero, errorAt(expr.Pos, "division by zero")
			}
			return left.DivScalar(right.S), nil
		case OpWedge:
			return left.Wedge(right), nil
		case OpInner:
			return left.Inner(right), nil
		case OpRegressive:
			return left.Regressive(right), nil
		}
	}
	return pga.Zero, errorAt(expr.Position(), "unsupported expression")
}
