/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import (
	"fmt"
	"math"
)

// MinOperands is the number of operands every operator requires
const MinOperands = 2

// Evaluator evaluates an AST against a symbol table
type Evaluator struct {
	symbols *SymbolTable
}

// NewEvaluator creates a new evaluator. Bindings made by let are written to
// symbols.
func NewEvaluator(symbols *SymbolTable) *Evaluator {
	return &Evaluator{symbols: symbols}
}

// Eval evaluates node. Bindings committed before an error are kept.
func (e *Evaluator) Eval(node Node) (Value, error) {
	switch n := node.(type) {
	case *NumberLit:
		return n.Value, nil

	case *SymbolRef:
		return e.lookup(n)

	case *LetExpr:
		val, err := e.Eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		return e.bind(n, val), nil

	case *OpApply:
		// Operands run left to right, so let side effects in earlier operands
		// are visible to later ones
		operands := make([]Value, 0, len(n.Operands))
		for _, operand := range n.Operands {
			val, err := e.Eval(operand)
			if err != nil {
				return Value{}, err
			}
			operands = append(operands, val)
		}
		return e.apply(n, operands)
	}

	return Value{}, fmt.Errorf("unknown node type %T", node)
}

func (e *Evaluator) lookup(n *SymbolRef) (Value, error) {
	val, ok := e.symbols.Lookup(n.Name)
	if !ok {
		return Value{}, &Error{Kind: UnknownSymbol, Pos: n.Pos, Text: n.Name}
	}
	return val, nil
}

func (e *Evaluator) bind(n *LetExpr, val Value) Value {
	e.symbols.Bind(n.Name, val)
	return val
}

// apply checks arity and folds already evaluated operands from the left
func (e *Evaluator) apply(n *OpApply, operands []Value) (Value, error) {
	if len(operands) < MinOperands {
		return Value{}, &Error{Kind: ArityError, Pos: n.Pos, Text: n.Op.String(), Min: MinOperands}
	}

	acc := operands[0]
	for _, next := range operands[1:] {
		var err error
		acc, err = e.evalBinaryOp(n, acc, next)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// evalBinaryOp applies one step of an operator's left fold
func (e *Evaluator) evalBinaryOp(n *OpApply, left, right Value) (Value, error) {
	switch n.Op {
	case TOKEN_AND:
		return NewBool(left.AsBool() && right.AsBool()), nil
	case TOKEN_OR:
		return NewBool(left.AsBool() || right.AsBool()), nil

	case TOKEN_EQ:
		return NewBool(left.Equal(right)), nil

	case TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		c, ok := compare(left, right)
		if !ok {
			return NewBool(false), nil
		}
		switch n.Op {
		case TOKEN_LT:
			return NewBool(c < 0), nil
		case TOKEN_GT:
			return NewBool(c > 0), nil
		case TOKEN_LE:
			return NewBool(c <= 0), nil
		default:
			return NewBool(c >= 0), nil
		}
	}

	// Booleans take part in arithmetic as 0 and 1
	if left.IsFloat() || right.IsFloat() {
		return floatOp(n, left.AsFloat(), right.AsFloat())
	}
	return intOp(n, left.AsInt(), right.AsInt())
}

// compare orders two values numerically, returning -1, 0 or 1. ok is false
// when a NaN is involved. Integers are compared against floats exactly rather
// than through a float64 conversion.
func compare(left, right Value) (c int, ok bool) {
	switch {
	case left.IsFloat() && right.IsFloat():
		l, r := left.AsFloat(), right.AsFloat()
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		case l == r:
			return 0, true
		}
		return 0, false
	case right.IsFloat():
		return compareIntFloat(left.AsInt(), right.AsFloat())
	case left.IsFloat():
		c, ok := compareIntFloat(right.AsInt(), left.AsFloat())
		return -c, ok
	}

	l, r := left.AsInt(), right.AsInt()
	switch {
	case l < r:
		return -1, true
	case l > r:
		return 1, true
	}
	return 0, true
}

// 2^63 and -2^63 are exact in float64
const (
	int64UpperFloat = float64(1 << 63)
	int64LowerFloat = -float64(1 << 63)
)

func compareIntFloat(i int64, f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= int64UpperFloat:
		return -1, true
	case f < int64LowerFloat:
		return 1, true
	}

	whole := math.Trunc(f)
	w := int64(whole)
	switch {
	case i < w:
		return -1, true
	case i > w:
		return 1, true
	case f > whole:
		return -1, true
	case f < whole:
		return 1, true
	}
	return 0, true
}

func intOp(n *OpApply, l, r int64) (Value, error) {
	switch n.Op {
	case TOKEN_PLUS:
		sum := l + r
		if (l^sum)&(r^sum) < 0 {
			return Value{}, arithmeticError(n, "integer overflow")
		}
		return NewInt(sum), nil

	case TOKEN_MINUS:
		diff := l - r
		if (l^r)&(l^diff) < 0 {
			return Value{}, arithmeticError(n, "integer overflow")
		}
		return NewInt(diff), nil

	case TOKEN_STAR:
		prod, ok := mulInt(l, r)
		if !ok {
			return Value{}, arithmeticError(n, "integer overflow")
		}
		return NewInt(prod), nil

	case TOKEN_SLASH:
		// Integer division floors, so (/ -7 2) is -4
		if r == 0 {
			return Value{}, arithmeticError(n, "division by zero")
		}
		if l == math.MinInt64 && r == -1 {
			return Value{}, arithmeticError(n, "integer overflow")
		}
		q := l / r
		if l%r != 0 && (l < 0) != (r < 0) {
			q--
		}
		return NewInt(q), nil

	case TOKEN_PERCENT:
		// The result takes the sign of the divisor
		if r == 0 {
			return Value{}, arithmeticError(n, "modulo by zero")
		}
		m := l % r
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return NewInt(m), nil

	case TOKEN_POWER:
		if r < 0 {
			if l == 0 {
				return Value{}, arithmeticError(n, "zero cannot be raised to a negative power")
			}
			return NewFloat(math.Pow(float64(l), float64(r))), nil
		}
		result, ok := powInt(l, r)
		if !ok {
			return Value{}, arithmeticError(n, "integer overflow")
		}
		return NewInt(result), nil
	}

	return Value{}, fmt.Errorf("unknown operator %s", n.Op)
}

func floatOp(n *OpApply, l, r float64) (Value, error) {
	switch n.Op {
	case TOKEN_PLUS:
		return NewFloat(l + r), nil
	case TOKEN_MINUS:
		return NewFloat(l - r), nil
	case TOKEN_STAR:
		return NewFloat(l * r), nil

	case TOKEN_SLASH:
		if r == 0 {
			return Value{}, arithmeticError(n, "division by zero")
		}
		return NewFloat(l / r), nil

	case TOKEN_PERCENT:
		if r == 0 {
			return Value{}, arithmeticError(n, "modulo by zero")
		}
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return NewFloat(m), nil

	case TOKEN_POWER:
		if l == 0 && r < 0 {
			return Value{}, arithmeticError(n, "zero cannot be raised to a negative power")
		}
		if l < 0 && r != math.Trunc(r) {
			return Value{}, arithmeticError(n, "negative number cannot be raised to a fractional power")
		}
		result := math.Pow(l, r)
		if math.IsInf(result, 0) && !math.IsInf(l, 0) && !math.IsInf(r, 0) {
			return Value{}, arithmeticError(n, "numeric overflow")
		}
		return NewFloat(result), nil
	}

	return Value{}, fmt.Errorf("unknown operator %s", n.Op)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
		return 0, false
	}
	return c, true
}

// powInt computes base^exp for exp >= 0 by repeated squaring
func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			var ok bool
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}
