/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import "fmt"

// Kind is the type of a value, or the statically inferred type of an expression
type Kind int

const (
	KindUnknown Kind = iota // Unbound symbol, nothing known
	KindInt                 // Integer value
	KindFloat               // Floating-point value
	KindBool                // Boolean value
	KindNumber              // Int or float, only decided at run time
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// TypeChecker infers the result kind of an AST without evaluating it. Kinds
// of bound symbols come from the symbol table; let expressions inside the
// checked tree are tracked in a private overlay so the table is never touched.
type TypeChecker struct {
	symbols *SymbolTable
	overlay map[string]Kind
}

// NewTypeChecker creates a new type checker. symbols may be nil.
func NewTypeChecker(symbols *SymbolTable) *TypeChecker {
	return &TypeChecker{symbols: symbols}
}

// Check performs kind inference on the AST and returns the result kind.
// Operator arity is checked the same way the evaluator checks it.
func (tc *TypeChecker) Check(node Node) (Kind, error) {
	tc.overlay = make(map[string]Kind)
	return tc.check(node)
}

func (tc *TypeChecker) check(node Node) (Kind, error) {
	switch n := node.(type) {
	case *NumberLit:
		return n.Value.Kind(), nil

	case *SymbolRef:
		return tc.symbolKind(n.Name), nil

	case *LetExpr:
		k, err := tc.check(n.Operand)
		if err != nil {
			return KindUnknown, err
		}
		tc.overlay[n.Name] = k
		return k, nil

	case *OpApply:
		kinds := make([]Kind, 0, len(n.Operands))
		for _, operand := range n.Operands {
			k, err := tc.check(operand)
			if err != nil {
				return KindUnknown, err
			}
			kinds = append(kinds, k)
		}
		if len(kinds) < MinOperands {
			return KindUnknown, &Error{Kind: ArityError, Pos: n.Pos, Text: n.Op.String(), Min: MinOperands}
		}
		acc := kinds[0]
		for _, k := range kinds[1:] {
			acc = tc.checkBinaryOp(n.Op, acc, k)
		}
		return acc, nil
	}

	return KindUnknown, fmt.Errorf("unknown node type %T", node)
}

func (tc *TypeChecker) symbolKind(name string) Kind {
	if k, ok := tc.overlay[name]; ok {
		return k
	}
	if tc.symbols != nil {
		if v, ok := tc.symbols.Lookup(name); ok {
			return v.Kind()
		}
	}
	return KindUnknown
}

// checkBinaryOp infers the kind of one fold step. Arithmetic failures such
// as division by zero are run-time errors and are not predicted.
func (tc *TypeChecker) checkBinaryOp(op TokenType, left, right Kind) Kind {
	switch op {
	case TOKEN_EQ, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE, TOKEN_AND, TOKEN_OR:
		return KindBool
	}

	if left == KindUnknown || right == KindUnknown {
		return KindUnknown
	}
	if left == KindFloat || right == KindFloat {
		return KindFloat
	}
	if left == KindNumber || right == KindNumber {
		return KindNumber
	}

	// Both sides are int or bool
	if op == TOKEN_POWER {
		// A negative exponent turns the result into a float
		return KindNumber
	}
	return KindInt
}
