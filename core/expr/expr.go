/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors

Package expr implements the Lispy prefix-notation expression language.
It supports:
  - Integer and float literals: 42, -7, 3.14, .5, 2.
  - Symbols bound with let: (let x 5)
  - Arithmetic operators: +, -, *, /, ^, %
  - Comparison operators: =, <, >, <=, >=
  - Logical operators: and, or

Every operator takes two or more operands and folds them from the left, so
(- 10 1 2) is (10-1)-2 and (< 1 2 3) compares the boolean result of (< 1 2)
with 3. Booleans take part in arithmetic and comparison as 0 and 1.
*/
package expr

import "fmt"

// Expression represents a parsed statement ready for evaluation
type Expression struct {
	source string
	ast    Node
}

// Compile tokenizes and parses a single statement. Lexical diagnostics are
// returned even when parsing succeeds.
func Compile(source string) (*Expression, []*Error, error) {
	tokens, diagnostics := Tokenize(source)

	ast, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, diagnostics, err
	}

	return &Expression{
		source: source,
		ast:    ast,
	}, diagnostics, nil
}

// Source returns the original expression source
func (e *Expression) Source() string {
	return e.source
}

// AST returns the parsed tree
func (e *Expression) AST() Node {
	return e.ast
}

// Eval evaluates the expression against symbols
func (e *Expression) Eval(symbols *SymbolTable) (Value, error) {
	return NewEvaluator(symbols).Eval(e.ast)
}

// Result is the outcome of evaluating one line
type Result struct {
	Value       Value
	Diagnostics []*Error // non-fatal lexical problems, in source order
}

// Session owns the symbol table for one interactive run. Bindings persist
// across lines for the lifetime of the session.
type Session struct {
	symbols *SymbolTable
}

// NewSession creates a session with an empty symbol table
func NewSession() *Session {
	return &Session{symbols: NewSymbolTable()}
}

// Symbols returns the session's symbol table
func (s *Session) Symbols() *SymbolTable {
	return s.symbols
}

// ParseAndEvaluate tokenizes one line and evaluates it while parsing. The
// first error, syntactic or not, ends the line; bindings made before it are
// kept.
func (s *Session) ParseAndEvaluate(line string) (Result, error) {
	tokens, diagnostics := Tokenize(line)

	val, err := NewParser(tokens).ParseEval(NewEvaluator(s.symbols))
	if err != nil {
		return Result{Diagnostics: diagnostics}, err
	}
	return Result{Value: val, Diagnostics: diagnostics}, nil
}

// KindOf parses line and reports the statically inferred kind of its result
// without evaluating it
func (s *Session) KindOf(line string) (Kind, error) {
	compiled, _, err := Compile(line)
	if err != nil {
		return KindUnknown, err
	}
	k, err := NewTypeChecker(s.symbols).Check(compiled.AST())
	if err != nil {
		return KindUnknown, fmt.Errorf("type check: %w", err)
	}
	return k, nil
}
