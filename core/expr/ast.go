/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import "strings"

// Node is the interface for all AST nodes
type Node interface {
	node()
	// Position returns the character offset of the node's leading token
	Position() int
	String() string
}

// NumberLit represents a numeric literal
type NumberLit struct {
	Value Value
	Pos   int
}

func (n *NumberLit) node()          {}
func (n *NumberLit) Position() int  { return n.Pos }
func (n *NumberLit) String() string { return n.Value.String() }

// SymbolRef represents a read of a bound symbol
type SymbolRef struct {
	Name string
	Pos  int
}

func (n *SymbolRef) node()          {}
func (n *SymbolRef) Position() int  { return n.Pos }
func (n *SymbolRef) String() string { return n.Name }

// LetExpr binds the value of Operand to Name
type LetExpr struct {
	Name    string
	Operand Node
	Pos     int // position of the let keyword
}

func (n *LetExpr) node()         {}
func (n *LetExpr) Position() int { return n.Pos }
func (n *LetExpr) String() string {
	return "(let " + n.Name + " " + n.Operand.String() + ")"
}

// OpApply applies a variadic operator to its operands
type OpApply struct {
	Op       TokenType
	Operands []Node
	Pos      int // position of the operator token
}

func (n *OpApply) node()         {}
func (n *OpApply) Position() int { return n.Pos }
func (n *OpApply) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.Op.String())
	for _, operand := range n.Operands {
		sb.WriteString(" ")
		sb.WriteString(operand.String())
	}
	sb.WriteString(")")
	return sb.String()
}
