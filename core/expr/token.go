/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_NUMBER
	TOKEN_SYMBOL
	TOKEN_LPAREN
	TOKEN_RPAREN

	// Operators
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_POWER   // ^
	TOKEN_PERCENT // %
	TOKEN_EQ      // =
	TOKEN_LT      // <
	TOKEN_GT      // >
	TOKEN_LE      // <=
	TOKEN_GE      // >=

	// Keywords
	TOKEN_LET // let
	TOKEN_AND // and
	TOKEN_OR  // or
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "end of input",
	TOKEN_NUMBER:  "number",
	TOKEN_SYMBOL:  "symbol",
	TOKEN_LPAREN:  "(",
	TOKEN_RPAREN:  ")",
	TOKEN_PLUS:    "+",
	TOKEN_MINUS:   "-",
	TOKEN_STAR:    "*",
	TOKEN_SLASH:   "/",
	TOKEN_POWER:   "^",
	TOKEN_PERCENT: "%",
	TOKEN_EQ:      "=",
	TOKEN_LT:      "<",
	TOKEN_GT:      ">",
	TOKEN_LE:      "<=",
	TOKEN_GE:      ">=",
	TOKEN_LET:     "let",
	TOKEN_AND:     "and",
	TOKEN_OR:      "or",
}

// String returns the operator or keyword spelling, or a description of the token kind
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsOperator reports whether the token can head an operator application
func (t TokenType) IsOperator() bool {
	return (t >= TOKEN_PLUS && t <= TOKEN_GE) || t == TOKEN_AND || t == TOKEN_OR
}

var keywords = map[string]TokenType{
	"let": TOKEN_LET,
	"and": TOKEN_AND,
	"or":  TOKEN_OR,
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string // source text of the token
	Num   Value  // parsed literal, set for TOKEN_NUMBER only
	Pos   int    // character offset in the line
	Line  int
}
