/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the problems the lexer, parser and evaluator report
type ErrorKind int

const (
	LexError            ErrorKind = iota // unrecognized character, skipped
	NumberOverflowError                  // literal out of range, replaced by zero
	SyntaxError                          // token stream does not match the grammar
	UnknownSymbol                        // symbol read before it was bound
	ArityError                           // operator applied to too few operands
	ArithmeticError                      // division by zero, overflow and friends
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case NumberOverflowError:
		return "NumberOverflowError"
	case SyntaxError:
		return "SyntaxError"
	case UnknownSymbol:
		return "UnknownSymbol"
	case ArityError:
		return "ArityError"
	case ArithmeticError:
		return "ArithmeticError"
	default:
		return "UnknownError"
	}
}

// Fatal reports whether an error of this kind aborts the current line.
// Lexical problems are only diagnostics.
func (k ErrorKind) Fatal() bool {
	return k != LexError && k != NumberOverflowError
}

// Error is a structured evaluation error. The fields are kept separate so the
// caller decides how to render them; Error() gives the default rendering.
type Error struct {
	Kind ErrorKind
	Pos  int // character offset of the offending token, -1 at end of input
	Line int // lexer line counter; zero for evaluation errors

	// Text is the offending character, token, symbol name, operator or literal,
	// depending on Kind
	Text string

	// Min is the minimum operand count for ArityError
	Min int

	// Detail is "Integer" or "Float" for NumberOverflowError and the failure
	// description for ArithmeticError
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case LexError:
		return fmt.Sprintf("Illegal character '%s' at position %d", e.Text, e.Pos)
	case NumberOverflowError:
		return fmt.Sprintf("%s value too large: %s", e.Detail, e.Text)
	case SyntaxError:
		if e.Pos < 0 {
			return "Malformed expression (missing closing parenthesis?)"
		}
		return fmt.Sprintf("Syntax error at '%s' (position %d)", e.Text, e.Pos)
	case UnknownSymbol:
		return fmt.Sprintf("Unknown symbol '%s' at position %d", e.Text, e.Pos)
	case ArityError:
		return fmt.Sprintf("Operator '%s' at position %d requires at least %d operands", e.Text, e.Pos, e.Min)
	case ArithmeticError:
		return fmt.Sprintf("Operator '%s' at position %d: %s", e.Text, e.Pos, e.Detail)
	default:
		return fmt.Sprintf("error at position %d", e.Pos)
	}
}

// IsKind reports whether err, or any error it wraps, is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// FormatError renders an error for display at the REPL boundary
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return err.Error()
	}
	return fmt.Sprintf("error: %v", err)
}

func syntaxError(tok Token) *Error {
	if tok.Type == TOKEN_EOF {
		return &Error{Kind: SyntaxError, Pos: -1, Line: tok.Line}
	}
	return &Error{Kind: SyntaxError, Pos: tok.Pos, Line: tok.Line, Text: tok.Value}
}

func arithmeticError(op *OpApply, detail string) *Error {
	return &Error{Kind: ArithmeticError, Pos: op.Pos, Text: op.Op.String(), Detail: detail}
}
