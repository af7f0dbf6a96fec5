/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import (
	"strconv"
	"strings"
)

// Lexer tokenizes a single input line. It never fails: characters it cannot
// match are skipped and reported through Diagnostics.
type Lexer struct {
	input       string
	pos         int
	ch          byte
	line        int
	diagnostics []*Error
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// Tokenize splits line into tokens, always ending with a TOKEN_EOF token.
// Skipped characters and out-of-range literals are returned as diagnostics.
func Tokenize(line string) ([]Token, []*Error) {
	l := NewLexer(line)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			return tokens, l.Diagnostics()
		}
	}
}

// Diagnostics returns the non-fatal problems found so far
func (l *Lexer) Diagnostics() []*Error {
	return l.diagnostics
}

func (l *Lexer) advance() {
	l.pos++
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
}

func (l *Lexer) peek() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.ch {
		case ' ', '\t', '\r':
		case '\n':
			l.line++
		default:
			return
		}
		l.advance()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		if l.atEnd() {
			return Token{Type: TOKEN_EOF, Pos: l.pos, Line: l.line}
		}

		startPos := l.pos

		// A sign only belongs to a number when digits follow it
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peek())) ||
			(l.ch == '-' && (isDigit(l.peek()) || (l.peek() == '.' && isDigit(l.peekAt(2))))) {
			return l.readNumber(startPos)
		}

		if isIdentStart(l.ch) {
			return l.readIdent(startPos)
		}

		if tok, ok := l.readOperator(startPos); ok {
			return tok
		}

		l.diagnostics = append(l.diagnostics, &Error{
			Kind: LexError,
			Pos:  startPos,
			Line: l.line,
			Text: string(l.ch),
		})
		l.advance()
	}
}

func (l *Lexer) readOperator(startPos int) (Token, bool) {
	var typ TokenType
	switch l.ch {
	case '+':
		typ = TOKEN_PLUS
	case '-':
		typ = TOKEN_MINUS
	case '*':
		typ = TOKEN_STAR
	case '/':
		typ = TOKEN_SLASH
	case '^':
		typ = TOKEN_POWER
	case '%':
		typ = TOKEN_PERCENT
	case '=':
		typ = TOKEN_EQ
	case '(':
		typ = TOKEN_LPAREN
	case ')':
		typ = TOKEN_RPAREN
	case '<':
		typ = TOKEN_LT
		if l.peek() == '=' {
			l.advance()
			typ = TOKEN_LE
		}
	case '>':
		typ = TOKEN_GT
		if l.peek() == '=' {
			l.advance()
			typ = TOKEN_GE
		}
	default:
		return Token{}, false
	}
	l.advance()
	return Token{Type: typ, Value: l.input[startPos:l.pos], Pos: startPos, Line: l.line}, true
}

func (l *Lexer) readNumber(startPos int) Token {
	if l.ch == '-' {
		l.advance()
	}

	hasDecimal := false
	if l.ch == '.' {
		hasDecimal = true
		l.advance()
		l.skipDigits()
	} else {
		l.skipDigits()
		if l.ch == '.' {
			hasDecimal = true
			l.advance()
			l.skipDigits()
		}
	}

	text := l.input[startPos:l.pos]
	tok := Token{Type: TOKEN_NUMBER, Value: text, Pos: startPos, Line: l.line}

	if hasDecimal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.overflow(startPos, text, "Float")
			f = 0
		}
		tok.Num = NewFloat(f)
		return tok
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.overflow(startPos, text, "Integer")
		n = 0
	}
	tok.Num = NewInt(n)
	return tok
}

func (l *Lexer) overflow(pos int, text, kind string) {
	l.diagnostics = append(l.diagnostics, &Error{
		Kind:   NumberOverflowError,
		Pos:    pos,
		Line:   l.line,
		Text:   text,
		Detail: kind,
	})
}

func (l *Lexer) skipDigits() {
	for isDigit(l.ch) {
		l.advance()
	}
}

func (l *Lexer) readIdent(startPos int) Token {
	// Only the first character may be an underscore
	l.advance()
	for isLetter(l.ch) || isDigit(l.ch) {
		l.advance()
	}

	value := l.input[startPos:l.pos]
	if kw, ok := keywords[value]; ok {
		return Token{Type: kw, Value: value, Pos: startPos, Line: l.line}
	}
	return Token{Type: TOKEN_SYMBOL, Value: value, Pos: startPos, Line: l.line}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

// DescribeTokens renders a token stream in a compact form
func DescribeTokens(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch tok.Type {
		case TOKEN_EOF:
			sb.WriteString("EOF")
		case TOKEN_NUMBER:
			sb.WriteString("NUM(" + tok.Num.String() + ")")
		case TOKEN_SYMBOL:
			sb.WriteString("SYM(" + tok.Value + ")")
		default:
			sb.WriteString(tok.Type.String())
		}
	}
	return sb.String()
}
