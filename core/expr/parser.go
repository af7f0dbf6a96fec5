/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

// Parser parses a token stream into an AST.
//
// Grammar:
//
//	result     := statement EOF
//	statement  := '(' expression ')'
//	expression := 'let' SYMBOL operand
//	            | op operand operand*
//	operand    := statement | NUMBER | SYMBOL
//
// Operator arity is not a grammar concern; it is checked at evaluation time so
// that the error can name the operator's minimum.
//
// When driven by ParseEval, the parser also evaluates each construct as soon as
// it is complete: a symbol when it is read, a let once its operand is known, an
// operator application when its closing parenthesis is reached. Errors and
// bindings therefore happen in source order, and a later syntax error does not
// undo a let that already ran.
type Parser struct {
	tokens []Token
	pos    int
	cur    Token

	ev     *Evaluator
	values map[Node]Value
}

// NewParser creates a new parser over an already tokenized line. The token
// slice must end with TOKEN_EOF, as Tokenize guarantees.
func NewParser(tokens []Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) == 0 {
		p.tokens = []Token{{Type: TOKEN_EOF}}
	}
	p.cur = p.tokens[0]
	return p
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.cur = p.tokens[p.pos]
}

func (p *Parser) expect(typ TokenType) error {
	if p.cur.Type != typ {
		return syntaxError(p.cur)
	}
	p.advance()
	return nil
}

// ParseEval parses exactly one statement like Parse, evaluating it against ev
// along the way, and returns the statement's value
func (p *Parser) ParseEval(ev *Evaluator) (Value, error) {
	p.ev = ev
	p.values = make(map[Node]Value)
	defer func() { p.ev, p.values = nil, nil }()

	stmt, err := p.Parse()
	if err != nil {
		return Value{}, err
	}
	return p.values[stmt], nil
}

// Parse parses exactly one statement and requires the input to end after it
func (p *Parser) Parse() (Node, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TOKEN_EOF {
		return nil, syntaxError(p.cur)
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (Node, error) {
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseExpression() (Node, error) {
	if p.cur.Type == TOKEN_LET {
		return p.parseLet()
	}

	if !p.cur.Type.IsOperator() {
		return nil, syntaxError(p.cur)
	}
	apply := &OpApply{Op: p.cur.Type, Pos: p.cur.Pos}
	p.advance()

	// operands := operand | operand operands
	for {
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		apply.Operands = append(apply.Operands, operand)
		if !p.startsOperand() {
			break
		}
	}

	if p.ev != nil && p.cur.Type == TOKEN_RPAREN {
		operands := make([]Value, len(apply.Operands))
		for i, operand := range apply.Operands {
			operands[i] = p.values[operand]
		}
		val, err := p.ev.apply(apply, operands)
		if err != nil {
			return nil, err
		}
		p.values[apply] = val
	}
	return apply, nil
}

func (p *Parser) parseLet() (Node, error) {
	let := &LetExpr{Pos: p.cur.Pos}
	p.advance()

	if p.cur.Type != TOKEN_SYMBOL {
		return nil, syntaxError(p.cur)
	}
	let.Name = p.cur.Value
	p.advance()

	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	let.Operand = operand
	if p.ev != nil {
		p.values[let] = p.ev.bind(let, p.values[operand])
	}
	return let, nil
}

func (p *Parser) startsOperand() bool {
	switch p.cur.Type {
	case TOKEN_LPAREN, TOKEN_NUMBER, TOKEN_SYMBOL:
		return true
	}
	return false
}

func (p *Parser) parseOperand() (Node, error) {
	switch p.cur.Type {
	case TOKEN_LPAREN:
		return p.parseStatement()

	case TOKEN_NUMBER:
		lit := &NumberLit{Value: p.cur.Num, Pos: p.cur.Pos}
		if p.ev != nil {
			p.values[lit] = lit.Value
		}
		p.advance()
		return lit, nil

	case TOKEN_SYMBOL:
		ref := &SymbolRef{Name: p.cur.Value, Pos: p.cur.Pos}
		if p.ev != nil {
			val, err := p.ev.lookup(ref)
			if err != nil {
				return nil, err
			}
			p.values[ref] = val
		}
		p.advance()
		return ref, nil

	default:
		return nil, syntaxError(p.cur)
	}
}
