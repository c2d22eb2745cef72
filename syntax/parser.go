package syntax

import (
	"fmt"
	"strconv"
)

// Parser builds a statement tree from a token slice.
//
// Grammar:
//
//	program  = seq EOF
//	seq      = stmt ((";" | <after "}">) stmt)* ";"?
//	stmt     = "int" IDENT ("=" expr)?
//	         | IDENT "=" expr
//	         | "while" "(" expr ")" block
//	         | "if" "(" expr ")" block ("else" block)?
//	         | block
//	block    = "{" seq? "}"
//	expr     = additive (("<" | "<=" | ">" | ">=" | "==") additive)?
//	additive = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = primary (("*" | "/") primary)*
//	primary  = NUMBER | IDENT | "(" expr ")"
//
// Sequences fold to the right: a; b; c is Seq(a, Seq(b, c)).
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses a whole program.
func Parse(src string) (Stmt, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		var last Pos
		if len(p.tokens) > 0 {
			last = p.tokens[len(p.tokens)-1].Pos
		}
		return Token{Type: EOF, Pos: last}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) expected(what ...string) error {
	return &ParseError{Expected: what, Found: p.peek()}
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.peek().Type != tt {
		return Token{}, p.expected(tt.String())
	}
	return p.advance(), nil
}

// ParseProgram parses the full token stream. No partial tree is returned on error.
func (p *Parser) ParseProgram() (Stmt, error) {
	s, err := p.parseSeq(EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseSeq(end TokenType) (Stmt, error) {
	if p.peek().Type == end {
		if end == RBRACE {
			return &Skip{}, nil
		}
		return nil, p.expected("statement")
	}
	var stmts []Stmt
	for {
		s, braced, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		switch next := p.peek().Type; {
		case next == SEMICOLON:
			p.advance()
		case next != end && !braced:
			return nil, p.expected(SEMICOLON.String(), end.String())
		}
		if p.peek().Type == end {
			break
		}
	}
	out := stmts[len(stmts)-1]
	for i := len(stmts) - 2; i >= 0; i-- {
		out = &Seq{First: stmts[i], Second: out}
	}
	return out, nil
}

// parseStatement also reports whether the statement ended with a closing brace,
// after which the separating ';' may be omitted.
func (p *Parser) parseStatement() (Stmt, bool, error) {
	tok := p.peek()
	switch tok.Type {
	case INT:
		s, err := p.parseDecl()
		return s, false, err
	case IDENT:
		s, err := p.parseAssign()
		return s, false, err
	case WHILE:
		s, err := p.parseWhile()
		return s, true, err
	case IF:
		s, err := p.parseIf()
		return s, true, err
	case LBRACE:
		s, err := p.parseBlock()
		return s, true, err
	case SEMICOLON:
		return nil, false, &ParseError{
			Expected: []string{"statement"},
			Found:    tok,
			Msg:      "dangling ';' with no statement before it",
		}
	}
	return nil, false, p.expected("statement")
}

func (p *Parser) parseDecl() (Stmt, error) {
	kw := p.advance()
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	d := &Decl{Name: name.Lexeme, Source: kw.Pos}
	if p.peek().Type == ASSIGN {
		p.advance()
		d.Init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (p *Parser) parseAssign() (Stmt, error) {
	name := p.advance()
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Assign{Name: name.Lexeme, Expr: e, Source: name.Pos}, nil
}

func (p *Parser) parseGuard() (Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	kw := p.advance()
	cond, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body, Source: kw.Pos}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	kw := p.advance()
	cond, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	s := &If{Cond: cond, Then: then, Source: kw.Pos}
	if p.peek().Type == ELSE {
		p.advance()
		s.Else, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *Parser) parseBlock() (Stmt, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseSeq(RBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return body, nil
}

var comparisons = map[TokenType]Op{
	LESS:       LT,
	LESS_EQ:    LE,
	GREATER:    GT,
	GREATER_EQ: GE,
	EQUALS:     EQ,
}

// parseExpression allows at most one comparison.
func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := comparisons[p.peek().Type]
	if !ok {
		return left, nil
	}
	tok := p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, chained := comparisons[p.peek().Type]; chained {
		return nil, &ParseError{
			Found: p.peek(),
			Msg:   fmt.Sprintf("comparison operators do not chain: unexpected %s", p.peek().Type),
		}
	}
	if isComparison(left) || isComparison(right) {
		return nil, &ParseError{
			Found: tok,
			Msg:   fmt.Sprintf("comparison operators do not chain: operand of %s is a comparison", tok.Type),
		}
	}
	return &BinOp{Op: op, Left: left, Right: right, Source: tok.Pos}, nil
}

// isComparison reports whether e is a comparison, which can only happen
// through parentheses.
func isComparison(e Expr) bool {
	b, ok := e.(*BinOp)
	return ok && b.Op.IsComparison()
}

func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().Type {
		case PLUS:
			op = ADD
		case MINUS:
			op = SUB
		default:
			return expr, nil
		}
		tok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Op: op, Left: expr, Right: right, Source: tok.Pos}
	}
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().Type {
		case STAR:
			op = MUL
		case SLASH:
			op = DIV
		default:
			return expr, nil
		}
		tok := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Op: op, Left: expr, Right: right, Source: tok.Pos}
	}
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &ParseError{Found: tok, Msg: fmt.Sprintf("integer literal %s out of range", tok.Lexeme)}
		}
		return &IntLit{Value: v, Source: tok.Pos}, nil
	case IDENT:
		p.advance()
		return &Var{Name: tok.Lexeme, Source: tok.Pos}, nil
	case LPAREN:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.expected("expression")
}
