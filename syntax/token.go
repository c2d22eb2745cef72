package syntax

import "fmt"

// TokenType identifies a lexed token.
type TokenType int

const (
	EOF TokenType = iota

	IDENT  // x, loop_count
	NUMBER // 42

	// Keywords
	INT   // "int"
	WHILE // "while"
	IF    // "if"
	ELSE  // "else"

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	LESS    // <
	LESS_EQ // <=
	GREATER // >
	GREATER_EQ
	EQUALS // ==
	ASSIGN // =

	// Punctuation
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
)

var tokenNames = [...]string{
	EOF:        "EOF",
	IDENT:      "identifier",
	NUMBER:     "integer literal",
	INT:        "'int'",
	WHILE:      "'while'",
	IF:         "'if'",
	ELSE:       "'else'",
	PLUS:       "'+'",
	MINUS:      "'-'",
	STAR:       "'*'",
	SLASH:      "'/'",
	LESS:       "'<'",
	LESS_EQ:    "'<='",
	GREATER:    "'>'",
	GREATER_EQ: "'>='",
	EQUALS:     "'=='",
	ASSIGN:     "'='",
	SEMICOLON:  "';'",
	LPAREN:     "'('",
	RPAREN:     "')'",
	LBRACE:     "'{'",
	RBRACE:     "'}'",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Class is the coarse category of a token.
type Class int

const (
	ClassEOF Class = iota
	ClassIdentifier
	ClassInteger
	ClassKeyword
	ClassOperator
	ClassPunctuation
)

func (c Class) String() string {
	switch c {
	case ClassEOF:
		return "end of input"
	case ClassIdentifier:
		return "identifier"
	case ClassInteger:
		return "integer literal"
	case ClassKeyword:
		return "keyword"
	case ClassOperator:
		return "operator"
	case ClassPunctuation:
		return "punctuation"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

func (tt TokenType) Class() Class {
	switch {
	case tt == EOF:
		return ClassEOF
	case tt == IDENT:
		return ClassIdentifier
	case tt == NUMBER:
		return ClassInteger
	case tt >= INT && tt <= ELSE:
		return ClassKeyword
	case tt >= PLUS && tt <= ASSIGN:
		return ClassOperator
	default:
		return ClassPunctuation
	}
}

// Pos is a location in the source text. Offset is in bytes, Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexical unit produced by Tokenize.
type Token struct {
	Type   TokenType
	Lexeme string
	Pos    Pos
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Type.Class(), t.Lexeme)
}
