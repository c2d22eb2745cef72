package syntax

import (
	"unicode/utf8"
)

var keywords = map[string]TokenType{
	"int":   INT,
	"while": WHILE,
	"if":    IF,
	"else":  ELSE,
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// Tokenize scans the whole of src. The returned slice always ends with an EOF token.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	var out []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Type == EOF {
			return out, nil
		}
	}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peek2() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else if utf8.RuneStart(c) {
		l.col++
	}
	return c
}

func (l *lexer) here() Pos {
	return Pos{Offset: l.pos, Line: l.line, Col: l.col}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// skipTrivia discards whitespace and comments.
func (l *lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case isSpace(c):
			l.advance()
		case c == '/' && l.peek2() == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peek2() == '*':
			start := l.pos
			l.advance()
			l.advance()
			closed := false
			for l.pos < len(l.src) {
				if l.peek() == '*' && l.peek2() == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return &LexError{Char: '/', Offset: start, Msg: "unterminated block comment"}
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	start := l.here()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Pos: start}, nil
	}
	c := l.peek()
	switch {
	case isLetter(c):
		for l.pos < len(l.src) && (isLetter(l.peek()) || isDigit(l.peek())) {
			l.advance()
		}
		lexeme := l.src[start.Offset:l.pos]
		tt := IDENT
		if kw, ok := keywords[lexeme]; ok {
			tt = kw
		}
		return Token{Type: tt, Lexeme: lexeme, Pos: start}, nil
	case isDigit(c):
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
		return Token{Type: NUMBER, Lexeme: l.src[start.Offset:l.pos], Pos: start}, nil
	}

	tt, width := operator(c, l.peek2())
	if width == 0 {
		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		return Token{}, &LexError{Char: r, Offset: l.pos}
	}
	for i := 0; i < width; i++ {
		l.advance()
	}
	return Token{Type: tt, Lexeme: l.src[start.Offset:l.pos], Pos: start}, nil
}

// operator matches the longest operator or punctuation starting with c.
func operator(c, next byte) (TokenType, int) {
	switch c {
	case '+':
		return PLUS, 1
	case '-':
		return MINUS, 1
	case '*':
		return STAR, 1
	case '/':
		return SLASH, 1
	case '<':
		if next == '=' {
			return LESS_EQ, 2
		}
		return LESS, 1
	case '>':
		if next == '=' {
			return GREATER_EQ, 2
		}
		return GREATER, 1
	case '=':
		if next == '=' {
			return EQUALS, 2
		}
		return ASSIGN, 1
	case ';':
		return SEMICOLON, 1
	case '(':
		return LPAREN, 1
	case ')':
		return RPAREN, 1
	case '{':
		return LBRACE, 1
	case '}':
		return RBRACE, 1
	}
	return EOF, 0
}
