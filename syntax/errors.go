package syntax

import (
	"fmt"
	"strings"
)

// LexError reports a character the lexer does not recognize.
type LexError struct {
	Char   rune
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("lex error at offset %d: unexpected character %q", e.Offset, e.Char)
}

// ParseError reports the first grammar violation found in a token stream.
type ParseError struct {
	Expected []string
	Found    Token
	Msg      string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %s: ", e.Found.Pos)
	if e.Msg != "" {
		b.WriteString(e.Msg)
		return b.String()
	}
	fmt.Fprintf(&b, "expected %s, found %s", strings.Join(e.Expected, " or "), e.Found)
	return b.String()
}
