// Package parser implements a small expression language over the Lumina
// constant folder: literals with kind suffixes, BOZ literals, array
// constructors, intrinsic calls with keyword arguments, and the relational
// and logical operators. It exists for the driver tools and tests; the
// compiler proper binds expressions from its own front end.
package parser

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenInt
	tokenReal
	tokenString
	tokenBOZ
	tokenIdent
	tokenDotWord // .true., .and., .lt., ...
	tokenOp      // relational operators and punctuation
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return fmt.Errorf("column %d: %s", pos+1, fmt.Sprintf(format, args...))
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.input[l.pos]
	switch {
	case c >= '0' && c <= '9':
		return l.lexNumber(start)
	case c == '.':
		if l.pos+1 < len(l.input) && isLetter(l.input[l.pos+1]) {
			return l.lexDotWord(start)
		}
		return l.lexNumber(start)
	case c == '"' || c == '\'':
		return l.lexString(start, c)
	case isLetter(c):
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '\'' && isBOZPrefix(c) {
			return l.lexBOZ(start)
		}
		return l.lexIdent(start)
	case strings.ContainsRune("()[],=<>/+-", rune(c)):
		return l.lexOperator(start)
	default:
		return token{}, l.errorf(start, "unexpected character %q", c)
	}
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isBOZPrefix(c byte) bool {
	switch c {
	case 'b', 'B', 'o', 'O', 'z', 'Z':
		return true
	}
	return false
}

func (l *lexer) lexNumber(start int) (token, error) {
	kind := tokenInt
	digits := func() {
		for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
			l.pos++
		}
	}
	digits()
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		// A dot followed by a letter starts a dotted operator (2.and.x),
		// not a fractional part.
		if l.pos+1 >= len(l.input) || !isLetter(l.input[l.pos+1]) {
			kind = tokenReal
			l.pos++
			digits()
		}
	}
	if l.pos < len(l.input) {
		switch l.input[l.pos] {
		case 'e', 'E', 'd', 'D':
			kind = tokenReal
			l.lexExponent()
		}
	}
	// Optional kind suffix.
	if l.pos < len(l.input) && l.input[l.pos] == '_' {
		l.pos++
		digits()
	}
	return token{kind: kind, text: strings.ToLower(l.input[start:l.pos]), pos: start}, nil
}

func (l *lexer) lexExponent() {
	l.pos++
	if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
		l.pos++
	}
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
	}
}

func (l *lexer) lexDotWord(start int) (token, error) {
	l.pos++ // leading dot
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) || l.input[l.pos] != '.' {
		return token{}, l.errorf(start, "unterminated operator %q", l.input[start:l.pos])
	}
	l.pos++ // trailing dot
	return token{kind: tokenDotWord, text: strings.ToLower(l.input[start:l.pos]), pos: start}, nil
}

func (l *lexer) lexString(start int, quote byte) (token, error) {
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == quote {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == quote {
				sb.WriteByte(quote) // doubled quote escapes itself
				l.pos += 2
				continue
			}
			l.pos++
			return token{kind: tokenString, text: sb.String(), pos: start}, nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return token{}, l.errorf(start, "unterminated character literal")
}

func (l *lexer) lexBOZ(start int) (token, error) {
	l.pos += 2 // prefix letter and opening quote
	for l.pos < len(l.input) && l.input[l.pos] != '\'' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{}, l.errorf(start, "unterminated BOZ literal")
	}
	l.pos++
	return token{kind: tokenBOZ, text: strings.ToLower(l.input[start:l.pos]), pos: start}, nil
}

func (l *lexer) lexIdent(start int) (token, error) {
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || (l.input[l.pos] >= '0' && l.input[l.pos] <= '9')) {
		l.pos++
	}
	return token{kind: tokenIdent, text: strings.ToLower(l.input[start:l.pos]), pos: start}, nil
}

func (l *lexer) lexOperator(start int) (token, error) {
	c := l.input[l.pos]
	l.pos++
	two := func(next byte) bool {
		if l.pos < len(l.input) && l.input[l.pos] == next {
			l.pos++
			return true
		}
		return false
	}
	switch c {
	case '<', '>':
		two('=')
	case '=':
		two('=')
	case '/':
		if !two('=') {
			return token{}, l.errorf(start, "unexpected character %q", c)
		}
	}
	return token{kind: tokenOp, text: l.input[start:l.pos], pos: start}, nil
}
