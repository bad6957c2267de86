// Package texmath converts LaTeX math markup into symbolic expressions.
//
// It covers the subset of math-mode LaTeX that shows up in generated
// physics documents: numbers, single-letter and Greek variables, the four
// arithmetic operators with implicit multiplication, exponents, \frac,
// \sqrt, and the standard function commands. Anything else is a parse
// error, reported with the offending position.
package texmath

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokLetter
	tokCommand // name following a backslash
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	if t.kind == tokCommand {
		return `\` + t.text
	}
	return t.text
}

// spacing commands carry no meaning for parsing and are dropped by the lexer.
var spacingCommands = map[string]bool{
	",": true, ";": true, "!": true, ":": true, " ": true,
	"quad": true, "qquad": true,
}

type lexer struct {
	src []rune
	pos int
}

func newLexer(src string) *lexer { return &lexer{src: []rune(src)} }

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '\\':
		return l.lexCommand()
	case unicode.IsDigit(c):
		for l.pos < len(l.src) && (unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.pos++
		}
		text := string(l.src[start:l.pos])
		if strings.Count(text, ".") > 1 {
			return token{}, fmt.Errorf("texmath: invalid number %q at position %d", text, start)
		}
		return token{kind: tokNumber, text: text, pos: start}, nil
	case unicode.IsLetter(c):
		l.pos++
		return token{kind: tokLetter, text: string(c), pos: start}, nil
	}
	l.pos++
	switch c {
	case '+':
		return token{kind: tokPlus, text: "+", pos: start}, nil
	case '-':
		return token{kind: tokMinus, text: "-", pos: start}, nil
	case '*':
		return token{kind: tokStar, text: "*", pos: start}, nil
	case '/':
		return token{kind: tokSlash, text: "/", pos: start}, nil
	case '^':
		return token{kind: tokCaret, text: "^", pos: start}, nil
	case '(':
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case '{':
		return token{kind: tokLBrace, text: "{", pos: start}, nil
	case '}':
		return token{kind: tokRBrace, text: "}", pos: start}, nil
	}
	return token{}, fmt.Errorf("texmath: unexpected character %q at position %d", c, start)
}

func (l *lexer) lexCommand() (token, error) {
	start := l.pos
	l.pos++ // consume backslash
	if l.pos >= len(l.src) {
		return token{}, fmt.Errorf("texmath: dangling backslash at position %d", start)
	}
	var name string
	if unicode.IsLetter(l.src[l.pos]) {
		nameStart := l.pos
		for l.pos < len(l.src) && unicode.IsLetter(l.src[l.pos]) {
			l.pos++
		}
		name = string(l.src[nameStart:l.pos])
	} else {
		name = string(l.src[l.pos])
		l.pos++
	}
	if spacingCommands[name] {
		return l.next()
	}
	switch name {
	// \left and \right are transparent: the delimiter that follows is
	// lexed on the next call.
	case "left", "right":
		return l.next()
	// \cdot and \times are explicit multiplication.
	case "cdot", "times":
		return token{kind: tokStar, text: name, pos: start}, nil
	}
	return token{kind: tokCommand, text: name, pos: start}, nil
}

// tokenize runs the lexer to completion so the parser can look ahead.
func tokenize(src string) ([]token, error) {
	l := newLexer(src)
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}
