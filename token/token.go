// Package token implements the stateful, single-pass lexer that turns an
// expression's source text into a stream of tokens for the parser. It is
// driven one token at a time by the parser (Next) with a single token of
// lookahead buffered by the caller; identifiers are resolved against a
// catalog.Scope at lex time, not left as raw strings for the parser to
// look up later.
package token

import (
	"fmt"
	"strconv"

	"github.com/axion-lang/axion/catalog"
)

// Kind categorizes a Token.
type Kind int

const (
	Number Kind = iota
	Ident
	OpenParen
	CloseParen
	Comma
	Op
	End
	Error
)

// Token is a transient lexical unit. Pos is the 1-based count of source
// characters consumed up to and including this token; combined with a
// single-token lookahead parser, Pos at the moment a token is first seen
// already identifies exactly where a syntax error should be reported.
type Token struct {
	Kind Kind
	Pos  int
	Num  float64
	Op   byte
	// Entry is non-nil only for Kind == Ident, and references the
	// resolved catalog entry (constant, function or bound variable).
	Entry *catalog.Entry
	// Err describes why Kind == Error was produced.
	Err string
}

// Lexer advances through source text one token at a time.
type Lexer struct {
	src   string
	pos   int
	scope *catalog.Scope
}

// New returns a lexer over src, resolving identifiers against scope (which
// may be nil, meaning only the builtin catalog is consulted).
func New(src string, scope *catalog.Scope) *Lexer {
	return &Lexer{src: src, scope: scope}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentTail(c byte) bool { return isAlpha(c) || isDigit(c) || c == '_' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Next produces the next token, advancing the cursor past it.
func (l *Lexer) Next() Token {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Kind: End, Pos: l.pos}
	}

	c := l.src[l.pos]
	switch {
	case isDigit(c) || c == '.':
		return l.lexNumber()
	case isAlpha(c):
		return l.lexIdent()
	case c == '(':
		l.pos++
		return Token{Kind: OpenParen, Pos: l.pos}
	case c == ')':
		l.pos++
		return Token{Kind: CloseParen, Pos: l.pos}
	case c == ',':
		l.pos++
		return Token{Kind: Comma, Pos: l.pos}
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '^' || c == '%':
		l.pos++
		return Token{Kind: Op, Op: c, Pos: l.pos}
	default:
		l.pos++
		return Token{Kind: Error, Pos: l.pos, Err: fmt.Sprintf("unexpected character %q", c)}
	}
}

// lexNumber reads decimal digits, an optional '.', and an optional
// [eE][+-]?digits exponent. A malformed exponent (no digits following e/E)
// is not consumed, mirroring strtod's partial-parse behavior in the
// original C engine this is ported from: the 'e' is left for the next
// token rather than raising a lexical error.
func (l *Lexer) lexNumber() Token {
	start := l.pos
	sawDigit := false

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
		sawDigit = true
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
			sawDigit = true
		}
	}
	if !sawDigit {
		return Token{Kind: Error, Pos: l.pos, Err: "invalid number: lone '.'"}
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		expDigits := false
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
			expDigits = true
		}
		if !expDigits {
			l.pos = save
		}
	}

	text := l.src[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{Kind: Error, Pos: l.pos, Err: fmt.Sprintf("invalid number %q", text)}
	}
	return Token{Kind: Number, Num: v, Pos: l.pos}
}

// lexIdent reads a run of letters/digits/underscores starting with a
// letter and resolves it immediately against the combined scope, per the
// lexer's identifier-resolved-at-lex-time contract.
func (l *Lexer) lexIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentTail(l.src[l.pos]) {
		l.pos++
	}
	name := l.src[start:l.pos]

	entry, ok := l.scope.Lookup(name)
	if !ok {
		return Token{Kind: Error, Pos: l.pos, Err: fmt.Sprintf("unknown identifier %q", name)}
	}
	return Token{Kind: Ident, Entry: entry, Pos: l.pos}
}
