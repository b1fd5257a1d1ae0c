/*
Parser Module - Recursive Descent Compiler
===========================================

This module implements a recursive descent parser for the arithmetic
expression grammar, with a single token of lookahead maintained in cur.
It constructs the compact ast.Node tree directly — there is no separate
untyped AST stage — folding constant subtrees as soon as a pure operator
or function application is built over all-constant children.

Operator precedence (ascending, i.e. later productions bind tighter):

	expr   := term  ( ('+'|'-') term  )*          left-assoc
	term   := factor ( ('*'|'/'|'%') factor )*     left-assoc
	factor := power  ( '^' factor )?               right-assoc
	power  := ('-'|'+') power | base               unary sign, repeatable
	base   := number | identifier | '(' expr ')'

A function identifier is followed by either a parenthesized, comma-
separated argument list, or — without any parentheses at all — a single
argument parsed at the precedence of power (so "sqrt 100" and "sin .5"
both apply without requiring parens, and in "sin 2^2" sin's argument is
just "2", giving (sin 2)^2).

Because the parser keeps exactly one token of lookahead (cur), the
lexer's running character count at the moment cur was produced already
identifies the position to report for any syntax error: either an
unexpected token while parsing a primary, or leftover input once the
top-level expression is done. See Token.Pos in the token package.
*/
package parser

import (
	"fmt"

	"github.com/axion-lang/axion/ast"
	"github.com/axion-lang/axion/catalog"
	"github.com/axion-lang/axion/token"
)

// SyntaxError is the engine's only diagnostic channel: a 1-based character
// position into the source plus a human-readable reason. Position 0 is
// reserved by convention for "no error" and is never produced by Error.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Pos, e.Msg)
}

// Parser holds recursive-descent state: the lexer plus one buffered
// lookahead token.
type Parser struct {
	lex *token.Lexer
	cur token.Token
}

// New primes the parser by lexing the first token of src, resolving
// identifiers against scope (nil means builtins only).
func New(src string, scope *catalog.Scope) *Parser {
	p := &Parser{lex: token.New(src, scope)}
	p.advance()
	return p
}

func (p *Parser) advance() { p.cur = p.lex.Next() }

func (p *Parser) pos() int {
	if p.cur.Pos <= 0 {
		return 1
	}
	return p.cur.Pos
}

func (p *Parser) errHere(msg string) *SyntaxError {
	return &SyntaxError{Pos: p.pos(), Msg: msg}
}

func (p *Parser) errToken() *SyntaxError {
	return p.errHere(p.cur.Err)
}

// Parse compiles the full source into a tree root, folding constants as it
// goes. The first syntax error aborts compilation immediately; no partial
// tree is ever returned.
func Parse(src string, scope *catalog.Scope) (*ast.Node, *SyntaxError) {
	p := New(src, scope)
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Error {
		return nil, p.errToken()
	}
	if p.cur.Kind != token.End {
		return nil, p.errHere("unexpected trailing input")
	}
	return node, nil
}

func (p *Parser) parseExpr() (*ast.Node, *SyntaxError) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Op && (p.cur.Op == '+' || p.cur.Op == '-') {
		opByte := p.cur.Op
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := catalog.OpAdd
		if opByte == '-' {
			op = catalog.OpSub
		}
		node = p.fold(op, node, rhs)
	}
	return node, nil
}

func (p *Parser) parseTerm() (*ast.Node, *SyntaxError) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Op && (p.cur.Op == '*' || p.cur.Op == '/' || p.cur.Op == '%') {
		opByte := p.cur.Op
		p.advance()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		var op *catalog.Entry
		switch opByte {
		case '*':
			op = catalog.OpMul
		case '/':
			op = catalog.OpDiv
		default:
			op = catalog.OpMod
		}
		node = p.fold(op, node, rhs)
	}
	return node, nil
}

// parseFactor implements right-associative '^' by recursing back into
// parseFactor (rather than parsePower) for the right-hand side, so a
// leading unary sign on the exponent itself is reachable via the next
// parsePower call that recursion makes.
func (p *Parser) parseFactor() (*ast.Node, *SyntaxError) {
	node, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Op && p.cur.Op == '^' {
		p.advance()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node = p.fold(catalog.OpPow, node, rhs)
	}
	return node, nil
}

// parsePower collapses a run of unary +/- by nesting negations (their
// parity falls out naturally at fold/eval time) before falling through to
// a primary expression.
func (p *Parser) parsePower() (*ast.Node, *SyntaxError) {
	if p.cur.Kind == token.Op && (p.cur.Op == '+' || p.cur.Op == '-') {
		opByte := p.cur.Op
		p.advance()
		child, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		if opByte == '-' {
			return p.fold1(catalog.OpNeg, child), nil
		}
		return child, nil
	}
	return p.parseBase()
}

func (p *Parser) parseBase() (*ast.Node, *SyntaxError) {
	switch p.cur.Kind {
	case token.Error:
		return nil, p.errToken()

	case token.Number:
		v := p.cur.Num
		p.advance()
		return ast.Constant(v), nil

	case token.Ident:
		entry := p.cur.Entry
		p.advance()
		switch entry.Kind {
		case catalog.KindConstant:
			return ast.Constant(entry.Value), nil
		case catalog.KindVariable:
			return ast.Variable(entry.Ref), nil
		case catalog.KindFunction:
			return p.parseFunctionCall(entry)
		default:
			return nil, p.errHere(fmt.Sprintf("identifier %q is not callable here", entry.Name))
		}

	case token.OpenParen:
		p.advance()
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != token.CloseParen {
			if p.cur.Kind == token.Error {
				return nil, p.errToken()
			}
			return nil, p.errHere("expected ')'")
		}
		p.advance()
		return node, nil

	default:
		return nil, p.errHere("expected a number, identifier, or '('")
	}
}

// parseFunctionCall parses the argument production:
//
//	argument := power | '(' list ')'
//
// A parenthesized call accepts zero or more comma-separated expressions;
// the no-parens shorthand always supplies exactly one argument at power
// precedence. Either way, the resulting argument count must match the
// catalog entry's declared arity or compilation fails here.
func (p *Parser) parseFunctionCall(entry *catalog.Entry) (*ast.Node, *SyntaxError) {
	var args []*ast.Node

	if p.cur.Kind == token.OpenParen {
		p.advance()
		if p.cur.Kind != token.CloseParen {
			first, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, first)
			for p.cur.Kind == token.Comma {
				p.advance()
				n, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, n)
			}
		}
		if p.cur.Kind != token.CloseParen {
			if p.cur.Kind == token.Error {
				return nil, p.errToken()
			}
			return nil, p.errHere("expected ')'")
		}
		p.advance()
	} else {
		n, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		args = []*ast.Node{n}
	}

	if len(args) != entry.Arity {
		return nil, p.errHere(fmt.Sprintf("function %q requires %d argument(s), got %d", entry.Name, entry.Arity, len(args)))
	}
	return p.foldN(entry, args), nil
}

// fold, fold1 and foldN implement constant folding: an apply node built
// from a pure op over all-constant children is replaced immediately by
// its computed value, per the engine's invariant that no such node
// survives compilation.
func (p *Parser) foldN(op *catalog.Entry, args []*ast.Node) *ast.Node {
	if op.Pure && ast.AllConstant(args) {
		vals := make([]float64, len(args))
		for i, a := range args {
			vals[i] = a.Value
		}
		return ast.Constant(op.Call(vals))
	}
	return ast.Apply(op, args...)
}

func (p *Parser) fold(op *catalog.Entry, a, b *ast.Node) *ast.Node {
	return p.foldN(op, []*ast.Node{a, b})
}

func (p *Parser) fold1(op *catalog.Entry, a *ast.Node) *ast.Node {
	return p.foldN(op, []*ast.Node{a})
}
