// Package axion is the public face of the expression engine: compile
// source text once, evaluate the resulting tree as many times as needed
// against live variable storage, then dispose of it. Interpret wraps the
// whole cycle for one-shot callers that don't need variables.
package axion

import (
	"math"

	"github.com/axion-lang/axion/ast"
	"github.com/axion-lang/axion/catalog"
	"github.com/axion-lang/axion/parser"
)

// SyntaxError is the engine's only diagnostic type: a 1-based character
// position into the source plus a human-readable reason. It also
// implements error.
type SyntaxError = parser.SyntaxError

// Variable binds a name used in source text to caller-owned storage. The
// engine re-reads *Ref on every Evaluate call; it never copies the value
// at compile time.
type Variable struct {
	Name string
	Ref  *float64
}

// Tree is a compiled expression ready to be evaluated repeatedly. Its
// zero value is not valid; obtain one from Compile.
type Tree struct {
	root *ast.Node
}

// Compile parses source into a tree, resolving identifiers against the
// builtin catalog plus vars (which shadow builtins of the same name).
// Constant subexpressions are folded during compilation; pure constant
// input therefore compiles to a tree with zero children. On failure it
// returns a nil tree and the first syntax error encountered.
func Compile(source string, vars []Variable) (*Tree, *SyntaxError) {
	scope := catalog.NewScope(toBindings(vars))
	root, err := parser.Parse(source, scope)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

func toBindings(vars []Variable) []catalog.Binding {
	if vars == nil {
		return nil
	}
	bindings := make([]catalog.Binding, len(vars))
	for i, v := range vars {
		bindings[i] = catalog.Binding{Name: v.Name, Ref: v.Ref}
	}
	return bindings
}

// Evaluate walks the tree and returns its current value. It re-reads
// every bound variable's storage, so two calls can return different
// results if the caller mutated a variable in between. Evaluating a
// disposed tree returns NaN.
func (t *Tree) Evaluate() float64 {
	if t == nil {
		return math.NaN()
	}
	return t.root.Eval()
}

// Dispose releases the tree's internal structure. A nil receiver is a
// no-op; calling Dispose more than once is safe.
func (t *Tree) Dispose() {
	if t == nil {
		return
	}
	t.root.Release()
	t.root = nil
}

// Interpret compiles source with no variables, evaluates it once, and
// disposes of the tree before returning. On a syntax error it returns
// NaN alongside the error.
func Interpret(source string) (float64, *SyntaxError) {
	tree, err := Compile(source, nil)
	if err != nil {
		return math.NaN(), err
	}
	defer tree.Dispose()
	return tree.Evaluate(), nil
}
