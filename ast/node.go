// Package ast defines the compact tree representation the parser builds
// and the evaluator walks: a tagged node type that unifies constants,
// variable bindings and n-ary function/operator applications.
package ast

import (
	"math"

	"github.com/axion-lang/axion/catalog"
)

// Kind discriminates the variant a Node holds.
type Kind int

const (
	KindConstant Kind = iota
	KindVariable
	KindApply
)

// Node is a tagged record: exactly one of the fields below is meaningful,
// selected by Kind. Nodes are created only by the parser, never mutated
// after parsing finishes, and are acyclic — each node owns its children
// exclusively.
type Node struct {
	Kind     Kind
	Value    float64        // KindConstant
	Ref      *float64       // KindVariable: host-owned storage, re-read every Eval
	Op       *catalog.Entry // KindApply
	Children []*Node        // KindApply
}

// Constant builds a literal leaf.
func Constant(v float64) *Node {
	return &Node{Kind: KindConstant, Value: v}
}

// Variable builds a leaf that re-reads ref on every evaluation.
func Variable(ref *float64) *Node {
	return &Node{Kind: KindVariable, Ref: ref}
}

// Apply builds a function/operator application. Callers are responsible
// for ensuring len(children) == op.Arity; the parser enforces this at
// compile time per the engine's arity invariant.
func Apply(op *catalog.Entry, children ...*Node) *Node {
	return &Node{Kind: KindApply, Op: op, Children: children}
}

// AllConstant reports whether every node in nodes is a KindConstant leaf,
// the precondition the parser checks before folding a pure apply node.
func AllConstant(nodes []*Node) bool {
	for _, n := range nodes {
		if n.Kind != KindConstant {
			return false
		}
	}
	return true
}

// Eval walks the tree post-order and returns its value. It never fails:
// domain violations in catalog functions propagate as NaN or ±Inf per
// IEEE-754, and evaluating the same tree repeatedly is always safe as
// long as it isn't disposed concurrently with the read.
func (n *Node) Eval() float64 {
	if n == nil {
		return math.NaN()
	}
	switch n.Kind {
	case KindConstant:
		return n.Value
	case KindVariable:
		return *n.Ref
	case KindApply:
		args := make([]float64, len(n.Children))
		for i, c := range n.Children {
			args[i] = c.Eval()
		}
		return n.Op.Call(args)
	default:
		return math.NaN()
	}
}

// Release recursively drops every reference reachable from n, so disposal
// is O(nodes) and a disposed subtree cannot be accidentally re-evaluated
// through a dangling pointer held elsewhere in the same tree.
func (n *Node) Release() {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		c.Release()
	}
	n.Children = nil
	n.Op = nil
	n.Ref = nil
}
