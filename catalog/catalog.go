// Package catalog holds the fixed table of named constants, functions and
// operators the expression engine understands, plus the per-compile scope
// that layers caller-supplied variables on top of it.
//
// The catalog is data, not dispatch: every entry carries its own arity,
// purity and callable, and both the lexer (identifier resolution) and the
// parser (operator application, constant folding) look entries up rather
// than switching on function names.
package catalog

import "math"

// Kind classifies what an Entry denotes.
type Kind int

const (
	KindConstant Kind = iota
	KindFunction
	KindVariable
	KindOperator
)

// MaxArity bounds the widest entry in the catalog; the tree's apply nodes
// never carry more children than this.
const MaxArity = 7

// Entry describes one named or operator-level catalog member: a constant,
// a pure function, a caller-supplied variable binding, or a syntactic
// operator. Call is invoked with exactly Arity arguments for KindFunction
// and KindOperator entries.
type Entry struct {
	Name  string
	Kind  Kind
	Arity int
	Pure  bool
	Value float64
	Ref   *float64
	Call  func(args []float64) float64
}

// Binding is a caller-supplied (name, address-of-double) pair. Order is
// preserved so repeated Compile calls over the same bindings are
// deterministic, though lookup itself is by name.
type Binding struct {
	Name string
	Ref  *float64
}

func unary(f func(float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0]) }
}

func binary(f func(a, b float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0], args[1]) }
}

// logFactorial returns ln(x!) via the log-gamma function, used by ncr/npr
// to stay well-behaved for large n without overflowing an integer product.
func logFactorial(x float64) float64 {
	v, _ := math.Lgamma(x + 1)
	return v
}

func ncr(n, r float64) float64 {
	if n < 0 || r < 0 || r > n {
		return math.NaN()
	}
	return math.Round(math.Exp(logFactorial(n) - logFactorial(r) - logFactorial(n-r)))
}

func npr(n, r float64) float64 {
	if n < 0 || r < 0 || r > n {
		return math.NaN()
	}
	return math.Round(math.Exp(logFactorial(n) - logFactorial(n-r)))
}

// Builtins is the fixed, order-independent registry of constants and
// functions. It is populated once at init and never mutated afterward, so
// concurrent Compile calls may share it freely.
var Builtins map[string]*Entry

func constant(name string, v float64) *Entry {
	return &Entry{Name: name, Kind: KindConstant, Arity: 0, Pure: true, Value: v}
}

func function(name string, arity int, call func([]float64) float64) *Entry {
	return &Entry{Name: name, Kind: KindFunction, Arity: arity, Pure: true, Call: call}
}

func init() {
	entries := []*Entry{
		constant("pi", 3.14159265358979323846),
		constant("e", 2.71828182845904523536),

		function("abs", 1, unary(math.Abs)),
		function("acos", 1, unary(math.Acos)),
		function("asin", 1, unary(math.Asin)),
		function("atan", 1, unary(math.Atan)),
		function("ceil", 1, unary(math.Ceil)),
		function("cos", 1, unary(math.Cos)),
		function("cosh", 1, unary(math.Cosh)),
		function("exp", 1, unary(math.Exp)),
		function("floor", 1, unary(math.Floor)),
		function("ln", 1, unary(math.Log)),
		function("log", 1, unary(math.Log10)),
		function("sin", 1, unary(math.Sin)),
		function("sinh", 1, unary(math.Sinh)),
		function("sqrt", 1, unary(math.Sqrt)),
		function("tan", 1, unary(math.Tan)),
		function("tanh", 1, unary(math.Tanh)),

		function("atan2", 2, binary(math.Atan2)),
		function("pow", 2, binary(math.Pow)),
		function("fmod", 2, binary(math.Mod)),
		function("ncr", 2, binary(ncr)),
		function("npr", 2, binary(npr)),
	}

	Builtins = make(map[string]*Entry, len(entries))
	for _, e := range entries {
		Builtins[e.Name] = e
	}
}

// Operator entries are never looked up by name — the lexer emits a
// dedicated Op token for them and the parser selects the matching entry
// directly — but they share the Entry shape so constant folding treats
// them exactly like any pure function application.
var (
	OpAdd = &Entry{Name: "+", Kind: KindOperator, Arity: 2, Pure: true, Call: binary(func(a, b float64) float64 { return a + b })}
	OpSub = &Entry{Name: "-", Kind: KindOperator, Arity: 2, Pure: true, Call: binary(func(a, b float64) float64 { return a - b })}
	OpMul = &Entry{Name: "*", Kind: KindOperator, Arity: 2, Pure: true, Call: binary(func(a, b float64) float64 { return a * b })}
	OpDiv = &Entry{Name: "/", Kind: KindOperator, Arity: 2, Pure: true, Call: binary(func(a, b float64) float64 { return a / b })}
	OpMod = &Entry{Name: "%", Kind: KindOperator, Arity: 2, Pure: true, Call: binary(math.Mod)}
	OpPow = &Entry{Name: "^", Kind: KindOperator, Arity: 2, Pure: true, Call: binary(math.Pow)}
	OpNeg = &Entry{Name: "neg", Kind: KindOperator, Arity: 1, Pure: true, Call: unary(func(a float64) float64 { return -a })}
)

// Scope merges the fixed Builtins table with a set of caller-supplied
// Bindings for one compilation, with Bindings shadowing Builtins entries
// of the same name.
type Scope struct {
	vars map[string]*Entry
}

// NewScope builds a Scope from an ordered list of bindings. A later
// binding with a repeated name overrides an earlier one, matching the
// "last write wins" behavior callers expect from an ordered variable list.
func NewScope(bindings []Binding) *Scope {
	s := &Scope{vars: make(map[string]*Entry, len(bindings))}
	for _, b := range bindings {
		s.vars[b.Name] = &Entry{Name: b.Name, Kind: KindVariable, Arity: 0, Pure: false, Ref: b.Ref}
	}
	return s
}

// Lookup resolves an identifier, checking caller variables before the
// builtin catalog so that a variable named e.g. "pi" shadows the constant.
func (s *Scope) Lookup(name string) (*Entry, bool) {
	if s != nil {
		if e, ok := s.vars[name]; ok {
			return e, true
		}
	}
	e, ok := Builtins[name]
	return e, ok
}
