package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltins_ConstantsAndArity(t *testing.T) {
	pi, ok := Builtins["pi"]
	assert.True(t, ok)
	assert.Equal(t, KindConstant, pi.Kind)
	assert.InDelta(t, math.Pi, pi.Value, 1e-12)

	sqrt, ok := Builtins["sqrt"]
	assert.True(t, ok)
	assert.Equal(t, KindFunction, sqrt.Kind)
	assert.Equal(t, 1, sqrt.Arity)
	assert.Equal(t, 4.0, sqrt.Call([]float64{16}))

	pow, ok := Builtins["pow"]
	assert.True(t, ok)
	assert.Equal(t, 2, pow.Arity)
	assert.Equal(t, 8.0, pow.Call([]float64{2, 3}))
}

func TestBuiltins_LogVsLn(t *testing.T) {
	assert.InDelta(t, 1.0, Builtins["ln"].Call([]float64{math.E}), 1e-12)
	assert.InDelta(t, 2.0, Builtins["log"].Call([]float64{100}), 1e-12)
}

func TestOperators(t *testing.T) {
	assert.Equal(t, 7.0, OpAdd.Call([]float64{3, 4}))
	assert.Equal(t, -1.0, OpSub.Call([]float64{3, 4}))
	assert.Equal(t, 12.0, OpMul.Call([]float64{3, 4}))
	assert.Equal(t, 0.75, OpDiv.Call([]float64{3, 4}))
	assert.Equal(t, 1.0, OpMod.Call([]float64{3, 2}))
	assert.Equal(t, 8.0, OpPow.Call([]float64{2, 3}))
	assert.Equal(t, -5.0, OpNeg.Call([]float64{5}))
}

func TestOperators_DivByZeroIsInfNotError(t *testing.T) {
	got := OpDiv.Call([]float64{1, 0})
	assert.True(t, math.IsInf(got, 1))
}

func TestNcrNpr(t *testing.T) {
	assert.InDelta(t, 10, ncr(5, 2), 1e-9)
	assert.InDelta(t, 20, npr(5, 2), 1e-9)
	assert.True(t, math.IsNaN(ncr(-1, 2)))
	assert.True(t, math.IsNaN(ncr(2, 5)))
}

func TestScope_ShadowsBuiltins(t *testing.T) {
	x := 10.0
	scope := NewScope([]Binding{{Name: "x", Ref: &x}, {Name: "pi", Ref: &x}})

	entry, ok := scope.Lookup("pi")
	assert.True(t, ok)
	assert.Equal(t, KindVariable, entry.Kind)
	assert.Same(t, &x, entry.Ref)

	entry, ok = scope.Lookup("sqrt")
	assert.True(t, ok)
	assert.Equal(t, KindFunction, entry.Kind)
}

func TestScope_LastBindingWins(t *testing.T) {
	a, b := 1.0, 2.0
	scope := NewScope([]Binding{{Name: "x", Ref: &a}, {Name: "x", Ref: &b}})
	entry, _ := scope.Lookup("x")
	assert.Same(t, &b, entry.Ref)
}

func TestScope_NilIsBuiltinsOnly(t *testing.T) {
	var scope *Scope
	entry, ok := scope.Lookup("e")
	assert.True(t, ok)
	assert.Equal(t, KindConstant, entry.Kind)

	_, ok = scope.Lookup("undefined")
	assert.False(t, ok)
}

func TestScope_UnknownNameNotFound(t *testing.T) {
	scope := NewScope(nil)
	_, ok := scope.Lookup("nope")
	assert.False(t, ok)
}
