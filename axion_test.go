package axion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret_MatchesCompileEvaluate(t *testing.T) {
	for _, src := range []string{"3+2*4", "(((2+1)))", "2^3^2", "sqrt(16)/4"} {
		want, err := Interpret(src)
		require.Nil(t, err)

		tree, err := Compile(src, nil)
		require.Nil(t, err)
		got := tree.Evaluate()
		tree.Dispose()

		assert.Equal(t, want, got, "Interpret and Compile+Evaluate diverged for %q", src)
	}
}

func TestInterpret_ArithmeticCases(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"3+2*4", 11},
		{"(((2+1)))", 3},
		{"3-2-4", -3},
		{"3-(2-4)", 5},
		{"2^3^2", 512},
		{"100^---.5+1", 1.1},
		{"100^--.5+1", 11},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Interpret(tt.input)
			require.Nil(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestInterpret_SyntaxErrorReturnsNaN(t *testing.T) {
	got, err := Interpret("1+")
	require.NotNil(t, err)
	assert.True(t, math.IsNaN(got))
	assert.Equal(t, 2, err.Pos)
}

func TestCompile_VariableFreshness(t *testing.T) {
	x, y := 0.0, math.Pi/2
	tree, err := Compile("cos(x) + sin(y)", []Variable{{Name: "x", Ref: &x}, {Name: "y", Ref: &y}})
	require.Nil(t, err)
	defer tree.Dispose()

	assert.InDelta(t, 2.0, tree.Evaluate(), 1e-9)

	x = math.Pi
	assert.InDelta(t, 0.0, tree.Evaluate(), 1e-9)
}

func TestCompile_VariableShadowsBuiltin(t *testing.T) {
	pi := 1.0
	tree, err := Compile("pi", []Variable{{Name: "pi", Ref: &pi}})
	require.Nil(t, err)
	defer tree.Dispose()
	assert.Equal(t, 1.0, tree.Evaluate())
}

func TestTree_DisposeIsIdempotentAndNilSafe(t *testing.T) {
	tree, err := Compile("1+1", nil)
	require.Nil(t, err)

	tree.Dispose()
	assert.NotPanics(t, func() { tree.Dispose() })

	var nilTree *Tree
	assert.NotPanics(t, func() { nilTree.Dispose() })
	assert.True(t, math.IsNaN(nilTree.Evaluate()))
}

func TestCompile_NilVarsMeansBuiltinsOnly(t *testing.T) {
	tree, err := Compile("2*pi", nil)
	require.Nil(t, err)
	defer tree.Dispose()
	assert.InDelta(t, 2*math.Pi, tree.Evaluate(), 1e-9)
}
