package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axion-lang/axion/catalog"
)

func lexAll(src string, scope *catalog.Scope) []Token {
	l := New(src, scope)
	var out []Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == End || tok.Kind == Error {
			return out
		}
	}
}

func TestNext_Numbers(t *testing.T) {
	tests := []struct {
		name, input string
		want        float64
	}{
		{"integer", "42", 42},
		{"decimal", "3.14", 3.14},
		{"leading dot", ".5", 0.5},
		{"scientific notation", "1.5e-10", 1.5e-10},
		{"scientific uppercase", "2.3E+5", 2.3e5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(tt.input, nil)
			assert.Equal(t, Number, toks[0].Kind)
			assert.InDelta(t, tt.want, toks[0].Num, 1e-15)
			assert.Equal(t, End, toks[1].Kind)
		})
	}
}

func TestNext_Operators(t *testing.T) {
	toks := lexAll("3+4-5*6/7^8%9", nil)
	var ops []byte
	for _, tok := range toks {
		if tok.Kind == Op {
			ops = append(ops, tok.Op)
		}
	}
	assert.Equal(t, []byte{'+', '-', '*', '/', '^', '%'}, ops)
}

func TestNext_Parens(t *testing.T) {
	toks := lexAll("(1,2)", nil)
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{OpenParen, Number, Comma, Number, CloseParen, End}, kinds)
}

func TestNext_ResolvesBuiltins(t *testing.T) {
	toks := lexAll("pi+sin(1)", nil)
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, catalog.Builtins["pi"], toks[0].Entry)

	var fn Token
	for _, tok := range toks {
		if tok.Kind == Ident && tok.Entry.Name == "sin" {
			fn = tok
		}
	}
	assert.Equal(t, catalog.KindFunction, fn.Entry.Kind)
}

func TestNext_VariablesShadowCatalog(t *testing.T) {
	pi := 4.0
	scope := catalog.NewScope([]catalog.Binding{{Name: "pi", Ref: &pi}})

	toks := lexAll("pi", scope)
	require := toks[0]
	assert.Equal(t, Ident, require.Kind)
	assert.Equal(t, catalog.KindVariable, require.Entry.Kind)
	assert.Same(t, &pi, require.Entry.Ref)
}

func TestNext_UnknownIdentifierIsError(t *testing.T) {
	toks := lexAll("undefined_var", nil)
	assert.Equal(t, Error, toks[0].Kind)
	assert.Contains(t, toks[0].Err, "undefined_var")
}

func TestNext_InvalidCharacter(t *testing.T) {
	toks := lexAll("3 @ 4", nil)
	var gotErr bool
	for _, tok := range toks {
		if tok.Kind == Error {
			gotErr = true
		}
	}
	assert.True(t, gotErr)
}

func TestNext_WhitespaceIgnored(t *testing.T) {
	toks := lexAll("  3   +\t4\n", nil)
	assert.Equal(t, Number, toks[0].Kind)
	assert.Equal(t, Op, toks[1].Kind)
	assert.Equal(t, Number, toks[2].Kind)
	assert.Equal(t, End, toks[3].Kind)
}

func TestNext_EndOfEmptyInput(t *testing.T) {
	toks := lexAll("", nil)
	assert.Equal(t, End, toks[0].Kind)
}

func BenchmarkNext_Simple(b *testing.B) {
	for i := 0; i < b.N; i++ {
		lexAll("3+4*5", nil)
	}
}

func BenchmarkNext_Scientific(b *testing.B) {
	for i := 0; i < b.N; i++ {
		lexAll("1.5e-10+2.3E+5", nil)
	}
}
