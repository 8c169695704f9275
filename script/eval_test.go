package script

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasandbox/pga"
)

func run(t *testing.T, source string) *Env {
	t.Helper()
	prog, err := Parse(source)
	require.NoError(t, err)
	env := NewEnv()
	require.NoError(t, env.Run(prog))
	return env
}

func value(t *testing.T, env *Env, name string) pga.Multivector {
	t.Helper()
	v, ok := env.Get(name)
	require.True(t, ok, "variable %q", name)
	return v
}

func TestEvalBasisBlades(t *testing.T) {
	env := run(t, "p = e12 + 2*e01 - 3*e02;")
	assert.Equal(t, pga.Point(3, 2), value(t, env, "p"))
}

func TestEvalProducts(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   pga.Multivector
	}{
		{"geometric", "x = e1 * e2;", pga.Multivector{E12: 1}},
		{"geometric square", "x = e1 * e1;", pga.Scalar(1)},
		{"wedge", "x = e1 ^ e2;", pga.Multivector{E12: 1}},
		{"wedge self", "x = e1 ^ e1;", pga.Zero},
		{"inner", "x = e1 | e1;", pga.Scalar(1)},
		{"regressive join", "x = e12 & (e12 + e01);", pga.Line(1, 0, 0).Neg()},
		{"dual", "x = !e0;", pga.Multivector{E12: 1}},
		{"reverse", "x = ~e12;", pga.Multivector{E12: -1}},
		{"negate", "x = -e1;", pga.Multivector{E1: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := run(t, tt.source)
			assert.Equal(t, tt.want, value(t, env, "x"))
		})
	}
}

func TestEvalFunctions(t *testing.T) {
	env := run(t, "m = magnitude(3*e1 + 4*e2); n = normalize(2*e1); c = cos(0); s = sin(0);")

	assert.InDelta(t, 5, value(t, env, "m").S, 1e-6)
	assert.Equal(t, pga.Multivector{E1: 1}, value(t, env, "n"))
	assert.Equal(t, pga.Scalar(1), value(t, env, "c"))
	assert.Equal(t, pga.Scalar(0), value(t, env, "s"))
}

func TestEvalACos(t *testing.T) {
	env := run(t, "a = acos(0);")
	assert.InDelta(t, math.Pi/2, value(t, env, "a").S, 1e-6)
}

func TestEvalScalarDivision(t *testing.T) {
	env := run(t, "x = (4*e1 + 2*e2) / 2;")
	assert.Equal(t, pga.Multivector{E1: 2, E2: 1}, value(t, env, "x"))
}

func TestEvalVariableChain(t *testing.T) {
	env := run(t, "a = e1; b = a + e2; c = b ^ e0;")
	assert.Equal(t, []string{"a", "b", "c"}, env.Names())
	assert.Equal(t, pga.Multivector{E01: -1, E02: -1}, value(t, env, "c"))
}

func TestEvalReassignmentKeepsOrder(t *testing.T) {
	env := run(t, "a = 1; b = 2; a = 3;")
	assert.Equal(t, []string{"a", "b"}, env.Names())
	assert.Equal(t, pga.Scalar(3), value(t, env, "a"))
}

func TestEvalPredefinedNotListed(t *testing.T) {
	env := run(t, "a = e1;")
	assert.Equal(t, []string{"a"}, env.Names())
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		pos    string
	}{
		{"unknown variable", "a = nope;", "1:5"},
		{"division by zero", "a = e1 / 0;", "1:8"},
		{"non-scalar divisor", "a = 1 / e1;", "1:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.source)
			require.NoError(t, err)

			err = NewEnv().Run(prog)
			require.Error(t, err)

			var serr *Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.pos, serr.Pos.String())
		})
	}
}
