package rewrite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42, "42"},
		{-3, "-3"},
		{1023.9375, "1023.9375"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "red", String("red"))
	assert.Equal(t, "12", String(12))
	assert.Equal(t, "12", String(uint8(12)))
	assert.Equal(t, "0.5", String(float32(0.5)))
	assert.Equal(t, "true", String(true))
	assert.Equal(t, `"a.css",url(b.css)`, String([]any{`"a.css"`, "url(b.css)"}))
}

func TestSameValue(t *testing.T) {
	a := Block{{Name: "color", Value: "red"}}
	b := Block{{Name: "color", Value: "red"}}

	assert.True(t, SameValue(a, a))
	assert.False(t, SameValue(a, b), "blocks compare by identity")
	assert.False(t, SameValue(a, "red"))
	assert.True(t, SameValue(42, "42"))
	assert.True(t, SameValue(1.0, 1))
	assert.False(t, SameValue("1px", "2px"))
	assert.True(t, SameValue(nil, nil))
}

func TestBlock(t *testing.T) {
	b := Block{{Name: "a", Value: 1}, {Name: "b", Value: 2}, {Name: "a", Value: 3}}

	v, ok := b.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = b.Get("c")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b", "a"}, b.Names())
}
