package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericCodeGenerate(t *testing.T) {
	gen := NewNumericCode(6)

	for range 50 {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestNumericCodeFallbackDigits(t *testing.T) {
	gen := NewNumericCode(99)

	code, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("123456", "123456"))
	assert.False(t, Match("123456", "123457"))
	assert.False(t, Match("12345", "123456"))
	// string semantics: no numeric coercion
	assert.False(t, Match("012345", "12345"))
}
