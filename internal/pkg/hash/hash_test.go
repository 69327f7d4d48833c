package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcrypt(4, "pepper")

	hashed, err := h.Hash("s3cr3t!A")
	require.NoError(t, err)

	assert.True(t, h.Verify(string(hashed), "s3cr3t!A"))
	assert.False(t, h.Verify(string(hashed), "wrong"))
}

func TestHMACSHA256Deterministic(t *testing.T) {
	h := NewHMACSHA256("key")

	one, err := h.Hash("value")
	require.NoError(t, err)
	two, err := h.Hash("value")
	require.NoError(t, err)

	assert.Equal(t, one, two)
	assert.True(t, h.Verify(string(one), "value"))
	assert.False(t, h.Verify(string(one), "other"))
}

func TestHMACSHA512Signature(t *testing.T) {
	s := NewHMACSHA512("whsec")

	body := []byte(`{"event":"charge.success"}`)
	sig := s.Sign(body)

	assert.Len(t, sig, 128) // sha512 hex
	assert.True(t, s.Verify(sig, body))
	assert.False(t, s.Verify(sig, []byte(`{"event":"charge.failed"}`)))
	assert.False(t, s.Verify("deadbeef", body))
}
