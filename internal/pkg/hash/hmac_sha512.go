package hash

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA512 signs raw payloads, hex-encoded. Payment gateways sign
// webhook bodies this way, so it works on bytes rather than strings.
type HMACSHA512 struct {
	secret []byte
}

// NewHMACSHA512 creates a new signer with a secret.
func NewHMACSHA512(secret string) *HMACSHA512 {
	return &HMACSHA512{secret: []byte(secret)}
}

// Sign returns the hex-encoded HMAC SHA-512 of the payload.
func (s *HMACSHA512) Sign(payload []byte) string {
	h := hmac.New(sha512.New, s.secret)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks a hex signature against the payload in constant time.
func (s *HMACSHA512) Verify(signature string, payload []byte) bool {
	expected := s.Sign(payload)
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}
