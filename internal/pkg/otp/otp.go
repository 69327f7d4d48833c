package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strconv"
)

// Generator produces one-time numeric codes for email verification flows.
type Generator interface {
	// Generate returns a new numeric code as a string.
	Generate() (string, error)
}

// NumericCode generates uniformly random numeric codes of a fixed digit
// length using a cryptographically strong source. Codes are handled as
// strings end to end so leading zeros survive storage and comparison.
type NumericCode struct {
	min *big.Int
	max *big.Int
}

// NewNumericCode constructs a generator for codes of the given digit
// length. Lengths outside 4..8 fall back to the common 6 digits.
func NewNumericCode(digits int) *NumericCode {
	if digits < 4 || digits > 8 {
		digits = 6
	}

	lo := int64(1)
	for range digits - 1 {
		lo *= 10
	}
	hi := lo*10 - 1 // e.g. digits=6: [100000, 999999]

	return &NumericCode{min: big.NewInt(lo), max: big.NewInt(hi)}
}

// Generate returns a new code as a decimal string. The first digit is
// never zero, matching the [10^(d-1), 10^d-1] range.
func (n *NumericCode) Generate() (string, error) {
	span := new(big.Int).Sub(n.max, n.min)
	span.Add(span, big.NewInt(1))

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(new(big.Int).Add(v, n.min).Int64(), 10), nil
}

// Match compares a submitted code against a stored one in constant time.
// Comparison is on the raw strings; codes are never parsed as numbers.
func Match(submitted, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
