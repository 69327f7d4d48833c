package hash

// Hash hashes plaintext secrets and verifies input against a stored
// hash. Implementations may mix in a pepper, so Verify must go through
// the same implementation that produced the hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
