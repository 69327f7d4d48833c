package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt implements Hash using the bcrypt KDF. A server-side pepper is
// appended to every plaintext before hashing.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt creates a new hasher with the given cost and pepper.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	return &Bcrypt{cost: cost, pepper: pepper}
}

// Hash derives a bcrypt hash from the peppered plaintext.
func (b *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+b.pepper), b.cost)
}

// Verify reports whether the plaintext, once peppered, matches the hash.
func (b *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+b.pepper)) == nil
}
