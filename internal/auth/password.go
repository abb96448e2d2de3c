package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// Hasher provides one-way password hashing and verification.
type Hasher struct {
	cost int
}

// NewHasher returns a bcrypt-backed hasher.
func NewHasher() *Hasher {
	return &Hasher{cost: bcryptCost}
}

// Hash returns a salted digest of the plaintext. A fresh salt is generated on
// every call, so two hashes of the same input differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest counts as a mismatch, not an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
