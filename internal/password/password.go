// Package password implements credential hashing and verification.
// Plaintext passwords never leave this package; only bcrypt hashes are stored.
package password

import "golang.org/x/crypto/bcrypt"

// Hash hashes a plaintext password using bcrypt with the default cost.
func Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
// A malformed hash yields false, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
