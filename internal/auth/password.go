package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a bcrypt hash of the plaintext password. An empty
// plaintext is hashed like any other value.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

// CheckPassword compares a candidate plaintext against a stored bcrypt hash.
// It returns false on any mismatch and never panics on malformed input.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
