package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// mustHash bcrypt-hashes a plaintext password at the minimum cost for fast
// tests. Only for use from test code.
func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}
	return string(hash)
}
