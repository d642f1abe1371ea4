package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

// HashPassword one-way hashes a plaintext password before it ever touches
// the database
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password, %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether candidate matches the stored hash
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
