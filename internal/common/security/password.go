package security

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used when the user table was first
// populated; changing it only affects newly written hashes.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
// A malformed hash is treated as a mismatch, never an error.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
