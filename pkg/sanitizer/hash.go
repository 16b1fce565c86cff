package sanitizer

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashFailed is returned when a value cannot be hashed.
var ErrHashFailed = errors.New("failed to hash value")

// Hash returns the bcrypt hash of s with the default cost.
func Hash(s string) (string, error) {
	return HashWithCost(s, bcrypt.DefaultCost)
}

// HashWithCost returns the bcrypt hash of s.
func HashWithCost(s string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(s), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	return string(h), nil
}

// CompareHash reports whether s matches a hash produced by Hash.
func CompareHash(hash, s string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(s)) == nil
}
