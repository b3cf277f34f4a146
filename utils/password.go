package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize  = 32
	KeyLength = sha256.Size
)

// DefaultIterations matches the iteration count of the stored credentials.
const DefaultIterations = 10000

// HashPassword derives a hex PBKDF2-HMAC-SHA256 digest of password with a fresh
// random salt.
func HashPassword(password string, iterations int) (hash string, salt []byte, err error) {
	salt = make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", nil, fmt.Errorf("generate salt: %w", err)
	}
	return DeriveHash(password, salt, iterations), salt, nil
}

func DeriveHash(password string, salt []byte, iterations int) string {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return hex.EncodeToString(pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New))
}

// VerifyPassword reports whether password matches the stored hex digest.
func VerifyPassword(password string, salt []byte, storedHash string, iterations int) bool {
	derived := DeriveHash(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1
}
