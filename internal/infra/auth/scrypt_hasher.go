// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"

	"jacomprei/internal/domain/service"
)

// scrypt parameters. Changing them invalidates stored hashes, so treat the
// stored format "hex(hash).hex(salt)" as versioned by these constants.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// scryptHasher is a concrete implementation of the PasswordHasher interface using scrypt.
type scryptHasher struct{}

// NewScryptHasher is the constructor for scryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewScryptHasher() service.PasswordHasher {
	return &scryptHasher{}
}

// Hash generates a salted hash from a plaintext password using scrypt.
// The result is stored as "hex(hash).hex(salt)".
func (h *scryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", errors.Wrap(err, "derive key")
	}

	return hex.EncodeToString(derived) + "." + hex.EncodeToString(salt), nil
}

// Check compares a plaintext password with a stored scrypt hash.
func (h *scryptHasher) Check(password, hash string) bool {
	parts := strings.Split(hash, ".")
	if len(parts) != 2 {
		return false
	}

	stored, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(stored, derived) == 1
}
