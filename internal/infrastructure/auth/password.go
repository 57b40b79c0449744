package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher panics if the dummy hash cannot be generated; it runs once
// at startup.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the user is unknown, so lookups cost the same either way.
	dummy, err := bcrypt.GenerateFromPassword(prehash("famly-dummy-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("generating dummy password hash: %v", err))
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// prehash maps any password to 44 bytes so bcrypt's 72-byte input limit never
// truncates or rejects it.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (h *PasswordHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
}

// CompareDummy burns one comparison and always fails.
func (h *PasswordHasher) CompareDummy(password string) error {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, prehash(password))
	return bcrypt.ErrMismatchedHashAndPassword
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}
