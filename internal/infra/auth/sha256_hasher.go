package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"storefront/internal/domain/service"
)

// sha256Hasher stores base64(SHA-256(password+salt)). It is the scheme the
// existing customer data was written with.
type sha256Hasher struct{}

// NewSHA256Hasher returns the salted SHA-256 hasher.
func NewSHA256Hasher() service.PasswordHasher {
	return sha256Hasher{}
}

func (sha256Hasher) Salt() (string, error) {
	return newSalt()
}

func (sha256Hasher) Hash(password, salt string) (string, error) {
	sum := sha256.Sum256([]byte(password + salt))

	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (h sha256Hasher) Check(password, salt, hash string) bool {
	computed, _ := h.Hash(password, salt)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
