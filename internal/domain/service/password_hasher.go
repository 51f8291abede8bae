// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for salted password hashing and verification.
// The salt is stored next to the hash, so every scheme receives it explicitly.
type PasswordHasher interface {
	// Salt returns a fresh random salt.
	Salt() (string, error)

	// Hash derives the stored hash of password under salt.
	Hash(password, salt string) (string, error)

	// Check reports whether password hashed under salt equals hash.
	Check(password, salt, hash string) bool
}
