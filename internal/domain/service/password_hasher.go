// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "account/internal/domain/entity"

// PasswordHasher derives a deterministic digest of a password keyed by a salt.
// This abstracts the underlying algorithm, keeping the domain pure.
type PasswordHasher interface {
	// Scheme returns the name recorded alongside hashes produced by this hasher.
	Scheme() entity.PasswordScheme

	// Hash returns the hex digest of password keyed by salt.
	// It returns an empty string when either input is empty.
	Hash(password, salt string) string
}

// SaltGenerator produces per-record salts.
type SaltGenerator interface {
	// GenerateSalt returns a new random salt. Successive calls differ with overwhelming probability.
	GenerateSalt() string
}
