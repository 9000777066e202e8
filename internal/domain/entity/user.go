// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account identity together with its password credential.
// The plaintext password is never stored here; see service.CredentialManager.SetPassword.
type User struct {
	ID             uuid.UUID      // Opaque unique identifier, assigned when the account is created.
	Name           string         // Display name.
	Email          string         // Contact address, unique across all users.
	Salt           string         // Per-record random value, regenerated with every password change.
	HashedPassword string         // Digest of the password keyed by Salt.
	PasswordScheme PasswordScheme // Scheme that produced HashedPassword.
	CreatedAt      time.Time      // Timestamp of when this account was created.
	UpdatedAt      time.Time      // Timestamp of the last modification to this account.
}

// HasCredential reports whether a salt and hash have been derived for the user.
func (u *User) HasCredential() bool {
	return u.Salt != "" && u.HashedPassword != ""
}

// Touch refreshes the modification timestamp.
func (u *User) Touch(now time.Time) {
	u.UpdatedAt = now
}

// Clone returns a copy of the user that shares no mutable state with the original.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u

	return &c
}

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeEmail trims surrounding whitespace from an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
