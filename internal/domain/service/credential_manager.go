package service

import "account/internal/domain/entity"

// CredentialManager owns the password credential of a single user record and
// issues bearer tokens asserting that user's identity.
type CredentialManager interface {
	// SetPassword validates plaintext, then replaces the salt and hash of user together.
	// On failure user is left unchanged.
	SetPassword(user *entity.User, plaintext string) error

	// GenerateSalt returns a fresh random salt.
	GenerateSalt() string

	// Hash returns the digest of plaintext under the user's salt and scheme, or "" without a salt.
	Hash(user *entity.User, plaintext string) string

	// Verify reports whether plaintext matches the user's stored hash.
	Verify(user *entity.User, plaintext string) bool

	// NeedsRehash reports whether the stored hash was produced by a non-default scheme.
	NeedsRehash(user *entity.User) bool

	// IssueToken signs a token for the user with secretKey.
	IssueToken(user *entity.User, secretKey string) (string, error)
}

// Validator checks struct-tag constraints on use case input.
type Validator interface {
	Struct(s any) error
}
