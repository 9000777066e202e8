// Package entity contains the core business objects of the project.
package entity

// PasswordScheme names the keyed digest used to derive a stored password hash.
type PasswordScheme string

const (
	// PasswordSchemeHMACSHA1 is the legacy HMAC-SHA1 digest keyed by the salt.
	PasswordSchemeHMACSHA1 PasswordScheme = "hmac-sha1"
	// PasswordSchemeHMACSHA256 is the HMAC-SHA256 digest keyed by the salt.
	PasswordSchemeHMACSHA256 PasswordScheme = "hmac-sha256"
	// PasswordSchemeArgon2ID derives the hash with argon2id using the salt.
	PasswordSchemeArgon2ID PasswordScheme = "argon2id"
)

// String returns the string representation of the PasswordScheme.
func (s PasswordScheme) String() string {
	return string(s)
}

// IsValid checks if the PasswordScheme is a valid value.
func (s PasswordScheme) IsValid() bool {
	switch s {
	case PasswordSchemeHMACSHA1, PasswordSchemeHMACSHA256, PasswordSchemeArgon2ID:
		return true
	default:
		return false
	}
}
