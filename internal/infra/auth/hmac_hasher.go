// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // Kept so that legacy records keep verifying.
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"account/internal/domain/entity"
	"account/internal/domain/service"
)

// hmacHasher digests a password with HMAC, using the salt as the key.
type hmacHasher struct {
	scheme  entity.PasswordScheme
	newHash func() hash.Hash
}

// NewHMACSHA1Hasher returns the legacy HMAC-SHA1 hasher.
func NewHMACSHA1Hasher() service.PasswordHasher {
	return &hmacHasher{scheme: entity.PasswordSchemeHMACSHA1, newHash: sha1.New}
}

// NewHMACSHA256Hasher returns the HMAC-SHA256 hasher.
func NewHMACSHA256Hasher() service.PasswordHasher {
	return &hmacHasher{scheme: entity.PasswordSchemeHMACSHA256, newHash: sha256.New}
}

func (h *hmacHasher) Scheme() entity.PasswordScheme {
	return h.scheme
}

// Hash returns hex(HMAC(key=salt, message=password)).
func (h *hmacHasher) Hash(password, salt string) string {
	if password == "" || salt == "" {
		return ""
	}

	mac := hmac.New(h.newHash, []byte(salt))
	mac.Write([]byte(password))

	return hex.EncodeToString(mac.Sum(nil))
}
