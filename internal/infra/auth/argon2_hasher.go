package auth

import (
	"encoding/hex"

	"golang.org/x/crypto/argon2"

	"account/config"
	"account/internal/domain/entity"
	"account/internal/domain/service"
)

// argon2Hasher derives the password hash with argon2id, using the salt as the KDF salt.
type argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// NewArgon2Hasher is the constructor for argon2Hasher.
// Zero parameters fall back to time=1, memory=64MiB, threads=4, keyLen=32.
func NewArgon2Hasher(params *config.Argon2Config) service.PasswordHasher {
	h := &argon2Hasher{time: 1, memory: 64 * 1024, threads: 4, keyLen: 32}
	if params == nil {
		return h
	}
	if params.Time > 0 {
		h.time = params.Time
	}
	if params.Memory > 0 {
		h.memory = params.Memory
	}
	if params.Threads > 0 {
		h.threads = params.Threads
	}
	if params.KeyLen > 0 {
		h.keyLen = params.KeyLen
	}

	return h
}

func (h *argon2Hasher) Scheme() entity.PasswordScheme {
	return entity.PasswordSchemeArgon2ID
}

func (h *argon2Hasher) Hash(password, salt string) string {
	if password == "" || salt == "" {
		return ""
	}

	key := argon2.IDKey([]byte(password), []byte(salt), h.time, h.memory, h.threads, h.keyLen)

	return hex.EncodeToString(key)
}
