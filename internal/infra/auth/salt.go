package auth

import (
	"crypto/rand"
	"encoding/hex"

	"account/internal/domain/service"
)

const defaultSaltBytes = 16

// randomSaltGenerator draws salts from the operating system CSPRNG.
type randomSaltGenerator struct {
	size int
}

// NewSaltGenerator returns a generator producing hex-encoded salts of size random bytes.
func NewSaltGenerator(size int) service.SaltGenerator {
	if size <= 0 {
		size = defaultSaltBytes
	}

	return &randomSaltGenerator{size: size}
}

func (g *randomSaltGenerator) GenerateSalt() string {
	b := make([]byte, g.size)
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}
