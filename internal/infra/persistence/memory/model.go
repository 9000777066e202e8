package memory

import (
	"time"

	"github.com/google/uuid"
)

// userRecord is the stored form of a user. It never holds a plaintext password.
type userRecord struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Salt           string
	HashedPassword string
	PasswordScheme string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
