package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredUser(email string) *entity.User {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	return &entity.User{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          email,
		Salt:           "salt",
		HashedPassword: "hash",
		PasswordScheme: entity.PasswordSchemeHMACSHA256,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	user := newStoredUser("alice@example.com")

	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, byID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	// Returned values are copies.
	byID.Name = "Mallory"
	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStoredUser("alice@example.com")))

	err := repo.Create(ctx, newStoredUser("alice@example.com"))
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserRepository_CreateRequiresCredential(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newStoredUser("alice@example.com")
	user.HashedPassword = ""

	err := repo.Create(ctx, user)
	assert.True(t, domainerrors.IsValidation(err))

	_, err = repo.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	user := newStoredUser("alice@example.com")
	other := newStoredUser("bob@example.com")
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Create(ctx, other))

	changed := user.Clone()
	changed.Email = "alice@example.org"
	changed.CreatedAt = time.Time{}
	require.NoError(t, repo.Update(ctx, changed))

	_, err := repo.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	stored, err := repo.FindByEmail(ctx, "alice@example.org")
	require.NoError(t, err)
	assert.Equal(t, user.CreatedAt, stored.CreatedAt, "creation time is immutable")

	conflict := other.Clone()
	conflict.Email = "alice@example.org"
	assert.True(t, errors.Is(repo.Update(ctx, conflict), domainerrors.ErrUserAlreadyExists))

	assert.ErrorIs(t, repo.Update(ctx, newStoredUser("carol@example.com")), repository.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	user := newStoredUser("alice@example.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repository.ErrUserNotFound)

	// The email is free again.
	require.NoError(t, repo.Create(ctx, newStoredUser("alice@example.com")))
}

func TestUserRepository_CanceledContext(t *testing.T) {
	repo := NewUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Create(ctx, newStoredUser("alice@example.com")), context.Canceled)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, newStoredUser("race@example.com"))
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}
