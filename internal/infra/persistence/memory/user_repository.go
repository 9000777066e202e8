// Package memory contains an in-process implementation of the persistence layer.
// It honours the same contract a database-backed store would: unique emails,
// required credential fields, and serialized writes.
package memory

import (
	"context"
	"sync"

	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRepository implements the repository.UserRepository interface in memory.
type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*userRecord
	byEmail map[string]uuid.UUID
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*userRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	rec, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(rec), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(repo.byID[id]), nil
}

// Create persists a new user. The email must not be taken and the credential must be set.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if err := checkRequired(user); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byID[user.ID]; exists {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("user id already exists")
	}
	if _, exists := repo.byEmail[user.Email]; exists {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	rec := fromUserDomain(user)
	repo.byID[rec.ID] = rec
	repo.byEmail[rec.Email] = rec.ID

	return nil
}

// Update replaces a stored user. The last write wins.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if err := checkRequired(user); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	existing, ok := repo.byID[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if owner, taken := repo.byEmail[user.Email]; taken && owner != user.ID {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	rec := fromUserDomain(user)
	rec.CreatedAt = existing.CreatedAt
	delete(repo.byEmail, existing.Email)
	repo.byID[rec.ID] = rec
	repo.byEmail[rec.Email] = rec.ID

	return nil
}

// Delete removes a user by ID.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	rec, ok := repo.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	delete(repo.byEmail, rec.Email)
	delete(repo.byID, id)

	return nil
}

func checkRequired(user *entity.User) error {
	switch {
	case user == nil:
		return errors.New("user is nil")
	case user.ID == uuid.Nil:
		return errors.New("user id is required")
	case user.Email == "":
		return errors.New("email is required")
	case !user.HasCredential():
		return errors.New("password is required")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a stored record to a domain User entity.
func toUserDomain(data *userRecord) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Name:           data.Name,
		Email:          data.Email,
		Salt:           data.Salt,
		HashedPassword: data.HashedPassword,
		PasswordScheme: entity.PasswordScheme(data.PasswordScheme),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a stored record.
func fromUserDomain(data *entity.User) *userRecord {
	if data == nil {
		return nil
	}

	return &userRecord{
		ID:             data.ID,
		Name:           data.Name,
		Email:          data.Email,
		Salt:           data.Salt,
		HashedPassword: data.HashedPassword,
		PasswordScheme: data.PasswordScheme.String(),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
