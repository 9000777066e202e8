package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"account/config"
	"account/internal/domain/entity"
	"account/internal/domain/repository"
	"account/internal/domain/service"
	"account/internal/infra/auth"
	"account/internal/infra/persistence/memory"
	"account/internal/infra/validation"
	"account/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "test-signing-secret"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(scheme string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{PasswordScheme: scheme},
	}
	cfg.SecretKey.Signing = testSigningSecret
	cfg.ApplyDefaults()

	return cfg
}

func newTestCredentials(t *testing.T, cfg *config.Config) service.CredentialManager {
	t.Helper()

	manager, err := auth.NewCredentialManager(auth.CredentialManagerParams{Config: cfg})
	require.NoError(t, err)

	return manager
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service     usecase.UserUsecase
	userRepo    repository.UserRepository
	credentials service.CredentialManager
	config      *config.Config
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	return createTestUserServiceWithRepo(t, memory.NewUserRepository())
}

func createTestUserServiceWithRepo(t *testing.T, repo repository.UserRepository) userServiceFixtures {
	t.Helper()

	cfg := newTestConfig(config.SchemeHMACSHA256)
	credentials := newTestCredentials(t, cfg)

	svc, err := NewUserService(UserServiceParams{
		UserRepo:    repo,
		Credentials: credentials,
		Validator:   validation.New(),
		Config:      cfg,
		Logger:      newDiscardLogger(),
	})
	require.NoError(t, err)

	return userServiceFixtures{
		service:     svc,
		userRepo:    repo,
		credentials: credentials,
		config:      cfg,
	}
}

// countingCredentials records how often Verify runs.
type countingCredentials struct {
	service.CredentialManager
	verifyCalls int
}

func (c *countingCredentials) Verify(user *entity.User, plaintext string) bool {
	c.verifyCalls++

	return c.CredentialManager.Verify(user, plaintext)
}

// mockUserRepository is a testify mock of repository.UserRepository.
type mockUserRepository struct {
	mock.Mock
}

func newMockUserRepository(t *testing.T) *mockUserRepository {
	m := &mockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
