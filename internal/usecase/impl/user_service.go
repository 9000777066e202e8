// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"account/config"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"
	"account/internal/domain/service"
	logs "account/internal/infra/log"
	"account/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo    repository.UserRepository
	credentials service.CredentialManager
	validator   service.Validator
	secretKey   string
	decoy       *entity.User // Verified against when no account matches the email.
	logger      *slog.Logger
	now         func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	Credentials service.CredentialManager
	Validator   service.Validator
	Config      *config.Config
	Logger      *slog.Logger
}

// NewUserService is the constructor for userService. It fails when no signing secret is configured.
func NewUserService(params UserServiceParams) (usecase.UserUsecase, error) {
	if params.Config == nil || params.Config.SecretKey.Signing == "" {
		return nil, domainerrors.ErrSigningSecretMissing.WrapMessage("secretKey.signing must be set")
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	decoy := &entity.User{}
	if err := params.Credentials.SetPassword(decoy, uuid.NewString()); err != nil {
		return nil, errors.Wrap(err, "failed to derive decoy credential")
	}

	return &userService{
		userRepo:    params.UserRepo,
		credentials: params.Credentials,
		validator:   params.Validator,
		secretKey:   params.Config.SecretKey.Signing,
		decoy:       decoy,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// Register validates the profile, derives the credential and persists the new user.
// Nothing is persisted when validation or password derivation fails.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	normalized := usecase.RegisterUserInput{
		Name:     entity.NormalizeName(input.Name),
		Email:    entity.NormalizeEmail(input.Email),
		Password: input.Password,
	}
	srv.log(ctx).Info("Starting registration", slog.String("email", normalized.Email))

	if err := srv.validator.Struct(&normalized); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.String("email", normalized.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid registration input")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate user id")
	}

	newUser := &entity.User{
		ID:    id,
		Name:  normalized.Name,
		Email: normalized.Email,
	}
	if err := srv.credentials.SetPassword(newUser, normalized.Password); err != nil {
		srv.log(ctx).Warn("Password rejected during registration", slog.String("email", normalized.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet requirements")
	}

	now := srv.now()
	newUser.CreatedAt = now
	newUser.UpdatedAt = now

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.log(ctx).Error("Failed to create user", slog.String("email", normalized.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login checks the password and issues an access token.
// Credentials derived with a non-default scheme are upgraded on the way.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	loggedInUser, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			srv.credentials.Verify(srv.decoy, input.Password)

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.credentials.Verify(loggedInUser, input.Password) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if srv.credentials.NeedsRehash(loggedInUser) {
		loggedInUser = srv.upgradeCredential(ctx, loggedInUser, input.Password)
	}

	accessToken, err := srv.credentials.IssueToken(loggedInUser, srv.secretKey)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		User:        loggedInUser,
	}, nil
}

// upgradeCredential re-derives the credential with the default scheme.
// Failures are logged and the original record is returned.
func (srv *userService) upgradeCredential(ctx context.Context, user *entity.User, password string) *entity.User {
	upgraded := user.Clone()
	if err := srv.credentials.SetPassword(upgraded, password); err != nil {
		srv.log(ctx).Warn("Failed to rehash credential", slog.Any("userID", user.ID), slog.Any("error", err))

		return user
	}

	if err := srv.userRepo.Update(ctx, upgraded); err != nil {
		srv.log(ctx).Warn("Failed to persist rehashed credential", slog.Any("userID", user.ID), slog.Any("error", err))

		return user
	}

	srv.log(ctx).Info("Upgraded credential scheme",
		slog.Any("userID", user.ID),
		slog.String("from", user.PasswordScheme.String()),
		slog.String("to", upgraded.PasswordScheme.String()))

	return upgraded
}

// ChangePassword replaces the password after checking the current one.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	user, err := srv.findUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !srv.credentials.Verify(user, input.CurrentPassword) {
		srv.log(ctx).Warn("Password change rejected", slog.Any("userID", user.ID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password does not match")
	}

	if err := srv.credentials.SetPassword(user, input.NewPassword); err != nil {
		return errors.Wrap(err, "new password does not meet requirements")
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update user password")
	}
	srv.log(ctx).Info("Password changed", slog.Any("userID", user.ID))

	return nil
}

// UpdateProfile changes the name and email of an existing user.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	normalized := usecase.UpdateProfileInput{
		UserID: input.UserID,
		Name:   entity.NormalizeName(input.Name),
		Email:  entity.NormalizeEmail(input.Email),
	}
	if err := srv.validator.Struct(&normalized); err != nil {
		return nil, errors.Wrap(err, "invalid profile input")
	}

	user, err := srv.findUser(ctx, normalized.UserID)
	if err != nil {
		return nil, err
	}

	user.Name = normalized.Name
	user.Email = normalized.Email
	user.Touch(srv.now())

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user profile")
	}
	srv.log(ctx).Debug("Profile updated", slog.Any("userID", user.ID))

	return user, nil
}

// GetUser returns a user by ID.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return srv.findUser(ctx, id)
}

// findUser loads a user and maps a missing record to the domain not-found error.
func (srv *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, err.Error())
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// IssueToken signs a token for an existing user.
func (srv *userService) IssueToken(ctx context.Context, id uuid.UUID) (string, error) {
	user, err := srv.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	token, err := srv.credentials.IssueToken(user, srv.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue token")
	}

	return token, nil
}
