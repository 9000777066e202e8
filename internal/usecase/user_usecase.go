// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"account/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,simple_email"`
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to replace a user's password.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UpdateProfileInput defines the profile fields a user may change.
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   string `validate:"required"`
	Email  string `validate:"required,simple_email"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the signed access token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (the CLI) depends on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	IssueToken(ctx context.Context, id uuid.UUID) (string, error)
}
