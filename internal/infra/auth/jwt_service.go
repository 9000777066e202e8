// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"account/config"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	ttl time.Duration // Zero means tokens carry no expiration.
	now func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The signing secret is supplied per call, so only the token lifetime is read from config.
func NewJWTService(cfg *config.Config) service.TokenService {
	var ttl time.Duration
	if cfg != nil && cfg.Auth != nil {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		ttl: ttl,
		now: time.Now,
	}
}

// IssueToken signs an HS256 token whose subject is subjectID.
func (s *jwtService) IssueToken(subjectID uuid.UUID, secretKey string) (string, error) {
	if secretKey == "" {
		return "", domainerrors.ErrSigningSecretMissing.WrapMessage("failed to issue token")
	}
	if subjectID == uuid.Nil {
		return "", domainerrors.ErrSubjectRequired.WrapMessage("failed to issue token")
	}

	now := s.now()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subjectID.String(),      // Subject (who the token is for)
			IssuedAt: jwt.NewNumericDate(now), // Issued At
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", domainerrors.ErrTokenSigningFailed.WithDetails(err.Error())
	}

	return signed, nil
}
