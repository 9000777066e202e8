package auth

import (
	"testing"
	"time"

	"account/config"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
	"account/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_signing_secret_key_very_long_for_testing"

func parseTestToken(t *testing.T, token, secret string) (*service.Claims, error) {
	t.Helper()

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})

	return claims, err
}

func TestJWTService_IssueToken(t *testing.T) {
	tokenService := NewJWTService(&config.Config{})
	userID := uuid.New()

	token, err := tokenService.IssueToken(userID, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := parseTestToken(t, token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotNil(t, claims.IssuedAt)
	assert.Nil(t, claims.ExpiresAt, "tokens carry no expiration unless a TTL is configured")
}

func TestJWTService_IssueTokenWithTTL(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	tokenService := NewJWTService(cfg).(*jwtService)
	tokenService.now = func() time.Time { return now }

	token, err := tokenService.IssueToken(uuid.New(), testSecret)
	require.NoError(t, err)

	claims := &service.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
}

func TestJWTService_EmptySecret(t *testing.T) {
	tokenService := NewJWTService(nil)

	token, err := tokenService.IssueToken(uuid.New(), "")
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, domainerrors.ErrSigningSecretMissing))
	assert.True(t, domainerrors.IsConfig(err))
}

func TestJWTService_NilSubject(t *testing.T) {
	tokenService := NewJWTService(nil)

	_, err := tokenService.IssueToken(uuid.Nil, testSecret)
	assert.True(t, errors.Is(err, domainerrors.ErrSubjectRequired))
}

func TestJWTService_WrongSecretFailsVerification(t *testing.T) {
	tokenService := NewJWTService(nil)

	token, err := tokenService.IssueToken(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = parseTestToken(t, token, "another_secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}
