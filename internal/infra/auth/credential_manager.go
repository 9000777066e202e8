package auth

import (
	"crypto/subtle"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/fx"

	"account/config"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
)

// CredentialManagerParams holds dependencies for the credential manager, injected by Fx.
type CredentialManagerParams struct {
	fx.In

	Config *config.Config
	Salts  service.SaltGenerator
	Tokens service.TokenService
}

// credentialManager is the concrete implementation of service.CredentialManager.
type credentialManager struct {
	defaultHasher     service.PasswordHasher
	hashers           map[entity.PasswordScheme]service.PasswordHasher
	salts             service.SaltGenerator
	tokens            service.TokenService
	minPasswordLength int
	now               func() time.Time
}

// NewCredentialManager builds a credential manager that derives new hashes with the
// configured scheme and still verifies hashes produced by every supported scheme.
func NewCredentialManager(params CredentialManagerParams) (service.CredentialManager, error) {
	authCfg := &config.AuthConfig{}
	if params.Config != nil && params.Config.Auth != nil {
		authCfg = params.Config.Auth
	}

	hashers := map[entity.PasswordScheme]service.PasswordHasher{}
	for _, h := range []service.PasswordHasher{
		NewHMACSHA1Hasher(),
		NewHMACSHA256Hasher(),
		NewArgon2Hasher(authCfg.Argon2),
	} {
		hashers[h.Scheme()] = h
	}

	scheme := entity.PasswordScheme(authCfg.PasswordScheme)
	if scheme == "" {
		scheme = entity.PasswordSchemeHMACSHA256
	}
	defaultHasher, ok := hashers[scheme]
	if !ok {
		return nil, domainerrors.ErrUnsupportedPasswordScheme.WithDetails(scheme.String())
	}

	minLength := max(authCfg.MinPasswordLength, config.MinPasswordLengthFloor)

	salts := params.Salts
	if salts == nil {
		salts = NewSaltGenerator(authCfg.SaltBytes)
	}

	tokens := params.Tokens
	if tokens == nil {
		tokens = NewJWTService(params.Config)
	}

	return &credentialManager{
		defaultHasher:     defaultHasher,
		hashers:           hashers,
		salts:             salts,
		tokens:            tokens,
		minPasswordLength: minLength,
		now:               time.Now,
	}, nil
}

// SetPassword derives a new salt and hash from plaintext and assigns both to user.
func (m *credentialManager) SetPassword(user *entity.User, plaintext string) error {
	if user == nil {
		return domainerrors.ErrValidationFailed.WithDetails("user is required")
	}
	if plaintext == "" {
		return domainerrors.ErrPasswordRequired
	}
	if utf8.RuneCountInString(plaintext) < m.minPasswordLength {
		return domainerrors.ErrPasswordTooShort.WithDetails(
			fmt.Sprintf("password must be at least %d characters", m.minPasswordLength),
		)
	}

	salt := m.salts.GenerateSalt()
	hashed := m.defaultHasher.Hash(plaintext, salt)
	if hashed == "" {
		return domainerrors.ErrPasswordHashFailed.WithDetails("empty salt or digest")
	}

	user.Salt = salt
	user.HashedPassword = hashed
	user.PasswordScheme = m.defaultHasher.Scheme()
	user.Touch(m.now())

	return nil
}

func (m *credentialManager) GenerateSalt() string {
	return m.salts.GenerateSalt()
}

// Hash returns "" when plaintext or the user's salt is empty, or the scheme is unknown.
func (m *credentialManager) Hash(user *entity.User, plaintext string) string {
	if user == nil {
		return ""
	}

	hasher := m.hasherFor(user)
	if hasher == nil {
		return ""
	}

	return hasher.Hash(plaintext, user.Salt)
}

// Verify compares in constant time and never reports a match against an empty hash.
func (m *credentialManager) Verify(user *entity.User, plaintext string) bool {
	if user == nil || user.HashedPassword == "" {
		return false
	}

	computed := m.Hash(user, plaintext)
	if computed == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(user.HashedPassword)) == 1
}

func (m *credentialManager) NeedsRehash(user *entity.User) bool {
	if user == nil || !user.HasCredential() || user.PasswordScheme == "" {
		return false
	}

	return user.PasswordScheme != m.defaultHasher.Scheme()
}

func (m *credentialManager) IssueToken(user *entity.User, secretKey string) (string, error) {
	if user == nil {
		return "", domainerrors.ErrSubjectRequired
	}

	return m.tokens.IssueToken(user.ID, secretKey)
}

// hasherFor resolves the hasher for the user's scheme. Records without a scheme use the default.
func (m *credentialManager) hasherFor(user *entity.User) service.PasswordHasher {
	if user.PasswordScheme == "" {
		return m.defaultHasher
	}

	return m.hashers[user.PasswordScheme]
}
