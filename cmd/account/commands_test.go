package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTestSecret = "cli-test-secret"

func TestRun_UnknownSubcommand(t *testing.T) {
	var stderr bytes.Buffer

	err := run(context.Background(), []string{"frobnicate"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Usage: account")
}

func TestRun_MissingSubcommand(t *testing.T) {
	err := run(context.Background(), nil, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestRun_Register(t *testing.T) {
	t.Setenv("SECRETKEY_SIGNING", cliTestSecret)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"register", "-name", "Alice", "-email", "alice@example.com"},
		strings.NewReader("secret1\n"), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	var result registerResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "Alice", result.User.Name)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEmpty(t, result.User.Salt)
	assert.NotEmpty(t, result.User.HashedPassword)
	assert.Equal(t, "hmac-sha256", result.User.PasswordScheme)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(cliTestSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.Subject)

	assert.NotContains(t, stderr.String(), "secret1")
}

func TestRun_RegisterShortPassword(t *testing.T) {
	t.Setenv("SECRETKEY_SIGNING", cliTestSecret)

	var stdout bytes.Buffer
	err := run(context.Background(),
		[]string{"register", "-name", "Alice", "-email", "alice@example.com"},
		strings.NewReader("abc\n"), &stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is too short")
	assert.Empty(t, stdout.String())
}

func TestRun_RegisterWithoutSecret(t *testing.T) {
	t.Setenv("SECRETKEY_SIGNING", "")

	err := run(context.Background(),
		[]string{"register", "-name", "Alice", "-email", "alice@example.com"},
		strings.NewReader("secret1\n"), &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing secret is not configured")
}

func TestRun_Hash(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"hash", "-salt", "1712345678901", "-scheme", "hmac-sha1"},
		strings.NewReader("secret1\n"), &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	var result map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "3f95d307c44785d9c072dc73ce53811ab022fbb1", result["hash"])
	assert.Equal(t, "hmac-sha1", result["scheme"])
}

func TestRun_HashRequiresSalt(t *testing.T) {
	err := run(context.Background(), []string{"hash"}, strings.NewReader("secret1\n"), &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--salt")
}

func TestRun_HashUnknownScheme(t *testing.T) {
	err := run(context.Background(),
		[]string{"hash", "-salt", "abc", "-scheme", "md5"},
		strings.NewReader("secret1\n"), &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}
