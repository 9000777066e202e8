package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the claims carried by issued tokens. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing signed bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueToken signs a token asserting subjectID with secretKey.
	IssueToken(subjectID uuid.UUID, secretKey string) (string, error)
}
