package service

import (
	"time"

	"ipscope/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the identity claims carried by a session token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Name   string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session
// tokens. Tokens are self-contained: nothing is stored server-side and
// expiry is the only termination.
type TokenService interface {
	// Generate issues a signed token embedding the user's id, email and
	// name, expiring TTL from now.
	Generate(user *entity.User) (string, error)

	// Validate checks signature and expiry of a token string and returns
	// its claims. Expired or forged tokens fail.
	Validate(tokenString string) (*Claims, error)

	// TTL returns the configured token lifetime.
	TTL() time.Duration
}
