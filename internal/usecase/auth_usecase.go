// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ipscope/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the issued session token and the public profile
// projection after a successful login.
type LoginOutput struct {
	Token string         `json:"token"`
	User  entity.Profile `json:"user"`
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Login verifies credentials against the credential store and issues a
	// signed, time-limited session token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Profile returns the public projection for an authenticated user.
	Profile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
}
