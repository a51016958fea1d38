// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the credential store, representing one
// registered account. Exactly one User exists per email address.
type User struct {
	ID           uuid.UUID // Server-assigned identifier, immutable once created.
	Name         string    // The user's display name.
	Email        string    // Unique login identifier, case-sensitive as stored.
	PasswordHash string    // Salted bcrypt hash. Never serialized or logged.
	CreatedAt    time.Time // Timestamp of when this account was created.
}

// Profile is the public projection of a User returned to clients.
// It deliberately omits the password hash.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PublicProfile returns the projection of the user safe to hand to clients.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
