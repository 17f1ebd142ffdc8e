// Package auth implements the authentication subsystem: credential
// verification, JWT access/refresh token issuance, the logout token
// blacklist, and the middleware gating authenticated endpoints.
package auth

import "time"

// User represents a user account as stored in the database.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// Never expose the bcrypt hash.
	HashedPassword string    `json:"-"`
	JoinedAt       time.Time `json:"joined_at"`
}
