package model

import "time"

// Portal roles stored in users.role.  Municipal staff administer
// content; residents register for it.
const (
	RoleAdmin   = "ADMIN"
	RoleCitizen = "CITIZEN"
)

// User is an account record as stored in the `users` table.  Handlers
// define their own response types, so no json tags here.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique, lower-cased)
	FullName     string    // users.full_name
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role (ADMIN | CITIZEN)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
