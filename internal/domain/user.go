package domain

import (
	"context"
	"time"
)

// DefaultRoleID is the role assigned to every user mirrored from the
// identity provider.
const DefaultRoleID = 3

// User represents the user record mirrored from the identity provider.
// Email is the natural key: the store keeps at most one record per email.
type User struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email"`
	ClerkID   string    `json:"clerk_id"`
	FullName  string    `json:"fullname"`
	RoleID    int       `json:"role_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	// UpsertByEmail inserts the user, or overwrites clerk_id, fullname,
	// role_id and updated_at of the record that already holds the email.
	// The conflict resolution must be atomic in the store.
	UpsertByEmail(ctx context.Context, user *User) error

	// FindUserByEmail returns ErrNotFound when no record holds the email.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}
