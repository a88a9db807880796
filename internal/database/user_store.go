package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/regdesk/internal/database/schema"
	"github.com/nfrund/regdesk/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// upsertUserQuery relies on the user_email_unique index: a conflicting
// email turns the insert into an update of the supplied fields.
const upsertUserQuery = `
	INSERT INTO user {
		email: $email,
		clerk_id: $clerk_id,
		fullname: $fullname,
		role_id: $role_id,
		updated_at: <datetime>$updated_at
	} ON DUPLICATE KEY UPDATE
		clerk_id = $input.clerk_id,
		fullname = $input.fullname,
		role_id = $input.role_id,
		updated_at = $input.updated_at
	RETURN NONE`

const findUserByEmailQuery = `SELECT <string>id AS id, email, clerk_id, fullname, role_id, <string>updated_at AS updated_at FROM user WHERE email = $email`

// userRecord is the shape of a user row as SurrealDB returns it. Ids and
// datetimes are cast to strings in the query to keep decoding simple.
type userRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	ClerkID   string `json:"clerk_id"`
	FullName  string `json:"fullname"`
	RoleID    int    `json:"role_id"`
	UpdatedAt string `json:"updated_at"`
}

func (r userRecord) toDomain() *domain.User {
	u := &domain.User{
		ID:       r.ID,
		Email:    r.Email,
		ClerkID:  r.ClerkID,
		FullName: r.FullName,
		RoleID:   r.RoleID,
	}
	if t, err := time.Parse(time.RFC3339Nano, r.UpdatedAt); err == nil {
		u.UpdatedAt = t
	}
	return u
}

// Store implements domain.UserRepository and domain.AttendeeRegistrar on
// top of a SurrealDB connection.
type Store struct {
	db      *surrealdb.DB
	timeout time.Duration
}

// NewStore creates a new Store. timeout bounds every query unless the
// caller's context carries an override (see WithQueryTimeout).
func NewStore(db *surrealdb.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// UpsertByEmail implements domain.UserRepository.
func (s *Store) UpsertByEmail(ctx context.Context, user *domain.User) error {
	if user == nil {
		return NewDBError(ErrInvalidInput, "user cannot be nil")
	}
	ctx, cancel := getTimeoutFromContext(ctx, s.timeout)
	defer cancel()

	params := map[string]any{
		"email":      user.Email,
		"clerk_id":   user.ClerkID,
		"fullname":   user.FullName,
		"role_id":    user.RoleID,
		"updated_at": user.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := Execute(ctx, s.db, upsertUserQuery, params); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// FindUserByEmail implements domain.UserRepository.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := getTimeoutFromContext(ctx, s.timeout)
	defer cancel()

	record, err := QueryOne[userRecord](ctx, s.db, findUserByEmailQuery, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record.toDomain(), nil
}

// ApplySchema defines the tables, indexes and functions the store needs.
// Every definition is idempotent.
func (s *Store) ApplySchema(ctx context.Context) error {
	ctx, cancel := getTimeoutFromContext(ctx, s.timeout)
	defer cancel()
	if err := Execute(ctx, s.db, schema.Surreal, nil); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Ping checks the connection by asking the server for its version.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}
