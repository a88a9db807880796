// Package postgres implements the user and registration stores on
// PostgreSQL through a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nfrund/regdesk/internal/domain"
)

const uniqueViolation = "23505"

const upsertUserQuery = `
	INSERT INTO users (email, clerk_id, fullname, role_id, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (email) DO UPDATE
		SET clerk_id = EXCLUDED.clerk_id,
			fullname = EXCLUDED.fullname,
			role_id = EXCLUDED.role_id,
			updated_at = EXCLUDED.updated_at`

const findUserByEmailQuery = `
	SELECT id, email, clerk_id, fullname, role_id, updated_at
	FROM users
	WHERE email = $1`

const registerAttendeeQuery = `SELECT register_attendee($1, $2, $3, $4, $5)`

// Store implements domain.UserRepository and domain.AttendeeRegistrar.
type Store struct {
	pool        *pgxpool.Pool
	databaseURL string
	timeout     time.Duration
}

// NewStore opens a pool against databaseURL and pings it.
func NewStore(ctx context.Context, databaseURL string, timeout time.Duration) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool, databaseURL: databaseURL, timeout: timeout}, nil
}

// UpsertByEmail implements domain.UserRepository.
func (s *Store) UpsertByEmail(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, upsertUserQuery,
		user.Email, user.ClerkID, user.FullName, user.RoleID, user.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// FindUserByEmail implements domain.UserRepository.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		id   int64
		user domain.User
	)
	err := s.pool.QueryRow(ctx, findUserByEmailQuery, email).Scan(
		&id, &user.Email, &user.ClerkID, &user.FullName, &user.RoleID, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)
	return &user, nil
}

// RegisterAttendee implements domain.AttendeeRegistrar through the
// register_attendee function installed by the migrations.
func (s *Store) RegisterAttendee(ctx context.Context, reg domain.AttendeeRegistration) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, registerAttendeeQuery,
		reg.FullName, reg.Email, reg.Phone, reg.Group, reg.EventID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to register attendee: %w", err)
	}
	return nil
}

// ApplySchema runs the embedded migrations.
func (s *Store) ApplySchema(context.Context) error {
	return Migrate(s.databaseURL)
}

// Ping checks the pool can reach the server.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
