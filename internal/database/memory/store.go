// Package memory provides an in-process store for local development and
// tests. Data does not survive a restart.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/regdesk/internal/domain"
)

type registrationKey struct {
	email   string
	eventID string
}

// Store keeps users keyed by email and registrations keyed by
// (email, event). A single mutex makes the upsert atomic.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*domain.User
	registrations map[registrationKey]domain.AttendeeRegistration
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]*domain.User),
		registrations: make(map[registrationKey]domain.AttendeeRegistration),
	}
}

// UpsertByEmail implements domain.UserRepository.
func (s *Store) UpsertByEmail(_ context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.Email]
	if !ok {
		stored := *user
		stored.ID = "user:" + uuid.NewString()
		s.users[user.Email] = &stored
		return nil
	}
	existing.ClerkID = user.ClerkID
	existing.FullName = user.FullName
	existing.RoleID = user.RoleID
	existing.UpdatedAt = user.UpdatedAt
	return nil
}

// FindUserByEmail implements domain.UserRepository.
func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// RegisterAttendee implements domain.AttendeeRegistrar.
func (s *Store) RegisterAttendee(_ context.Context, reg domain.AttendeeRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := registrationKey{email: reg.Email, eventID: reg.EventID}
	if _, exists := s.registrations[key]; exists {
		return domain.ErrAlreadyRegistered
	}
	if user, ok := s.users[reg.Email]; ok {
		user.FullName = reg.FullName
	} else {
		s.users[reg.Email] = &domain.User{
			ID:       "user:" + uuid.NewString(),
			Email:    reg.Email,
			FullName: reg.FullName,
			RoleID:   domain.DefaultRoleID,
		}
	}
	s.registrations[key] = reg
	return nil
}

// Count returns the number of user records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// ApplySchema is a no-op; the memory store has no schema.
func (s *Store) ApplySchema(context.Context) error { return nil }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }
