package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nfrund/regdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"surreal index", errors.New("Database index `event_registration_unique` already contains ['user:abc', 'event:1']"), true},
		{"postgres message", errors.New(`duplicate key value violates unique constraint "uq"`), true},
		{"wrapped sentinel", NewDBError(domain.ErrAlreadyRegistered, "register"), true},
		{"other failure", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestDBError(t *testing.T) {
	err := NewDBError(ErrQueryFailed, "upsert user").WithQuery("  INSERT INTO user {}  ")

	assert.Equal(t, "upsert user\nQuery: INSERT INTO user {}: query execution failed", err.Error())
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestHasLimitClause(t *testing.T) {
	assert.True(t, hasLimitClause("SELECT * FROM user LIMIT 1"))
	assert.True(t, hasLimitClause("select * from user limit 5"))
	assert.False(t, hasLimitClause("SELECT * FROM user WHERE email = $email"))
	assert.False(t, hasLimitClause("SELECT * FROM unlimited"))
}

func TestGetTimeoutFromContext(t *testing.T) {
	t.Run("uses default", func(t *testing.T) {
		ctx, cancel := getTimeoutFromContext(context.Background(), time.Minute)
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)
	})

	t.Run("honours override", func(t *testing.T) {
		base := WithQueryTimeout(context.Background(), 50*time.Millisecond)
		ctx, cancel := getTimeoutFromContext(base, time.Hour)
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, time.Second)
	})
}

func TestUserRecordToDomain(t *testing.T) {
	rec := userRecord{
		ID:        "user:abc",
		Email:     "a@x.com",
		ClerkID:   "u1",
		FullName:  "Ana Lee",
		RoleID:    domain.DefaultRoleID,
		UpdatedAt: "2026-10-17T10:00:00Z",
	}

	u := rec.toDomain()
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "u1", u.ClerkID)
	assert.Equal(t, "Ana Lee", u.FullName)
	assert.Equal(t, 3, u.RoleID)
	assert.Equal(t, time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC), u.UpdatedAt)
}

func TestRedactDBURL(t *testing.T) {
	assert.Equal(t, "ws://root:xxxxx@localhost:8000/rpc", redactDBURL("ws://root:secret@localhost:8000/rpc"))
	assert.Equal(t, "invalid-url", redactDBURL("://bad"))
}
