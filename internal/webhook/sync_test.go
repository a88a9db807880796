package webhook

import (
	"context"
	"log/slog"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncer_Apply(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("user created is persisted", func(t *testing.T) {
		repo := &recordingRepo{}
		out, err := NewSyncer(repo, EmptyEmailPassthrough).Apply(ctx, logger,
			UserCreated{UserID: "u1", Emails: []string{"a@x.com"}, FirstName: "Ana", LastName: "Lee"})

		require.NoError(t, err)
		assert.True(t, out.Persisted)
		assert.Equal(t, 1, repo.calls())
	})

	t.Run("store failure is a persistence error", func(t *testing.T) {
		repo := &recordingRepo{err: errStoreDown}
		_, err := NewSyncer(repo, EmptyEmailPassthrough).Apply(ctx, logger,
			UserCreated{UserID: "u1", Emails: []string{"a@x.com"}})

		require.Error(t, err)
		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, goerrors.CategoryOperation, rich.Category)
		assert.Equal(t, CodePersistence, rich.TextCode)
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("unhandled types are skipped", func(t *testing.T) {
		repo := &recordingRepo{}
		s := NewSyncer(repo, EmptyEmailPassthrough)
		for _, evt := range []Event{UserUpdated{UserID: "u1"}, UserDeleted{UserID: "u1"}, UnknownEvent{Kind: "x"}} {
			out, err := s.Apply(ctx, logger, evt)
			require.NoError(t, err)
			assert.False(t, out.Persisted)
			assert.Equal(t, ReasonUnhandledType, out.Reason)
		}
		assert.Equal(t, 0, repo.calls())
	})

	t.Run("unknown policy falls back to passthrough", func(t *testing.T) {
		repo := &recordingRepo{}
		out, err := NewSyncer(repo, EmptyEmailPolicy("bogus")).Apply(ctx, logger, UserCreated{UserID: "u1"})
		require.NoError(t, err)
		assert.True(t, out.Persisted)
	})
}
