package webhook

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/regdesk/internal/domain"
	"github.com/nfrund/regdesk/internal/metrics"
)

// Outcome of applying one event.
type Outcome struct {
	Persisted bool
	Reason    string
}

// Skip reasons reported in Outcome.Reason.
const (
	ReasonUnhandledType = "unhandled event type"
	ReasonEmptyEmail    = "event has no email address"
)

// EmptyEmailPolicy decides what happens to a user.created event whose
// email list is empty.
type EmptyEmailPolicy string

const (
	// EmptyEmailPassthrough upserts the record with an empty email.
	EmptyEmailPassthrough EmptyEmailPolicy = "passthrough"
	// EmptyEmailSkip drops the event without writing.
	EmptyEmailSkip EmptyEmailPolicy = "skip"
)

// Syncer applies verified events to the user store.
type Syncer struct {
	users  domain.UserRepository
	policy EmptyEmailPolicy

	// Now stamps updated_at. Tests replace it.
	Now func() time.Time
}

// NewSyncer creates a Syncer. An unrecognised policy falls back to
// EmptyEmailPassthrough.
func NewSyncer(users domain.UserRepository, policy EmptyEmailPolicy) *Syncer {
	if policy != EmptyEmailSkip {
		policy = EmptyEmailPassthrough
	}
	return &Syncer{users: users, policy: policy, Now: time.Now}
}

// Apply writes the effect of evt, if any. A store failure is returned as a
// persistence error and is not retried.
func (s *Syncer) Apply(ctx context.Context, logger *slog.Logger, evt Event) (Outcome, error) {
	switch e := evt.(type) {
	case UserCreated:
		return s.applyUserCreated(ctx, logger, e)
	case UserUpdated, UserDeleted, UnknownEvent:
		logger.Info("Webhook event ignored", "event", "webhook_ignored", "type", evt.Type())
		metrics.WebhookEventsTotal.WithLabelValues(evt.Type(), "ignored").Inc()
		return Outcome{Reason: ReasonUnhandledType}, nil
	default:
		logger.Warn("Webhook event of unexpected Go type ignored", "event", "webhook_ignored", "type", evt.Type())
		return Outcome{Reason: ReasonUnhandledType}, nil
	}
}

func (s *Syncer) applyUserCreated(ctx context.Context, logger *slog.Logger, e UserCreated) (Outcome, error) {
	email := e.Email()
	if email == "" && s.policy == EmptyEmailSkip {
		logger.Warn("User created without email, not persisted",
			"event", "user_upsert_skipped",
			"clerk_id", e.UserID,
		)
		metrics.WebhookEventsTotal.WithLabelValues(e.Type(), "skipped").Inc()
		return Outcome{Reason: ReasonEmptyEmail}, nil
	}

	user := &domain.User{
		Email:     email,
		ClerkID:   e.UserID,
		FullName:  e.FullName(),
		RoleID:    domain.DefaultRoleID,
		UpdatedAt: s.Now(),
	}

	start := time.Now()
	err := s.users.UpsertByEmail(ctx, user)
	metrics.UpsertDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Failed to upsert user",
			"event", "user_upsert_failed",
			"clerk_id", user.ClerkID,
			"email", user.Email,
			"error", err,
		)
		metrics.WebhookEventsTotal.WithLabelValues(e.Type(), "failed").Inc()
		return Outcome{}, persistenceError(err, user.Email)
	}

	logger.Info("User upserted",
		"event", "user_upserted",
		"clerk_id", user.ClerkID,
		"email", user.Email,
	)
	metrics.WebhookEventsTotal.WithLabelValues(e.Type(), "persisted").Inc()
	return Outcome{Persisted: true}, nil
}
