package registration

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/nfrund/regdesk/internal/database/memory"
	"github.com/nfrund/regdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRegistrar struct{ err error }

func (f failingRegistrar) RegisterAttendee(context.Context, domain.AttendeeRegistration) error {
	return f.err
}

type sentMail struct{ to, subject, body string }

type recordingMailer struct {
	sent        []sentMail
	err         error
	ctxErr      error
	hasDeadline bool
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	m.ctxErr = ctx.Err()
	_, m.hasDeadline = ctx.Deadline()
	return m.err
}

type blockingMailer struct{}

func (blockingMailer) Send(ctx context.Context, _, _, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("second registration for the same event is a duplicate", func(t *testing.T) {
		svc := NewService(memory.NewStore(), NewMessages(), true)
		form := validForm()
		form.Email = gofakeit.Email()

		require.NoError(t, svc.Register(ctx, logger, form))
		err := svc.Register(ctx, logger, form)
		require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		assert.Equal(t, "Este correo ya está registrado para este evento.", svc.ErrorMessage(err, ""))
	})

	t.Run("other failures get the generic message", func(t *testing.T) {
		svc := NewService(failingRegistrar{err: errors.New("timeout")}, NewMessages(), true)

		err := svc.Register(ctx, logger, validForm())
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAlreadyRegistered)
		assert.Equal(t, "Error al procesar el registro.", svc.ErrorMessage(err, "es"))
	})

	t.Run("successful registration sends a confirmation", func(t *testing.T) {
		mailer := &recordingMailer{}
		svc := NewService(memory.NewStore(), NewMessages(), true, WithMailer(mailer))
		form := validForm()

		require.NoError(t, svc.Register(ctx, logger, form))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, form.Email, mailer.sent[0].to)
		assert.Equal(t, "Registro confirmado: Hackathon Frontend", mailer.sent[0].subject)
		assert.Contains(t, mailer.sent[0].body, form.FullName)
	})

	t.Run("mailer failure does not fail the registration", func(t *testing.T) {
		mailer := &recordingMailer{err: errors.New("smtp down")}
		svc := NewService(memory.NewStore(), NewMessages(), true, WithMailer(mailer))

		assert.NoError(t, svc.Register(ctx, logger, validForm()))
	})

	t.Run("duplicate sends nothing", func(t *testing.T) {
		mailer := &recordingMailer{}
		store := memory.NewStore()
		svc := NewService(store, NewMessages(), true, WithMailer(mailer))
		form := validForm()

		require.NoError(t, svc.Register(ctx, logger, form))
		require.ErrorIs(t, svc.Register(ctx, logger, form), domain.ErrAlreadyRegistered)
		assert.Len(t, mailer.sent, 1)
	})

	t.Run("cancelled request still sends the confirmation", func(t *testing.T) {
		mailer := &recordingMailer{}
		svc := NewService(memory.NewStore(), NewMessages(), true, WithMailer(mailer))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		require.NoError(t, svc.Register(cancelled, logger, validForm()))
		require.Len(t, mailer.sent, 1)
		assert.NoError(t, mailer.ctxErr)
		assert.True(t, mailer.hasDeadline)
	})

	t.Run("slow mailer is cut off by the mail timeout", func(t *testing.T) {
		svc := NewService(memory.NewStore(), NewMessages(), true,
			WithMailer(blockingMailer{}), WithMailTimeout(20*time.Millisecond))

		start := time.Now()
		require.NoError(t, svc.Register(ctx, logger, validForm()))
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("open flag", func(t *testing.T) {
		assert.False(t, NewService(memory.NewStore(), NewMessages(), false).Open())
		assert.True(t, NewService(memory.NewStore(), NewMessages(), true).Open())
	})
}
