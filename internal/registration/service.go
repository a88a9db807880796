package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/regdesk/internal/domain"
	"github.com/nfrund/regdesk/internal/email"
	"github.com/nfrund/regdesk/internal/metrics"
)

// Service validates registration forms and hands valid ones to the store.
type Service struct {
	registrar domain.AttendeeRegistrar
	validator *Validator
	messages  *Messages
	mailer    email.Sender
	mailWait  time.Duration
	open      bool
}

// DefaultMailTimeout bounds how long a registration waits for the
// confirmation email.
const DefaultMailTimeout = 3 * time.Second

// Option configures a Service.
type Option func(*Service)

// WithMailer sends a confirmation email after each successful registration.
// Delivery failures are logged and do not fail the registration.
func WithMailer(sender email.Sender) Option {
	return func(s *Service) {
		s.mailer = sender
	}
}

// WithMailTimeout overrides DefaultMailTimeout.
func WithMailTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.mailWait = d
	}
}

// NewService creates a Service. open mirrors REGISTRATION_OPEN.
func NewService(registrar domain.AttendeeRegistrar, messages *Messages, open bool, opts ...Option) *Service {
	s := &Service{
		registrar: registrar,
		validator: NewValidator(messages),
		messages:  messages,
		mailWait:  DefaultMailTimeout,
		open:      open,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open reports whether the form accepts submissions.
func (s *Service) Open() bool { return s.open }

// Messages exposes the message catalog to the handlers.
func (s *Service) Messages() *Messages { return s.messages }

// Validate returns the field errors of form in lang.
func (s *Service) Validate(form Form, lang string) FieldErrors {
	return s.validator.Validate(form, lang)
}

// Register calls the store's register_attendee procedure once. A repeated
// registration is returned as domain.ErrAlreadyRegistered. The confirmation
// email is sent before returning, detached from ctx cancellation and bounded
// by the mail timeout.
func (s *Service) Register(ctx context.Context, logger *slog.Logger, form Form) error {
	reg := domain.AttendeeRegistration{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Group:    form.Group,
		EventID:  form.EventID,
	}

	err := s.registrar.RegisterAttendee(ctx, reg)
	switch {
	case err == nil:
		logger.Info("Attendee registered", "event", "attendee_registered", "email", reg.Email, "event_id", reg.EventID)
		metrics.RegistrationsTotal.WithLabelValues("registered").Inc()
		s.sendConfirmation(ctx, logger, reg)
		return nil
	case errors.Is(err, domain.ErrAlreadyRegistered):
		logger.Info("Attendee already registered", "event", "attendee_duplicate", "email", reg.Email, "event_id", reg.EventID)
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return domain.ErrAlreadyRegistered
	default:
		logger.Error("Failed to register attendee", "event", "attendee_register_failed", "email", reg.Email, "error", err)
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("register attendee: %w", err)
	}
}

// ErrorMessage turns a Register error into the message shown on the form.
func (s *Service) ErrorMessage(err error, lang string) string {
	if errors.Is(err, domain.ErrAlreadyRegistered) {
		return s.messages.Get(lang, KeyAlreadyRegistered)
	}
	return s.messages.Get(lang, KeyProcessingFailed)
}

func (s *Service) sendConfirmation(ctx context.Context, logger *slog.Logger, reg domain.AttendeeRegistration) {
	if s.mailer == nil {
		return
	}
	// The registration is already stored; a client disconnect must not
	// abort the email.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailWait)
	defer cancel()

	msg := email.Confirmation{FullName: reg.FullName, EventName: EventName(reg.EventID)}
	body, err := msg.HTML()
	if err == nil {
		err = s.mailer.Send(sendCtx, reg.Email, msg.Subject(), body)
	}
	if err != nil {
		logger.Warn("Failed to send confirmation email", "event", "confirmation_failed", "email", reg.Email, "error", err)
	}
}
