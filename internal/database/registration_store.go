package database

import (
	"context"
	"fmt"

	"github.com/nfrund/regdesk/internal/domain"
)

const registerAttendeeQuery = `RETURN fn::register_attendee($full_name, $email, $phone, $user_group, $event_id)`

// RegisterAttendee implements domain.AttendeeRegistrar by calling the
// fn::register_attendee function defined in the schema.
func (s *Store) RegisterAttendee(ctx context.Context, reg domain.AttendeeRegistration) error {
	ctx, cancel := getTimeoutFromContext(ctx, s.timeout)
	defer cancel()

	params := map[string]any{
		"full_name":  reg.FullName,
		"email":      reg.Email,
		"phone":      reg.Phone,
		"user_group": reg.Group,
		"event_id":   reg.EventID,
	}
	if err := Execute(ctx, s.db, registerAttendeeQuery, params); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to register attendee: %w", err)
	}
	return nil
}
