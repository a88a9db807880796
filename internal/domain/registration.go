package domain

import "context"

// AttendeeRegistration carries the profile collected by the registration
// form together with the event the attendee signs up for.
type AttendeeRegistration struct {
	FullName string
	Email    string
	Phone    string
	Group    string
	EventID  string
}

// AttendeeRegistrar hands a registration to the store's register_attendee
// procedure. Finding or creating the user and writing the event
// registration happen inside the store; a second registration of the same
// email for the same event fails with ErrAlreadyRegistered.
type AttendeeRegistrar interface {
	RegisterAttendee(ctx context.Context, reg AttendeeRegistration) error
}
