package dto

// Option is one entry of a select box.
type Option struct {
	Value string
	Label string
}

// RegistrationData is the view model of the registration form.
type RegistrationData struct {
	// Values holds the submitted values keyed by form field name, so a
	// failed POST re-renders what the user typed.
	Values map[string]string
	// Errors holds one message per invalid field.
	Errors map[string]string

	Events []Option
	Groups []Option
}

// Value returns the submitted value of field.
func (d RegistrationData) Value(field string) string {
	return d.Values[field]
}

// Error returns the message for field, or "".
func (d RegistrationData) Error(field string) string {
	return d.Errors[field]
}

// LoginData drives the login widget in the site header.
type LoginData struct {
	SignedIn   bool
	SignInURL  string
	AccountURL string
}
