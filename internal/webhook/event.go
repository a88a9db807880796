package webhook

import (
	"encoding/json"
	"strings"
)

// Event types sent by the identity provider.
const (
	TypeUserCreated = "user.created"
	TypeUserUpdated = "user.updated"
	TypeUserDeleted = "user.deleted"
)

// Event is one verified delivery. The set of implementations is closed;
// Syncer.Apply switches over all of them.
type Event interface {
	Type() string
	isEvent()
}

// UserCreated carries the attributes of a newly created user.
type UserCreated struct {
	UserID    string
	Emails    []string
	FirstName string
	LastName  string
}

// UserUpdated is recognised but not applied.
type UserUpdated struct {
	UserID string
}

// UserDeleted is recognised but not applied.
type UserDeleted struct {
	UserID string
}

// UnknownEvent is any type this package does not model.
type UnknownEvent struct {
	Kind string
}

func (UserCreated) Type() string    { return TypeUserCreated }
func (UserUpdated) Type() string    { return TypeUserUpdated }
func (UserDeleted) Type() string    { return TypeUserDeleted }
func (e UnknownEvent) Type() string { return e.Kind }

func (UserCreated) isEvent()  {}
func (UserUpdated) isEvent()  {}
func (UserDeleted) isEvent()  {}
func (UnknownEvent) isEvent() {}

type envelope struct {
	Type string       `json:"type"`
	Data envelopeData `json:"data"`
}

type envelopeData struct {
	ID             string         `json:"id"`
	EmailAddresses []emailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

// DecodeEvent parses a verified body. Only malformed JSON is an error;
// unknown types decode to UnknownEvent.
func DecodeEvent(body []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, invalidPayloadError(err)
	}

	switch env.Type {
	case TypeUserCreated:
		evt := UserCreated{UserID: env.Data.ID}
		for _, addr := range env.Data.EmailAddresses {
			evt.Emails = append(evt.Emails, addr.EmailAddress)
		}
		if env.Data.FirstName != nil {
			evt.FirstName = *env.Data.FirstName
		}
		if env.Data.LastName != nil {
			evt.LastName = *env.Data.LastName
		}
		return evt, nil
	case TypeUserUpdated:
		return UserUpdated{UserID: env.Data.ID}, nil
	case TypeUserDeleted:
		return UserDeleted{UserID: env.Data.ID}, nil
	default:
		return UnknownEvent{Kind: env.Type}, nil
	}
}

// Email is the first address, or "" when the list is empty.
func (e UserCreated) Email() string {
	if len(e.Emails) == 0 {
		return ""
	}
	return e.Emails[0]
}

// FullName joins the given and family names and trims the result, so a
// missing part leaves no stray space.
func (e UserCreated) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
