package registration

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyNameRequired      = "registration.fullName.notblank"
	KeyNameTooShort      = "registration.fullName.trimmin"
	KeyEmailRequired     = "registration.email.notblank"
	KeyEmailInvalid      = "registration.email.emailshape"
	KeyPhoneRequired     = "registration.phone.notblank"
	KeyPhoneFormat       = "registration.phone.phonechars"
	KeyPhoneTooShort     = "registration.phone.phonedigits"
	KeyEventRequired     = "registration.eventId.notblank"
	KeyAlreadyRegistered = "registration.already_registered"
	KeyProcessingFailed  = "registration.failed"
)

func messageKey(field, tag string) string {
	return "registration." + field + "." + tag
}

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		KeyNameRequired:      "El nombre es requerido",
		KeyNameTooShort:      "Mínimo 3 caracteres",
		KeyEmailRequired:     "El email es requerido",
		KeyEmailInvalid:      "Email inválido",
		KeyPhoneRequired:     "El teléfono es requerido",
		KeyPhoneFormat:       "Formato inválido",
		KeyPhoneTooShort:     "Mínimo 10 dígitos",
		KeyEventRequired:     "Debes seleccionar un evento",
		KeyAlreadyRegistered: "Este correo ya está registrado para este evento.",
		KeyProcessingFailed:  "Error al procesar el registro.",
	},
	language.English: {
		KeyNameRequired:      "Name is required",
		KeyNameTooShort:      "At least 3 characters",
		KeyEmailRequired:     "Email is required",
		KeyEmailInvalid:      "Invalid email",
		KeyPhoneRequired:     "Phone is required",
		KeyPhoneFormat:       "Invalid format",
		KeyPhoneTooShort:     "At least 10 digits",
		KeyEventRequired:     "You must select an event",
		KeyAlreadyRegistered: "This email is already registered for this event.",
		KeyProcessingFailed:  "The registration could not be processed.",
	},
}

// Messages resolves message keys for an Accept-Language value. Spanish is
// the default.
type Messages struct {
	catalog *catalog.Builder
	matcher language.Matcher
}

// NewMessages builds the catalog.
func NewMessages() *Messages {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for tag, entries := range translations {
		for key, msg := range entries {
			// SetString only fails on malformed keys, which are constants here.
			_ = b.SetString(tag, key, msg)
		}
	}
	return &Messages{
		catalog: b,
		matcher: language.NewMatcher([]language.Tag{language.Spanish, language.English}),
	}
}

// Tag picks the supported language that best matches acceptLanguage.
func (m *Messages) Tag(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(m.matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "en" {
		return language.English
	}
	return language.Spanish
}

// Get returns the message for key in the language best matching
// acceptLanguage.
func (m *Messages) Get(acceptLanguage, key string) string {
	p := message.NewPrinter(m.Tag(acceptLanguage), message.Catalog(m.catalog))
	return p.Sprintf(key)
}
