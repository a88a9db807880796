package registration

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

// Form is the attendee registration form as posted by the browser.
// Group is collected but not validated.
type Form struct {
	FullName string `form:"fullName" validate:"notblank,trimmin=3"`
	Email    string `form:"email" validate:"notblank,emailshape"`
	Phone    string `form:"phone" validate:"notblank,phonechars,phonedigits=10"`
	Group    string `form:"group"`
	EventID  string `form:"eventId" validate:"notblank"`
}

// FieldErrors maps a form field name to the message shown under it.
type FieldErrors map[string]string

// Validator checks a Form with the field rules of the registration page.
type Validator struct {
	validate *validator.Validate
	messages *Messages
}

// NewValidator creates a Validator with the custom tags registered.
func NewValidator(messages *Messages) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "trimmin", trimmedMin)
	mustRegister(v, "emailshape", emailShape)
	mustRegister(v, "phonechars", phoneChars)
	mustRegister(v, "phonedigits", phoneDigits)

	return &Validator{validate: v, messages: messages}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("registration: failed to register validation " + tag + ": " + err.Error())
	}
}

// Validate returns one message per failing field, in lang, or nil when
// the form is valid. Rules run in tag order and only the first failure of
// each field is reported.
func (v *Validator) Validate(form Form, lang string) FieldErrors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": v.messages.Get(lang, KeyProcessingFailed)}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = v.messages.Get(lang, messageKey(fe.Field(), fe.Tag()))
	}
	return out
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= n
}

func emailShape(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func phoneChars(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func phoneDigits(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	digits := 0
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= n
}
