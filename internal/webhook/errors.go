package webhook

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by the errors this package returns. The handler maps
// them to responses; tests match on them.
const (
	CodeConfiguration    = "WEBHOOK_CONFIGURATION"
	CodeMissingHeaders   = "WEBHOOK_MISSING_HEADERS"
	CodeInvalidSignature = "WEBHOOK_INVALID_SIGNATURE"
	CodeInvalidPayload   = "WEBHOOK_INVALID_PAYLOAD"
	CodePersistence      = "WEBHOOK_PERSISTENCE"
)

func webhookError(message string, category goerrors.Category, code int, textCode string, metadata map[string]any) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func webhookWrapError(source error, category goerrors.Category, message string, code int, textCode string, metadata map[string]any) error {
	if source == nil {
		return webhookError(message, category, code, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func configurationError(source error, message string) error {
	return webhookWrapError(source, goerrors.CategoryInternal, message,
		http.StatusInternalServerError, CodeConfiguration, nil)
}

func missingHeadersError(missing []string) error {
	return webhookError("missing svix headers", goerrors.CategoryAuth,
		http.StatusBadRequest, CodeMissingHeaders, map[string]any{"missing": missing})
}

func invalidSignatureError(source error) error {
	return webhookWrapError(source, goerrors.CategoryAuth, "webhook signature verification failed",
		http.StatusBadRequest, CodeInvalidSignature, nil)
}

func invalidPayloadError(source error) error {
	return webhookWrapError(source, goerrors.CategoryBadInput, "webhook payload is not a valid event",
		http.StatusBadRequest, CodeInvalidPayload, nil)
}

func persistenceError(source error, email string) error {
	return webhookWrapError(source, goerrors.CategoryOperation, "failed to persist user",
		http.StatusInternalServerError, CodePersistence, map[string]any{"email": email})
}

// TextCode returns the text code of err when it is a rich error from this
// package, or "" otherwise.
func TextCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
