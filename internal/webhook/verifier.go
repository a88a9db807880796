package webhook

import (
	"net/http"
	"strings"

	svix "github.com/svix/svix-webhooks/go"
)

// Names of the headers Svix attaches to every delivery.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

var requiredHeaders = []string{HeaderID, HeaderTimestamp, HeaderSignature}

// Verifier authenticates deliveries against the shared signing secret.
// It holds no per-request state and is safe for concurrent use.
type Verifier struct {
	wh *svix.Webhook
}

// NewVerifier builds a Verifier from a "whsec_" secret. An empty or
// undecodable secret is a configuration error.
func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, configurationError(nil, "webhook signing secret is not configured")
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, configurationError(err, "webhook signing secret is invalid")
	}
	return &Verifier{wh: wh}, nil
}

// RequireHeaders reports which of the three Svix headers are absent.
func (v *Verifier) RequireHeaders(h http.Header) error {
	var missing []string
	for _, name := range requiredHeaders {
		if h.Get(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return missingHeadersError(missing)
	}
	return nil
}

// Verify checks the signature over the delivery id, timestamp and the raw
// body. The body must be exactly the bytes received.
func (v *Verifier) Verify(h http.Header, body []byte) error {
	if err := v.RequireHeaders(h); err != nil {
		return err
	}
	if err := v.wh.Verify(body, h); err != nil {
		return invalidSignatureError(err)
	}
	return nil
}
