package email

import "fmt"

// Supported values for EMAIL_PROVIDER.
const (
	ProviderLog    = "log"
	ProviderResend = "resend"
)

// DefaultFrom is used when EMAIL_SENDER is empty.
const DefaultFrom = "Regdesk <onboarding@resend.dev>"

// NewSender returns the Sender for provider.
func NewSender(provider, apiKey, from string) (Sender, error) {
	if from == "" {
		from = DefaultFrom
	}
	switch provider {
	case "", ProviderLog:
		return &LogSender{from: from}, nil
	case ProviderResend:
		if apiKey == "" {
			return nil, fmt.Errorf("email provider is 'resend' but EMAIL_API_KEY is not set")
		}
		return newResendSender(apiKey, from), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", provider)
	}
}
