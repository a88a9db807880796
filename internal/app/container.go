package app

import (
	"context"

	"github.com/nfrund/regdesk/internal/config"
	"github.com/nfrund/regdesk/internal/email"
	"github.com/nfrund/regdesk/internal/handlers"
	"github.com/nfrund/regdesk/internal/registration"
	"github.com/nfrund/regdesk/internal/webhook"
	"github.com/samber/do/v2"
)

// NewContainer registers every service of the application. Services are
// built lazily on first Invoke; store is used as-is when non-nil, which
// lets tests hand in a memory store.
func NewContainer(cfg *config.Config, store Store) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)

	if store != nil {
		do.ProvideValue[Store](injector, store)
	} else {
		do.Provide(injector, func(i do.Injector) (Store, error) {
			return OpenStore(context.Background(), do.MustInvoke[*config.Config](i))
		})
	}

	do.Provide(injector, func(i do.Injector) (*webhook.Verifier, error) {
		return webhook.NewVerifier(do.MustInvoke[*config.Config](i).ClerkWebhookSecret)
	})
	do.Provide(injector, func(i do.Injector) (*webhook.Syncer, error) {
		c := do.MustInvoke[*config.Config](i)
		s, err := do.Invoke[Store](i)
		if err != nil {
			return nil, err
		}
		return webhook.NewSyncer(s, webhook.EmptyEmailPolicy(c.WebhookEmptyEmailPolicy)), nil
	})
	do.Provide(injector, func(i do.Injector) (*webhook.Handler, error) {
		v, err := do.Invoke[*webhook.Verifier](i)
		if err != nil {
			return nil, err
		}
		s, err := do.Invoke[*webhook.Syncer](i)
		if err != nil {
			return nil, err
		}
		return webhook.NewHandler(v, s), nil
	})

	do.Provide(injector, func(i do.Injector) (*registration.Messages, error) {
		return registration.NewMessages(), nil
	})
	do.Provide(injector, func(i do.Injector) (email.Sender, error) {
		c := do.MustInvoke[*config.Config](i)
		return email.NewSender(c.EmailProvider, c.EmailAPIKey, c.EmailSender)
	})
	do.Provide(injector, func(i do.Injector) (*registration.Service, error) {
		s, err := do.Invoke[Store](i)
		if err != nil {
			return nil, err
		}
		mailer, err := do.Invoke[email.Sender](i)
		if err != nil {
			return nil, err
		}
		return registration.NewService(s, do.MustInvoke[*registration.Messages](i),
			do.MustInvoke[*config.Config](i).RegistrationOpen, registration.WithMailer(mailer)), nil
	})

	do.Provide(injector, func(i do.Injector) (handlers.Site, error) {
		c := do.MustInvoke[*config.Config](i)
		return handlers.Site{SignInURL: c.ClerkSignInURL, AccountURL: c.ClerkAccountURL}, nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.HomeHandler, error) {
		return handlers.NewHomeHandler(do.MustInvoke[handlers.Site](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.RegistrationHandler, error) {
		svc, err := do.Invoke[*registration.Service](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewRegistrationHandler(svc, do.MustInvoke[handlers.Site](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		s, err := do.Invoke[Store](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewHealthHandler(s), nil
	})

	return injector
}
