package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/regdesk/internal/app"
	"github.com/nfrund/regdesk/internal/config"
	"github.com/nfrund/regdesk/internal/handlers"
	appmiddleware "github.com/nfrund/regdesk/internal/middleware"
	"github.com/nfrund/regdesk/internal/rendering"
	"github.com/nfrund/regdesk/internal/webhook"
	"github.com/samber/do/v2"
)

// webhookBodyLimit caps the body the webhook route will read.
const webhookBodyLimit = "1M"

// Server holds the dependencies for the HTTP server.
type Server struct {
	E     *echo.Echo
	Cfg   *config.Config
	Store app.Store

	homeHandler         *handlers.HomeHandler
	registrationHandler *handlers.RegistrationHandler
	healthHandler       *handlers.HealthHandler
	webhookHandler      *webhook.Handler
}

// New resolves the handlers from the container and builds the echo
// instance with the global middleware chain. It fails when any service
// cannot be built, which includes a missing webhook secret.
func New(injector do.Injector) (*Server, error) {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return nil, err
	}
	store, err := do.Invoke[app.Store](injector)
	if err != nil {
		return nil, err
	}
	// The store holds a live connection from here on.
	fail := func(err error) (*Server, error) {
		_ = store.Close(context.Background())
		return nil, err
	}

	webhookHandler, err := do.Invoke[*webhook.Handler](injector)
	if err != nil {
		return fail(err)
	}
	homeHandler, err := do.Invoke[*handlers.HomeHandler](injector)
	if err != nil {
		return fail(err)
	}
	registrationHandler, err := do.Invoke[*handlers.RegistrationHandler](injector)
	if err != nil {
		return fail(err)
	}
	healthHandler, err := do.Invoke[*handlers.HealthHandler](injector)
	if err != nil {
		return fail(err)
	}
	site := do.MustInvoke[handlers.Site](injector)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(site)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.Logger)
	e.Use(appmiddleware.AccessLog())

	// Configure and use session middleware for flash messages.
	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(cookieStore))

	return &Server{
		E:                   e,
		Cfg:                 cfg,
		Store:               store,
		homeHandler:         homeHandler,
		registrationHandler: registrationHandler,
		healthHandler:       healthHandler,
		webhookHandler:      webhookHandler,
	}, nil
}
