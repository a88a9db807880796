package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	appmiddleware "github.com/nfrund/regdesk/internal/middleware"
	"github.com/nfrund/regdesk/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := appmiddleware.RateLimiter(1, 10)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", s.homeHandler.HomeGet)

	s.E.GET("/registro", s.registrationHandler.RegisterGet)
	s.E.POST("/registro", s.registrationHandler.RegisterPost, rateLimiter)
	s.E.GET("/registro/exito", s.registrationHandler.RegisterSuccessGet)

	// The body limit applies before the handler reads the raw bytes.
	api := s.E.Group("/api")
	api.POST("/webhooks/clerk", s.webhookHandler.Receive, middleware.BodyLimit(webhookBodyLimit))

	s.E.GET("/health", s.healthHandler.HealthGet)
	s.E.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
