package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/middleware"
	"github.com/nfrund/regdesk/internal/view"
	"github.com/nfrund/regdesk/web/src/templates/layouts"
	"github.com/nfrund/regdesk/web/src/templates/pages"
)

// apiPrefix marks routes that always answer in JSON.
const apiPrefix = "/api/"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders the
// custom not-found page for browser routes and JSON for API routes.
func NewHTTPErrorHandler(site Site) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}

		logger := middleware.FromContext(c.Request().Context())
		if code >= http.StatusInternalServerError {
			logger.Error("Request failed", "event", "http_error", "status", code, "error", err)
		}

		if strings.HasPrefix(c.Request().URL.Path, apiPrefix) || c.Request().Method == http.MethodHead {
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(code)
				return
			}
			_ = c.JSON(code, map[string]string{"error": message})
			return
		}

		if code == http.StatusNotFound {
			page := layouts.Base("Página no encontrada", view.GetFlashData(c), site.Login(c),
				view.AdaptGomponentToTempl(pages.NotFound()))
			if rerr := c.Render(http.StatusNotFound, "", page); rerr != nil {
				logger.Error("Failed to render not found page", "event", "render_failed", "error", rerr)
			}
			return
		}

		_ = c.String(code, message)
	}
}
