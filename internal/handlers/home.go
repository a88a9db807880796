package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/view"
	"github.com/nfrund/regdesk/web/src/templates/layouts"
	"github.com/nfrund/regdesk/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	site Site
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(site Site) *HomeHandler {
	return &HomeHandler{site: site}
}

// HomeGet handles the GET request for the home page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	// 1. Build the page content and adapt it for the templ layout.
	pageContent := view.AdaptGomponentToTempl(pages.HomeContent())

	// 2. Wrap it in the Base layout with flashes and the login widget.
	finalComponent := layouts.Base("Inicio", view.GetFlashData(c), h.site.Login(c), pageContent)

	// 3. The 'name' parameter is ignored by the renderer; the component is passed as 'data'.
	return c.Render(http.StatusOK, "", finalComponent)
}
