package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/middleware"
	"github.com/nfrund/regdesk/internal/registration"
	"github.com/nfrund/regdesk/internal/view"
	"github.com/nfrund/regdesk/internal/view/dto"
	"github.com/nfrund/regdesk/web/src/templates/layouts"
	"github.com/nfrund/regdesk/web/src/templates/pages"
	cmp "maragu.dev/gomponents"
)

const (
	registrationPath        = "/registro"
	registrationSuccessPath = "/registro/exito"
	successFlashMessage     = "¡Registro Exitoso!"
)

// RegistrationHandler serves the attendee registration form.
type RegistrationHandler struct {
	service *registration.Service
	site    Site
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(service *registration.Service, site Site) *RegistrationHandler {
	return &RegistrationHandler{service: service, site: site}
}

// RegisterGet renders the form, or the closed card (GET /registro).
func (h *RegistrationHandler) RegisterGet(c echo.Context) error {
	if !h.service.Open() {
		return h.renderPage(c, http.StatusOK, pages.RegistrationClosed())
	}
	return h.renderPage(c, http.StatusOK, pages.RegistrationForm(h.formData(registration.Form{}, nil)))
}

// RegisterPost validates and submits the form (POST /registro).
// htmx requests get the card fragment back; plain posts get a full page.
func (h *RegistrationHandler) RegisterPost(c echo.Context) error {
	// 1. Refuse submissions while registration is closed.
	if !h.service.Open() {
		return h.renderCard(c, http.StatusForbidden, pages.RegistrationClosed())
	}

	// 2. Bind the form.
	var form registration.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	lang := c.Request().Header.Get("Accept-Language")

	// 3. Validate locally before any remote call.
	if errs := h.service.Validate(form, lang); len(errs) > 0 {
		return h.renderCard(c, http.StatusUnprocessableEntity, pages.RegistrationForm(h.formData(form, errs)))
	}

	// 4. One call to the store's registration procedure.
	logger := middleware.FromContext(c.Request().Context())
	if err := h.service.Register(c.Request().Context(), logger, form); err != nil {
		errs := registration.FieldErrors{"email": h.service.ErrorMessage(err, lang)}
		return h.renderCard(c, http.StatusOK, pages.RegistrationForm(h.formData(form, errs)))
	}

	// 5. Post/redirect/get to the success page.
	view.SetFlashSuccess(c, successFlashMessage)
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", registrationSuccessPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, registrationSuccessPath)
}

// RegisterSuccessGet renders the confirmation (GET /registro/exito).
func (h *RegistrationHandler) RegisterSuccessGet(c echo.Context) error {
	return h.renderPage(c, http.StatusOK, pages.RegistrationSuccess())
}

func (h *RegistrationHandler) formData(form registration.Form, errs registration.FieldErrors) dto.RegistrationData {
	data := dto.RegistrationData{
		Values: map[string]string{
			"fullName": form.FullName,
			"email":    form.Email,
			"phone":    form.Phone,
			"group":    form.Group,
			"eventId":  form.EventID,
		},
		Errors: errs,
	}
	for _, e := range registration.Events {
		data.Events = append(data.Events, dto.Option{Value: e.ID, Label: e.Name})
	}
	for _, g := range registration.Groups {
		data.Groups = append(data.Groups, dto.Option{Value: g.Value, Label: g.Label})
	}
	return data
}

func (h *RegistrationHandler) renderPage(c echo.Context, status int, content cmp.Node) error {
	page := layouts.Base("Registro", view.GetFlashData(c), h.site.Login(c), view.AdaptGomponentToTempl(content))
	return c.Render(status, "", page)
}

// renderCard answers htmx with only the swapped card. htmx swaps 2xx
// responses only, so fragments always go out as 200.
func (h *RegistrationHandler) renderCard(c echo.Context, status int, content cmp.Node) error {
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", content)
	}
	return h.renderPage(c, status, content)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
