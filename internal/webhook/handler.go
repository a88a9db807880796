package webhook

import (
	"errors"
	"io"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/metrics"
	"github.com/nfrund/regdesk/internal/middleware"
)

// Response bodies returned to the identity provider.
const (
	msgMissingHeaders   = "Error: Faltan headers svix"
	msgInvalidSignature = "Error: firma de webhook inválida"
	msgInvalidPayload   = "Error: payload inválido"
	msgDBError          = "Error en DB"
	msgReceived         = "Webhook recibido"
)

// SuccessResponse is the body of every 200 reply.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of a 500 reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves POST /api/webhooks/clerk.
type Handler struct {
	verifier *Verifier
	syncer   *Syncer
}

// NewHandler creates a Handler. Both dependencies are required; there is
// no way to build a Handler that skips verification.
func NewHandler(verifier *Verifier, syncer *Syncer) *Handler {
	if verifier == nil || syncer == nil {
		panic("webhook: NewHandler requires a verifier and a syncer")
	}
	return &Handler{verifier: verifier, syncer: syncer}
}

// Receive verifies, decodes and applies one delivery.
func (h *Handler) Receive(c echo.Context) error {
	req := c.Request()
	logger := middleware.FromContext(req.Context()).With("svix_id", req.Header.Get(HeaderID))

	// 1. Headers are checked before the body is read.
	if err := h.verifier.RequireHeaders(req.Header); err != nil {
		logger.Warn("Webhook rejected", "event", "webhook_rejected", "reason", "missing headers")
		return h.respond(c, err)
	}

	// 2. Read the raw body once. The signature covers these exact bytes.
	body, err := io.ReadAll(req.Body)
	if err != nil {
		// BodyLimit reports an oversized body without Content-Length while
		// it is being read; echo's error handler answers 413.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			logger.Warn("Webhook rejected", "event", "webhook_rejected", "reason", "body too large")
			metrics.WebhookRequestsTotal.WithLabelValues("too_large").Inc()
			return he
		}
		logger.Error("Failed to read webhook body", "event", "webhook_rejected", "error", err)
		return h.respond(c, invalidPayloadError(err))
	}

	// 3. Verify before interpreting anything.
	if err := h.verifier.Verify(req.Header, body); err != nil {
		logger.Warn("Webhook signature rejected", "event", "webhook_rejected", "reason", "invalid signature", "error", err)
		return h.respond(c, err)
	}

	// 4. Classify.
	evt, err := DecodeEvent(body)
	if err != nil {
		logger.Warn("Webhook payload rejected", "event", "webhook_rejected", "reason", "invalid payload", "error", err)
		return h.respond(c, err)
	}

	// 5. Apply.
	if _, err := h.syncer.Apply(req.Context(), logger, evt); err != nil {
		return h.respond(c, err)
	}
	return h.respond(c, nil)
}

// respond maps an outcome to the status and body the provider expects.
func (h *Handler) respond(c echo.Context, err error) error {
	if err == nil {
		metrics.WebhookRequestsTotal.WithLabelValues("accepted").Inc()
		return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: msgReceived})
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		metrics.WebhookRequestsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgDBError})
	}

	switch rich.TextCode {
	case CodeMissingHeaders:
		metrics.WebhookRequestsTotal.WithLabelValues("missing_headers").Inc()
		return c.String(http.StatusBadRequest, msgMissingHeaders)
	case CodeInvalidSignature:
		metrics.WebhookRequestsTotal.WithLabelValues("invalid_signature").Inc()
		return c.String(http.StatusBadRequest, msgInvalidSignature)
	case CodeInvalidPayload:
		metrics.WebhookRequestsTotal.WithLabelValues("invalid_payload").Inc()
		return c.String(http.StatusBadRequest, msgInvalidPayload)
	default:
		metrics.WebhookRequestsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgDBError})
	}
}
