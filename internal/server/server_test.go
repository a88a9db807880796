package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/app"
	"github.com/nfrund/regdesk/internal/config"
	"github.com/nfrund/regdesk/internal/database/memory"
	"github.com/nfrund/regdesk/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func setupServer(t *testing.T) (*server.Server, *memory.Store) {
	t.Helper()
	cfg := &config.Config{
		AppAddr:                 ":0",
		SessionSecret:           "a-very-secret-key-for-testing-!",
		ClerkWebhookSecret:      testSecret,
		WebhookEmptyEmailPolicy: config.EmptyEmailPassthrough,
		DBDriver:                config.DriverMemory,
		DBQueryTimeout:          5 * time.Second,
		RegistrationOpen:        true,
	}
	store := memory.NewStore()
	s, err := server.New(app.NewContainer(cfg, store))
	require.NoError(t, err)
	s.RegisterRoutes()
	return s, store
}

func signedWebhook(t *testing.T, body string) *http.Request {
	t.Helper()
	wh, err := svix.NewWebhook(testSecret)
	require.NoError(t, err)
	now := time.Now()
	sig, err := wh.Sign("msg_1", now, []byte(body))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("svix-signature", sig)
	return req
}

func TestWebhookRoute(t *testing.T) {
	s, store := setupServer(t)
	body := `{"type":"user.created","data":{"id":"u1","email_addresses":[{"email_address":"a@x.com"}],"first_name":"Ana","last_name":"Lee"}}`

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, signedWebhook(t, body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Webhook recibido"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	user, err := store.FindUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lee", user.FullName)
}

func TestWebhookRoute_MissingHeaders(t *testing.T) {
	s, store := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error: Faltan headers svix", rec.Body.String())
	assert.Equal(t, 0, store.Count())
}

func TestWebhookRoute_BodyLimit(t *testing.T) {
	s, store := setupServer(t)
	big := `{"type":"user.created","data":{"id":"` + strings.Repeat("x", 2<<20) + `"}}`

	t.Run("declared length", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.E.ServeHTTP(rec, signedWebhook(t, big))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("chunked body", func(t *testing.T) {
		req := signedWebhook(t, big)
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		s.E.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.NotContains(t, rec.Body.String(), "payload inválido")
		assert.Equal(t, 0, store.Count())
	})
}

func TestAuxiliaryRoutes(t *testing.T) {
	s, _ := setupServer(t)

	tests := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/metrics", http.StatusOK, "regdesk_"},
		{"/static/site.css", http.StatusOK, "--brand"},
		{"/", http.StatusOK, "Regdesk"},
		{"/registro", http.StatusOK, "Registro de Asistencia"},
		{"/missing", http.StatusNotFound, "404 - Página no encontrada"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestNew_FailsClosedWithoutSecret(t *testing.T) {
	cfg := &config.Config{
		WebhookEmptyEmailPolicy: config.EmptyEmailPassthrough,
		DBDriver:                config.DriverMemory,
		DBQueryTimeout:          time.Second,
	}
	_, err := server.New(app.NewContainer(cfg, memory.NewStore()))
	assert.Error(t, err)
}

type closeTrackingStore struct {
	*memory.Store
	closed bool
}

func (s *closeTrackingStore) Close(ctx context.Context) error {
	s.closed = true
	return s.Store.Close(ctx)
}

func TestNew_ClosesStoreWhenALaterServiceFails(t *testing.T) {
	cfg := &config.Config{
		SessionSecret:           "a-very-secret-key-for-testing-!",
		ClerkWebhookSecret:      testSecret,
		WebhookEmptyEmailPolicy: config.EmptyEmailPassthrough,
		DBDriver:                config.DriverMemory,
		DBQueryTimeout:          5 * time.Second,
		EmailProvider:           "resend",
	}
	store := &closeTrackingStore{Store: memory.NewStore()}

	_, err := server.New(app.NewContainer(cfg, store))
	require.Error(t, err)
	assert.True(t, store.closed)
}
