package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		want     any
		wantErr  bool
	}{
		{name: "default is log", provider: "", want: &LogSender{}},
		{name: "log", provider: ProviderLog, want: &LogSender{}},
		{name: "resend", provider: ProviderResend, apiKey: "re_123", want: &ResendSender{}},
		{name: "resend without key", provider: ProviderResend, wantErr: true},
		{name: "unknown", provider: "smtp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSender(tt.provider, tt.apiKey, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, sender)
		})
	}
}

func TestResendSender_Send(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := newResendSender("re_123", "Regdesk <hola@example.com>")
	s.endpoint = srv.URL

	require.NoError(t, s.Send(context.Background(), "ana@example.com", "Hola", "<p>hi</p>"))
	assert.Equal(t, "Bearer re_123", auth)
	assert.Equal(t, []string{"ana@example.com"}, got.To)
	assert.Equal(t, "Regdesk <hola@example.com>", got.From)
	assert.Equal(t, "<p>hi</p>", got.HTML)
}

func TestResendSender_SendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := newResendSender("re_123", DefaultFrom)
	s.endpoint = srv.URL

	err := s.Send(context.Background(), "ana@example.com", "Hola", "<p>hi</p>")
	assert.ErrorContains(t, err, "status 422")
}

func TestConfirmation(t *testing.T) {
	c := Confirmation{FullName: "Ana <Lee>", EventName: "Hackathon Frontend"}

	assert.Equal(t, "Registro confirmado: Hackathon Frontend", c.Subject())
	body, err := c.HTML()
	require.NoError(t, err)
	assert.Contains(t, body, "Hola Ana &lt;Lee&gt;,")
	assert.Contains(t, body, "<strong>Hackathon Frontend</strong>")
}
