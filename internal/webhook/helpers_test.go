package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/domain"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

// recordingRepo is a domain.UserRepository that records every upsert.
type recordingRepo struct {
	mu      sync.Mutex
	upserts []domain.User
	err     error
}

func (r *recordingRepo) UpsertByEmail(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.upserts = append(r.upserts, *user)
	return nil
}

func (r *recordingRepo) FindUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (r *recordingRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

var errStoreDown = errors.New("connection refused")

// signedRequest builds a POST carrying valid Svix headers for body.
func signedRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	wh, err := svix.NewWebhook(testSecret)
	require.NoError(t, err)

	id := "msg_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	ts := time.Now()
	sig, err := wh.Sign(id, ts, []byte(body))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderID, id)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts.Unix(), 10))
	req.Header.Set(HeaderSignature, sig)
	return req
}

func newTestHandler(t *testing.T, repo domain.UserRepository, policy EmptyEmailPolicy) *Handler {
	t.Helper()
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)
	syncer := NewSyncer(repo, policy)
	syncer.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return NewHandler(verifier, syncer)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Receive(c)
	return rec
}

const anaLeeCreated = `{"type":"user.created","data":{"id":"u1","email_addresses":[{"email_address":"a@x.com"}],"first_name":"Ana","last_name":"Lee"}}`
