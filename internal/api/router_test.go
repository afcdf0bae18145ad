package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/service"
	"github.com/99minutos/community-board/internal/core/store"
	"github.com/99minutos/community-board/internal/infrastructure/db/memory"
)

const adminEmail = "root@school.edu"

type server struct {
	e     *echo.Echo
	store *store.Store
}

func newServer(t *testing.T) *server {
	t.Helper()
	return newServerWithPolicy(t, domain.AccessPolicy{ReadOnlyForUnapproved: true})
}

func newServerWithPolicy(t *testing.T, policy domain.AccessPolicy) *server {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }

	storage := memory.New()
	st, err := store.Open(ctx, storage, store.WithClock(clock))
	require.NoError(t, err)
	_, err = st.Migrate(ctx, service.DemoSeed(adminEmail, clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	e := NewRouter(Options{
		Auth:           service.NewAuthService(st, log),
		Posts:          service.NewPostService(st, log),
		Events:         service.NewEventService(st, log),
		Admin:          service.NewAdminService(st, adminEmail, log),
		Images:         service.NewImageService(0.0001),
		StorageBackend: "memory",
		Storage:        storage,
		AllowedDomains: []string{"@school.edu"},
		Policy:         policy,
		Logger:         log,
		Registerer:     reg,
		Gatherer:       reg,
	})
	return &server{e: e, store: st}
}

func (s *server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *server) signIn(t *testing.T, email string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/sign-in", `{"email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_ReadsNeedSession(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/posts", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "sign in required", decodeError(t, rec).Error)

	rec = s.do(t, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/auth/me", "")
	assert.JSONEq(t, `{"user":null,"can_write":false,"read_only":false}`, rec.Body.String())

	// Pending users browse in read-only mode.
	s.signIn(t, "ana@school.edu")
	rec = s.do(t, http.MethodGet, "/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)

	rec = s.do(t, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Campus Cleanup Day")
}

func TestRouter_StrictPolicyHidesPagesFromPendingUsers(t *testing.T) {
	s := newServerWithPolicy(t, domain.AccessPolicy{})
	s.signIn(t, "ana@school.edu")

	for _, path := range []string{"/posts", "/events"} {
		rec := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, "account is pending approval", decodeError(t, rec).Error, path)
	}

	s.signIn(t, adminEmail)
	rec := s.do(t, http.MethodGet, "/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_WritesNeedApprovedSession(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/posts", `{"text":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.signIn(t, "ana@school.edu")
	rec = s.do(t, http.MethodPost, "/posts", `{"text":"hi"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "account is pending approval", decodeError(t, rec).Error)

	s.signIn(t, adminEmail)
	rec = s.do(t, http.MethodPost, "/posts", `{"text":"Hello <b>campus</b>","tags":["#News"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "Hello &lt;b&gt;campus&lt;/b&gt;", post["text"])
	assert.Equal(t, []any{"news"}, post["tags"])
}

func TestRouter_ErrorMapping(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/auth/sign-in", `{"email":"ana@gmail.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "email", body.Field)
	assert.Equal(t, "email must end with: @school.edu", body.Error)

	s.signIn(t, adminEmail)
	rec = s.do(t, http.MethodPost, "/admin/users/user_missing/approve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/events", `{"title":"Picnic","date":"June 1","time":"18:00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "date", decodeError(t, rec).Field)

	rec = s.do(t, http.MethodPost, "/posts", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/posts?sort=oldest", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decodeError(t, rec)
	assert.Equal(t, "sort", body.Field)
	assert.Equal(t, "sort must be one of: latest, popular", body.Error)
}

func TestRouter_ImageTooLarge(t *testing.T) {
	s := newServer(t)
	s.signIn(t, adminEmail)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "big picture"))
	fw, err := mw.CreateFormFile("image", "big.png")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{1}, 1024))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Len(t, s.store.GetState().Posts, 2)
}

func TestRouter_AdminRoutes(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/admin/users", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.signIn(t, "ana@school.edu")
	rec = s.do(t, http.MethodGet, "/admin/pending", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	ana, ok := s.store.GetState().FindUserByEmail("ana@school.edu")
	require.True(t, ok)

	s.signIn(t, adminEmail)
	rec = s.do(t, http.MethodGet, "/admin/pending", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ana.ID)

	rec = s.do(t, http.MethodPost, "/admin/users/"+ana.ID+"/approve", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, s.store.GetState().PendingUsers)

	postID := s.store.GetState().Posts[0].ID
	rec = s.do(t, http.MethodDelete, "/posts/"+postID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, s.store.GetState().Posts, 1)
}

func TestRouter_Operations(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"memory":{"status":"ok"}`)

	rec = s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "community_")

	rec = s.do(t, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Community Board API")
}
