package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email string, allowed []string) (*ports.SignInResult, error) {
			if email != "ana@school.edu" || len(allowed) != 1 || allowed[0] != "@school.edu" {
				t.Fatalf("unexpected args: %s %v", email, allowed)
			}
			return &ports.SignInResult{
				User:   domain.User{ID: "user_1", Email: email},
				Status: domain.StatusPending,
			}, nil
		},
	}
	handler := NewAuthHandler(stub, []string{"@school.edu"}, domain.AccessPolicy{ReadOnlyForUnapproved: true})

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(`{"email":"ana@school.edu"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("expected pending status, got %v", resp["status"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "user_1" || user["email"] != "ana@school.edu" || user["approved"] != false {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_SignIn_MissingEmail(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, nil, domain.AccessPolicy{})

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.SignIn(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email ValidationError, got %v", err)
	}
}

func TestAuthHandler_SignIn_ServiceErrorPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signInFn: func(context.Context, string, []string) (*ports.SignInResult, error) {
			return nil, domain.NewValidationError("email", "email must end with: @school.edu")
		},
	}
	handler := NewAuthHandler(stub, []string{"@school.edu"}, domain.AccessPolicy{})

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(`{"email":"ana@gmail.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.SignIn(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{}
	handler := NewAuthHandler(stub, nil, domain.AccessPolicy{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil), rec)

	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.signOuts != 1 {
		t.Fatalf("expected one sign-out, got %d", stub.signOuts)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	cases := []struct {
		name      string
		stub      *stubAuthService
		wantUser  bool
		wantWrite bool
		wantRO    bool
	}{
		{name: "anonymous", stub: &stubAuthService{}},
		{
			name: "pending read-only",
			stub: &stubAuthService{
				user:     &domain.User{ID: "user_2", Email: "ben@school.edu"},
				decision: domain.AccessDecision{Allowed: true, ReadOnly: true, Reason: domain.ReasonUnapproved},
			},
			wantUser: true,
			wantRO:   true,
		},
		{
			name: "approved",
			stub: &stubAuthService{
				user:     &domain.User{ID: "user_1", Email: "ana@school.edu", Approved: true},
				decision: domain.AccessDecision{Allowed: true},
			},
			wantUser:  true,
			wantWrite: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			handler := NewAuthHandler(tc.stub, nil, domain.AccessPolicy{ReadOnlyForUnapproved: true})
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)

			if err := handler.Me(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			var resp sessionResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if (resp.User != nil) != tc.wantUser {
				t.Fatalf("user present = %v, want %v", resp.User != nil, tc.wantUser)
			}
			if resp.CanWrite != tc.wantWrite || resp.ReadOnly != tc.wantRO {
				t.Fatalf("unexpected access flags: %+v", resp)
			}
		})
	}
}
