package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/99minutos/community-board/internal/infrastructure/db/memory"
)

type downStorage struct{ *memory.Storage }

func (downStorage) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_Liveness(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	cases := []struct {
		name       string
		handler    *HealthDependenciesHandler
		wantCode   int
		wantStatus string
	}{
		{"ready", NewHealthDependenciesHandler("memory", memory.New()), http.StatusOK, "ok"},
		{"degraded", NewHealthDependenciesHandler("redis", downStorage{memory.New()}), http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := tc.handler.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.wantStatus {
				t.Fatalf("expected status %q, got %q", tc.wantStatus, resp.Status)
			}
			if len(resp.Dependencies) != 1 {
				t.Fatalf("expected one dependency, got %v", resp.Dependencies)
			}
		})
	}
}
