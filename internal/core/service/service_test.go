package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/core/store"
	"github.com/99minutos/community-board/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

var baseTime = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

// tick returns a clock that advances one minute per call.
func tick() func() time.Time {
	now := baseTime
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), memory.New())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedState(t *testing.T, st *store.Store, fn func(*domain.State)) {
	t.Helper()
	err := st.UpdateState(context.Background(), func(draft domain.State) (domain.State, error) {
		fn(&draft)
		return draft, nil
	})
	if err != nil {
		t.Fatalf("seed state: %v", err)
	}
}

// failingStore rejects every mutation.
type failingStore struct {
	*store.Store
	err error
}

func (f failingStore) UpdateState(context.Context, ports.Updater) error {
	return f.err
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if field != "" && ve.Field != field {
		t.Fatalf("expected field %q, got %q", field, ve.Field)
	}
}
