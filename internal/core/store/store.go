package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/metrics"
)

// DefaultKey is the storage key the state document lives under.
const DefaultKey = "school-community-app"

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store is closed")

// Option configures a Store at Open time.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for corruption and listener failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source used to stamp migrations.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the single source of truth for application state.
type Store struct {
	storage ports.Storage
	key     string
	log     zerolog.Logger
	now     func() time.Time

	mu     sync.Mutex
	state  domain.State
	closed bool
	// filledOnLoad is set when the loaded document lacked collections; the
	// next Migrate writes the normalised shape back.
	filledOnLoad bool

	lmu         sync.Mutex
	listeners   []listenerEntry
	nextID      int64
	pending     []domain.State
	dispatching bool
}

var _ ports.Store = (*Store)(nil)

// Open loads the state document from storage, falling back to defaults when
// none exists or when it cannot be parsed.
func Open(ctx context.Context, storage ports.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		log:     zerolog.Nop(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.state = state
	return s, nil
}

func (s *Store) load(ctx context.Context) (domain.State, error) {
	raw, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, domain.ErrStateNotFound) {
		return domain.DefaultState(), nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("load state: %w", err)
	}

	state, filled, err := decode(raw)
	if err != nil {
		corrupt := &domain.StorageCorruptionError{Key: s.key, Err: err}
		s.log.Error().Err(corrupt).Msg("failed to parse stored state, resetting to defaults")
		metrics.StoreCorruptionResetsTotal.Inc()

		state = domain.DefaultState()
		if err := s.persist(ctx, state); err != nil {
			return domain.State{}, fmt.Errorf("load state: reset corrupt document: %w", err)
		}
		return state, nil
	}
	s.filledOnLoad = filled
	return state, nil
}

// decode parses a stored document and fills missing top-level collections,
// reporting whether any had to be filled.
func decode(raw []byte) (domain.State, bool, error) {
	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.State{}, false, err
	}
	filled := ensureCollections(&state, time.Time{})
	return state, filled, nil
}

func (s *Store) persist(ctx context.Context, state domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("persist state: %w", err)
	}

	start := time.Now()
	err = s.storage.Save(ctx, s.key, data)
	metrics.StorePersistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// GetState returns a deep copy of the current state.
func (s *Store) GetState() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetState replaces the whole state with a copy of next.
func (s *Store) SetState(ctx context.Context, next domain.State) error {
	return s.run(ctx, "set", func(domain.State) (domain.State, error) {
		return next.Clone(), nil
	})
}

// UpdateState applies fn to a copy of the current state and commits the result.
// If fn returns an error nothing is persisted or notified and the error is
// returned as is.
func (s *Store) UpdateState(ctx context.Context, fn ports.Updater) error {
	return s.run(ctx, "update", fn)
}

// Clear resets the state to defaults.
func (s *Store) Clear(ctx context.Context) error {
	return s.run(ctx, "clear", func(domain.State) (domain.State, error) {
		return domain.DefaultState(), nil
	})
}

// Flush writes the canonical state to storage again.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.persist(ctx, s.state)
}

// Close detaches all listeners and rejects further mutations. The storage
// backend is owned by the caller and is left open.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.lmu.Lock()
	s.listeners = nil
	s.pending = nil
	s.lmu.Unlock()
	return nil
}

func (s *Store) run(ctx context.Context, op string, fn ports.Updater) error {
	if err := s.transact(ctx, op, fn); err != nil {
		return err
	}
	s.dispatch()
	return nil
}

func (s *Store) transact(ctx context.Context, op string, fn ports.Updater) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next, err := fn(s.state.Clone())
	if err != nil {
		metrics.StoreAbortsTotal.Inc()
		return err
	}
	return s.commitLocked(ctx, op, next)
}

// commitLocked persists next, installs it as canonical and queues the
// notification. Callers hold s.mu, which keeps queue order equal to commit order.
func (s *Store) commitLocked(ctx context.Context, op string, next domain.State) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next
	metrics.StoreCommitsTotal.WithLabelValues(op).Inc()

	s.lmu.Lock()
	s.pending = append(s.pending, next)
	s.lmu.Unlock()
	return nil
}
