package store

import (
	"slices"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/metrics"
)

type listenerEntry struct {
	id int64
	fn ports.Listener
}

// Subscribe registers fn to be called after every commit and returns a
// function that removes it. Calling the returned function twice is harmless.
func (s *Store) Subscribe(fn ports.Listener) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool { return e.id == id })
	}
}

// dispatch drains the notification queue unless another call is already
// draining it, in which case that call delivers the queued states.
func (s *Store) dispatch() {
	s.lmu.Lock()
	if s.dispatching {
		s.lmu.Unlock()
		return
	}
	s.dispatching = true

	for len(s.pending) > 0 {
		state := s.pending[0]
		s.pending = s.pending[1:]
		listeners := slices.Clone(s.listeners)
		s.lmu.Unlock()

		for _, l := range listeners {
			s.notify(l, state)
		}

		s.lmu.Lock()
	}

	s.dispatching = false
	s.lmu.Unlock()
}

func (s *Store) notify(l listenerEntry, state domain.State) {
	defer func() {
		if r := recover(); r != nil {
			metrics.StoreListenerPanicsTotal.Inc()
			s.log.Error().
				Interface("panic", r).
				Int64("listener_id", l.id).
				Msg("store listener failed")
		}
	}()
	l.fn(state.Clone())
}
