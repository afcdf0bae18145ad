package ports

import (
	"context"

	"github.com/99minutos/community-board/internal/core/domain"
)

// Updater receives an isolated copy of the current state and returns the
// state that replaces it. Returning an error aborts the transaction.
type Updater func(draft domain.State) (domain.State, error)

// Listener is notified with its own copy of the state after every commit.
type Listener func(state domain.State)

// Store is the single source of truth for application state. Services depend
// on this interface and never cache state themselves.
type Store interface {
	GetState() domain.State
	UpdateState(ctx context.Context, fn Updater) error
	Subscribe(fn Listener) (unsubscribe func())
}
