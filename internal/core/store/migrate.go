package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/99minutos/community-board/internal/core/domain"
)

// SeedFunc inserts demo data into the draft state and reports whether it
// changed anything. It must be idempotent.
type SeedFunc func(state *domain.State) (mutated bool)

// migrationStep is one schema upgrade. apply reports whether it changed the draft.
type migrationStep struct {
	name  string
	apply func(state *domain.State, now time.Time) bool
}

// schemaSteps run before the seed, in order.
var schemaSteps = []migrationStep{
	{name: "ensure-collections", apply: ensureCollections},
	{name: "normalize-emails", apply: normalizeEmails},
	{name: "dedupe-memberships", apply: dedupeMemberships},
	{name: "clear-dangling-session", apply: clearDanglingSession},
	{name: "stamp-migrated-at", apply: stampMigratedAt},
}

// cleanupSteps run after the seed, which may have approved pending users.
var cleanupSteps = []migrationStep{
	{name: "prune-pending", apply: prunePending},
}

// Migrate normalises the stored shape, runs seed and commits only when a step
// or the seed changed something. Calling it again right away is a no-op.
func (s *Store) Migrate(ctx context.Context, seed SeedFunc) (domain.State, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.State{}, ErrClosed
	}

	draft := s.state.Clone()
	now := s.now()
	mutated := s.applySteps(&draft, now, schemaSteps)
	if s.filledOnLoad {
		s.log.Info().Str("step", "ensure-collections").Msg("migration step applied")
		mutated = true
	}
	if seed != nil && seed(&draft) {
		s.log.Debug().Msg("seed data inserted")
		mutated = true
	}
	if s.applySteps(&draft, now, cleanupSteps) {
		mutated = true
	}

	if !mutated {
		current := s.state.Clone()
		s.mu.Unlock()
		return current, nil
	}

	if err := s.commitLocked(ctx, "migrate", draft); err != nil {
		s.mu.Unlock()
		return domain.State{}, err
	}
	s.filledOnLoad = false
	s.mu.Unlock()
	s.dispatch()
	return draft.Clone(), nil
}

func (s *Store) applySteps(state *domain.State, now time.Time, steps []migrationStep) bool {
	mutated := false
	for _, step := range steps {
		if step.apply(state, now) {
			s.log.Info().Str("step", step.name).Msg("migration step applied")
			mutated = true
		}
	}
	return mutated
}

func ensureCollections(state *domain.State, _ time.Time) bool {
	mutated := false
	if state.Users == nil {
		state.Users = map[string]domain.User{}
		mutated = true
	}
	if state.PendingUsers == nil {
		state.PendingUsers = []string{}
		mutated = true
	}
	if state.Posts == nil {
		state.Posts = []domain.Post{}
		mutated = true
	}
	if state.Events == nil {
		state.Events = []domain.Event{}
		mutated = true
	}
	return mutated
}

func normalizeEmails(state *domain.State, _ time.Time) bool {
	mutated := false
	for id, u := range state.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email != u.Email {
			u.Email = email
			state.Users[id] = u
			mutated = true
		}
	}
	return mutated
}

func dedupeMemberships(state *domain.State, _ time.Time) bool {
	mutated := false
	for i := range state.Posts {
		if likes, changed := dedupe(state.Posts[i].Likes); changed {
			state.Posts[i].Likes = likes
			mutated = true
		}
	}
	for i := range state.Events {
		if attendees, changed := dedupe(state.Events[i].Attendees); changed {
			state.Events[i].Attendees = attendees
			mutated = true
		}
	}
	if pending, changed := dedupe(state.PendingUsers); changed {
		state.PendingUsers = pending
		mutated = true
	}
	return mutated
}

// dedupe drops repeated ids, keeping first occurrences in order.
func dedupe(ids []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == len(ids) {
		return ids, false
	}
	return out, true
}

func clearDanglingSession(state *domain.State, _ time.Time) bool {
	id := state.SessionUserID()
	if id == "" {
		return false
	}
	if _, ok := state.Users[id]; ok {
		return false
	}
	state.Session.UserID = nil
	return true
}

func stampMigratedAt(state *domain.State, now time.Time) bool {
	if state.Meta.MigratedAt != nil {
		return false
	}
	state.Meta.MigratedAt = &now
	return true
}

// prunePending keeps only ids of existing, unapproved users.
func prunePending(state *domain.State, _ time.Time) bool {
	before := len(state.PendingUsers)
	state.PendingUsers = slices.DeleteFunc(state.PendingUsers, func(id string) bool {
		u, ok := state.Users[id]
		return !ok || u.Approved
	})
	return len(state.PendingUsers) != before
}
