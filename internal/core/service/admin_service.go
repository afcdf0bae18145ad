package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/metrics"
)

// AdminService backs the admin console. The user whose email equals
// protectedEmail (the seeded administrator) cannot be denied or demoted.
type AdminService struct {
	store          ports.Store
	logger         zerolog.Logger
	protectedEmail string
}

var _ ports.AdminService = (*AdminService)(nil)

func NewAdminService(store ports.Store, protectedEmail string, logger zerolog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger, protectedEmail: normalizeEmail(protectedEmail)}
}

// ListPendingUsers returns users awaiting approval, oldest first.
func (s *AdminService) ListPendingUsers() []domain.User {
	st := s.store.GetState()
	out := make([]domain.User, 0, len(st.PendingUsers))
	for _, id := range st.PendingUsers {
		if u, ok := st.Users[id]; ok {
			out = append(out, u)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.User) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// ListUsers returns every user ordered by email using locale-aware collation.
func (s *AdminService) ListUsers() []domain.User {
	st := s.store.GetState()
	out := make([]domain.User, 0, len(st.Users))
	for _, u := range st.Users {
		out = append(out, u)
	}

	col := collate.New(language.Und)
	slices.SortFunc(out, func(a, b domain.User) int {
		if c := col.CompareString(a.Email, b.Email); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Approve marks the user approved and removes them from the pending queue.
func (s *AdminService) Approve(ctx context.Context, userID string) error {
	return s.moderate(ctx, "approve", userID, func(draft *domain.State, u domain.User) error {
		u.Approved = true
		draft.Users[userID] = u
		draft.PendingUsers = slices.DeleteFunc(draft.PendingUsers, func(id string) bool { return id == userID })
		return nil
	})
}

// Deny deletes the user together with their posts, events, pending entry and
// session.
func (s *AdminService) Deny(ctx context.Context, userID string) error {
	return s.moderate(ctx, "deny", userID, func(draft *domain.State, u domain.User) error {
		if s.isProtected(u) {
			return domain.NewValidationError("userId", "the seeded administrator cannot be removed")
		}
		draft.RemoveUser(userID)
		return nil
	})
}

func (s *AdminService) ToggleAdmin(ctx context.Context, userID string) error {
	return s.moderate(ctx, "toggle_admin", userID, func(draft *domain.State, u domain.User) error {
		if u.IsAdmin && s.isProtected(u) {
			return domain.NewValidationError("userId", "the seeded administrator cannot be demoted")
		}
		u.IsAdmin = !u.IsAdmin
		draft.Users[userID] = u
		return nil
	})
}

func (s *AdminService) DeletePost(ctx context.Context, postID string) error {
	if err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		return removePost(draft, postID)
	}); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("delete_post").Inc()
	s.logger.Info().Str("post_id", postID).Msg("post removed by admin")
	return nil
}

func (s *AdminService) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		return removeEvent(draft, eventID)
	}); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("delete_event").Inc()
	s.logger.Info().Str("event_id", eventID).Msg("event removed by admin")
	return nil
}

// moderate runs fn against the named user inside one transaction.
func (s *AdminService) moderate(ctx context.Context, action, userID string, fn func(*domain.State, domain.User) error) error {
	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		u, ok := draft.Users[userID]
		if !ok {
			return draft, &domain.NotFoundError{Kind: domain.KindUser, ID: userID}
		}
		if err := fn(&draft, u); err != nil {
			return draft, err
		}
		return draft, nil
	})
	if err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues(action).Inc()
	s.logger.Info().Str("user_id", userID).Str("action", action).Msg("moderation action applied")
	return nil
}

func (s *AdminService) isProtected(u domain.User) bool {
	return s.protectedEmail != "" && u.Email == s.protectedEmail
}
