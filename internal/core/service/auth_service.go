package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/metrics"
)

type AuthService struct {
	store  ports.Store
	logger zerolog.Logger
	now    func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(store ports.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, logger: logger, now: utcNow}
}

// SignIn matches the email against the allow-list and starts a session for
// the matching user, creating an unapproved one on first sign-in. The lookup
// and the insert happen in one transaction, so an email is never registered twice.
func (s *AuthService) SignIn(ctx context.Context, email string, allowedDomains []string) (*ports.SignInResult, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if !emailAllowed(normalized, allowedDomains) {
		if len(allowedDomains) == 0 {
			return nil, domain.NewValidationError("email", "no allowed email domains are configured")
		}
		return nil, domain.NewValidationError("email", fmt.Sprintf("email must end with: %s", strings.Join(allowedDomains, ", ")))
	}
	if err := validate.Var(normalized, "email"); err != nil {
		return nil, domain.NewValidationError("email", "email must be a valid email")
	}

	var result ports.SignInResult
	created := false
	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		if u, ok := draft.FindUserByEmail(normalized); ok {
			draft.SetSession(u.ID)
			result = ports.SignInResult{User: u.Clone(), Status: u.Status()}
			return draft, nil
		}

		now := s.now()
		u := domain.User{
			ID:        domain.NewID(domain.KindUser, now),
			Email:     normalized,
			CreatedAt: now,
			Profile:   map[string]any{},
		}
		if draft.Users == nil {
			draft.Users = map[string]domain.User{}
		}
		draft.Users[u.ID] = u
		if !slices.Contains(draft.PendingUsers, u.ID) {
			draft.PendingUsers = append(draft.PendingUsers, u.ID)
		}
		draft.SetSession(u.ID)
		result = ports.SignInResult{User: u.Clone(), Status: domain.StatusPending}
		created = true
		return draft, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("sign-in failed")
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if created {
		metrics.EntitiesCreatedTotal.WithLabelValues(domain.KindUser).Inc()
		s.logger.Info().Str("user_id", result.User.ID).Msg("user registered, awaiting approval")
	}
	metrics.SignInsTotal.WithLabelValues(string(result.Status)).Inc()
	s.logger.Info().Str("user_id", result.User.ID).Str("status", string(result.Status)).Msg("signed in")
	return &result, nil
}

// SignOut clears the session reference. The user record is untouched.
func (s *AuthService) SignOut(ctx context.Context) error {
	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		draft.SetSession("")
		return draft, nil
	})
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CurrentUser resolves the session against the user table. It returns nil
// when nobody is signed in or the session points at a deleted user.
func (s *AuthService) CurrentUser() *domain.User {
	st := s.store.GetState()
	id := st.SessionUserID()
	if id == "" {
		return nil
	}
	u, ok := st.Users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *AuthService) RequireApprovedUser(policy domain.AccessPolicy) domain.AccessDecision {
	return decideAccess(s.CurrentUser(), policy)
}

func decideAccess(u *domain.User, policy domain.AccessPolicy) domain.AccessDecision {
	switch {
	case u == nil:
		return domain.AccessDecision{Reason: domain.ReasonUnauthenticated}
	case u.Approved:
		return domain.AccessDecision{Allowed: true}
	case policy.ReadOnlyForUnapproved:
		return domain.AccessDecision{Allowed: true, ReadOnly: true}
	default:
		return domain.AccessDecision{Reason: domain.ReasonUnapproved}
	}
}

func emailAllowed(email string, allowedDomains []string) bool {
	for _, d := range allowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && strings.HasSuffix(email, d) {
			return true
		}
	}
	return false
}
