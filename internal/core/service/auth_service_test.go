package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/store"
)

func newAuthSvc(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	svc := NewAuthService(st, zerolog.Nop())
	svc.now = tick()
	return svc, st
}

func TestAuthService_SignIn_RejectsDomainOutsideAllowList(t *testing.T) {
	svc, _ := newAuthSvc(t)

	_, err := svc.SignIn(context.Background(), "person@evil.com", []string{".edu"})
	assertValidation(t, err, "email")
}

func TestAuthService_SignIn_RequiresEmail(t *testing.T) {
	svc, _ := newAuthSvc(t)

	_, err := svc.SignIn(context.Background(), "   ", []string{".edu"})
	assertValidation(t, err, "email")
}

func TestAuthService_SignIn_RejectsMalformedAddress(t *testing.T) {
	svc, _ := newAuthSvc(t)

	_, err := svc.SignIn(context.Background(), "not an address.edu", []string{".edu"})
	assertValidation(t, err, "email")
}

func TestAuthService_SignIn_CreatesPendingUser(t *testing.T) {
	svc, st := newAuthSvc(t)

	res, err := svc.SignIn(context.Background(), "  Person@School.EDU ", []string{".edu"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", res.Status)
	}
	if res.User.Email != "person@school.edu" || res.User.Approved {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	state := st.GetState()
	if _, ok := state.Users[res.User.ID]; !ok {
		t.Fatalf("user not stored")
	}
	if len(state.PendingUsers) != 1 || state.PendingUsers[0] != res.User.ID {
		t.Fatalf("expected user in pending queue, got %v", state.PendingUsers)
	}
	if state.SessionUserID() != res.User.ID {
		t.Fatalf("expected session for new user")
	}
}

func TestAuthService_SignIn_ReusesExistingUser(t *testing.T) {
	svc, st := newAuthSvc(t)
	seedState(t, st, func(s *domain.State) {
		s.Users["u1"] = domain.User{ID: "u1", Email: "known@school.edu", Approved: true}
	})

	res, err := svc.SignIn(context.Background(), "KNOWN@school.edu", []string{".edu"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.ID != "u1" || res.Status != domain.StatusApproved {
		t.Fatalf("expected existing approved user, got %+v", res)
	}

	state := st.GetState()
	if len(state.Users) != 1 {
		t.Fatalf("expected no new user, got %d users", len(state.Users))
	}
	if len(state.PendingUsers) != 0 {
		t.Fatalf("approved user must not be queued")
	}
}

func TestAuthService_SignIn_StoreFailure(t *testing.T) {
	boom := errors.New("storage offline")
	svc := NewAuthService(failingStore{Store: newTestStore(t), err: boom}, zerolog.Nop())

	_, err := svc.SignIn(context.Background(), "a@school.edu", []string{".edu"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestAuthService_SignOut_KeepsUser(t *testing.T) {
	svc, st := newAuthSvc(t)
	res, err := svc.SignIn(context.Background(), "a@school.edu", []string{".edu"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if err := svc.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if svc.CurrentUser() != nil {
		t.Fatalf("expected no current user")
	}
	if _, ok := st.GetState().Users[res.User.ID]; !ok {
		t.Fatalf("sign out must not delete the user")
	}
}

func TestAuthService_CurrentUser_DanglingSession(t *testing.T) {
	svc, st := newAuthSvc(t)
	seedState(t, st, func(s *domain.State) { s.SetSession("ghost") })

	if u := svc.CurrentUser(); u != nil {
		t.Fatalf("expected nil for dangling session, got %+v", u)
	}
}

func TestAuthService_RequireApprovedUser(t *testing.T) {
	readOnly := domain.AccessPolicy{ReadOnlyForUnapproved: true}
	strict := domain.AccessPolicy{}

	cases := []struct {
		name   string
		user   *domain.User
		policy domain.AccessPolicy
		want   domain.AccessDecision
	}{
		{"no session", nil, readOnly, domain.AccessDecision{Reason: domain.ReasonUnauthenticated}},
		{"approved", &domain.User{ID: "u", Approved: true}, strict, domain.AccessDecision{Allowed: true}},
		{"pending read-only", &domain.User{ID: "u"}, readOnly, domain.AccessDecision{Allowed: true, ReadOnly: true}},
		{"pending strict", &domain.User{ID: "u"}, strict, domain.AccessDecision{Reason: domain.ReasonUnapproved}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, st := newAuthSvc(t)
			if tc.user != nil {
				u := *tc.user
				seedState(t, st, func(s *domain.State) {
					s.Users[u.ID] = u
					s.SetSession(u.ID)
				})
			}
			if got := svc.RequireApprovedUser(tc.policy); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
