package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

// ----- Stubs -----

type stubAuthService struct {
	signInFn func(ctx context.Context, email string, allowed []string) (*ports.SignInResult, error)
	user     *domain.User
	decision domain.AccessDecision
	signOuts int
}

func (s *stubAuthService) SignIn(ctx context.Context, email string, allowed []string) (*ports.SignInResult, error) {
	return s.signInFn(ctx, email, allowed)
}

func (s *stubAuthService) SignOut(context.Context) error {
	s.signOuts++
	return nil
}

func (s *stubAuthService) CurrentUser() *domain.User { return s.user }

func (s *stubAuthService) RequireApprovedUser(domain.AccessPolicy) domain.AccessDecision {
	return s.decision
}

type stubPostService struct {
	createFn  func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	listFn    func(filter ports.ListPostsFilter) []domain.Post
	likeFn    func(ctx context.Context, postID, userID string) error
	commentFn func(ctx context.Context, postID, userID, text string) (*domain.Comment, error)
}

func (s *stubPostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubPostService) List(filter ports.ListPostsFilter) []domain.Post { return s.listFn(filter) }

func (s *stubPostService) Delete(context.Context, string) error { return nil }

func (s *stubPostService) ToggleLike(ctx context.Context, postID, userID string) error {
	return s.likeFn(ctx, postID, userID)
}

func (s *stubPostService) AddComment(ctx context.Context, postID, userID, text string) (*domain.Comment, error) {
	return s.commentFn(ctx, postID, userID, text)
}

type stubEventService struct {
	createFn func(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error)
	listFn   func(filter ports.ListEventsFilter) []domain.Event
	rsvpFn   func(ctx context.Context, eventID, userID string) error
}

func (s *stubEventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	return s.createFn(ctx, in)
}

func (s *stubEventService) List(filter ports.ListEventsFilter) []domain.Event { return s.listFn(filter) }

func (s *stubEventService) Delete(context.Context, string) error { return nil }

func (s *stubEventService) ToggleRSVP(ctx context.Context, eventID, userID string) error {
	return s.rsvpFn(ctx, eventID, userID)
}

type stubAdminService struct {
	pending []domain.User
	users   []domain.User
	calls   []string
	err     error
}

func (s *stubAdminService) record(action, id string) error {
	s.calls = append(s.calls, action+":"+id)
	return s.err
}

func (s *stubAdminService) ListPendingUsers() []domain.User { return s.pending }
func (s *stubAdminService) ListUsers() []domain.User        { return s.users }
func (s *stubAdminService) Approve(_ context.Context, id string) error {
	return s.record("approve", id)
}
func (s *stubAdminService) Deny(_ context.Context, id string) error { return s.record("deny", id) }
func (s *stubAdminService) ToggleAdmin(_ context.Context, id string) error {
	return s.record("toggle_admin", id)
}
func (s *stubAdminService) DeletePost(_ context.Context, id string) error {
	return s.record("delete_post", id)
}
func (s *stubAdminService) DeleteEvent(_ context.Context, id string) error {
	return s.record("delete_event", id)
}

type stubImageService struct {
	payload string
	err     error
	size    int64
}

func (s *stubImageService) Process(_ context.Context, r io.Reader, size int64) (string, error) {
	s.size = size
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return s.payload, s.err
}

// ----- Helpers -----

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}
