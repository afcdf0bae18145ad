package ports

import (
	"context"

	"github.com/99minutos/community-board/internal/core/domain"
)

// SignInResult is returned by a successful mock sign-in.
type SignInResult struct {
	User   domain.User
	Status domain.ApprovalStatus
}

// AuthService manages the single active session.
type AuthService interface {
	SignIn(ctx context.Context, email string, allowedDomains []string) (*SignInResult, error)
	SignOut(ctx context.Context) error
	CurrentUser() *domain.User
	RequireApprovedUser(policy domain.AccessPolicy) domain.AccessDecision
}
