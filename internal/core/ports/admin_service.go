package ports

import (
	"context"

	"github.com/99minutos/community-board/internal/core/domain"
)

// AdminService backs the admin console.
type AdminService interface {
	ListPendingUsers() []domain.User
	ListUsers() []domain.User
	Approve(ctx context.Context, userID string) error
	Deny(ctx context.Context, userID string) error
	ToggleAdmin(ctx context.Context, userID string) error
	DeletePost(ctx context.Context, postID string) error
	DeleteEvent(ctx context.Context, eventID string) error
}
