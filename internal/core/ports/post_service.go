package ports

import (
	"context"

	"github.com/99minutos/community-board/internal/core/domain"
)

// PostSort selects the feed ordering.
type PostSort string

const (
	SortLatest  PostSort = "latest"
	SortPopular PostSort = "popular"
)

// CreatePostInput carries a new post. Image is an already processed payload.
type CreatePostInput struct {
	Text     string  `validate:"required"`
	AuthorID string  `validate:"required"`
	Image    *string
	Tags     []string
}

// ListPostsFilter narrows and pages the feed. Limit 0 means no limit.
type ListPostsFilter struct {
	Search string
	Sort   PostSort
	Offset int
	Limit  int
}

// PostService manages feed posts, likes and comments.
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	List(filter ListPostsFilter) []domain.Post
	Delete(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID, userID, text string) (*domain.Comment, error)
}
