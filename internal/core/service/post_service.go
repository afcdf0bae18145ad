package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/metrics"
)

type PostService struct {
	store  ports.Store
	logger zerolog.Logger
	now    func() time.Time
}

var _ ports.PostService = (*PostService)(nil)

func NewPostService(store ports.Store, logger zerolog.Logger) *PostService {
	return &PostService{store: store, logger: logger, now: utcNow}
}

// Create validates and stores a new post. Text is trimmed and escaped.
func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	if err := checkInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	post := domain.Post{
		ID:        domain.NewID(domain.KindPost, now),
		Text:      sanitizeText(in.Text),
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		Likes:     []string{},
		Comments:  []domain.Comment{},
		Tags:      normalizeTags(in.Tags),
	}
	if in.Image != nil {
		img := *in.Image
		post.Image = &img
	}

	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		draft.Posts = append(draft.Posts, post.Clone())
		return draft, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues(domain.KindPost).Inc()
	s.logger.Info().Str("post_id", post.ID).Str("author_id", post.AuthorID).Msg("post created")
	return &post, nil
}

// List returns posts whose text or tags contain filter.Search
// (case-insensitive), newest first unless SortPopular is requested.
func (s *PostService) List(filter ports.ListPostsFilter) []domain.Post {
	posts := s.store.GetState().Posts
	needle := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if needle != "" && !postMatches(p, needle) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b domain.Post) int {
		if filter.Sort == ports.SortPopular {
			if d := len(b.Likes) - len(a.Likes); d != 0 {
				return d
			}
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return paginate(out, filter.Offset, filter.Limit)
}

func postMatches(p domain.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Text), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(p.Tags, " ")), needle)
}

// paginate applies offset and limit. A zero limit returns everything after offset.
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *PostService) Delete(ctx context.Context, postID string) error {
	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		return removePost(draft, postID)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("post_id", postID).Msg("post deleted")
	return nil
}

func removePost(draft domain.State, postID string) (domain.State, error) {
	i := draft.PostIndex(postID)
	if i < 0 {
		return draft, &domain.NotFoundError{Kind: domain.KindPost, ID: postID}
	}
	draft.Posts = slices.Delete(draft.Posts, i, i+1)
	return draft, nil
}

// ToggleLike flips userID in the post's like set. It does nothing for an
// empty user or a post that no longer exists.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return nil
	}
	return s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		i := draft.PostIndex(postID)
		if i < 0 {
			return draft, nil
		}
		draft.Posts[i].Likes = domain.ToggleMember(draft.Posts[i].Likes, userID)
		return draft, nil
	})
}

// AddComment appends an escaped comment to the post.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) (*domain.Comment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("userId", "user is required to comment")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "comment text is required")
	}

	now := s.now()
	comment := domain.Comment{
		ID:        domain.NewID(domain.KindComment, now),
		UserID:    userID,
		Text:      sanitizeText(text),
		CreatedAt: now,
	}

	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		i := draft.PostIndex(postID)
		if i < 0 {
			return draft, &domain.NotFoundError{Kind: domain.KindPost, ID: postID}
		}
		draft.Posts[i].Comments = append(draft.Posts[i].Comments, comment)
		return draft, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues(domain.KindComment).Inc()
	s.logger.Info().Str("post_id", postID).Str("comment_id", comment.ID).Msg("comment added")
	return &comment, nil
}
