package handler

import (
	"github.com/99minutos/community-board/internal/core/domain"
)

// --- Domain → HTTP response ---

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Approved:  u.Approved,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func toPostResponse(p domain.Post) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	return postResponse{
		ID:        p.ID,
		Text:      p.Text,
		Image:     p.Image,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt.UTC(),
		Likes:     nonNil(p.Likes),
		Comments:  comments,
		Tags:      nonNil(p.Tags),
	}
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:                 e.ID,
		Title:              e.Title,
		Date:               e.Date,
		Time:               e.Time,
		ExpectedAttendance: e.ExpectedAttendance,
		Attendees:          nonNil(e.Attendees),
		CreatedBy:          e.CreatedBy,
		CreatedAt:          e.CreatedAt.UTC(),
	}
}

func mapList[T, R any](items []T, fn func(T) R) listResponse[R] {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return listResponse[R]{Items: out, Count: len(out)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
