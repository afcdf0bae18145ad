package pages

import (
	"fmt"
	"io"
	"strings"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

type FeedPage struct {
	deps Deps
}

func (p *FeedPage) Render(w io.Writer) error {
	d := p.deps
	user := d.Auth.CurrentUser()
	access := d.Auth.RequireApprovedUser(domain.AccessPolicy{ReadOnlyForUnapproved: d.ReadOnly})
	canWrite := user != nil && access.CanWrite()

	out := &printer{w: w}
	out.heading("Community Boards", "Share updates with your campus")
	out.linef("Verified members can post, celebrate wins, and coordinate with fellow students.")
	out.notice(d.View)
	out.blank()

	search := d.View.FeedSearch
	sort := d.View.FeedSort
	if sort == "" {
		sort = ports.SortLatest
	}
	out.linef("Search: %s | Sort: %s", quoteOrNone(search), sortLabel(sort))

	if user != nil && !user.Approved {
		out.linef("! Your access is pending approval. You can browse and search posts until a moderator confirms your account.")
	}

	switch {
	case canWrite:
		out.linef("Create a post: post <text>   (attach <file> first to add an image)")
		if d.Attachment != nil && d.Attachment.Pending() != nil {
			out.linef("Image attached and ready to post.")
		}
	case user == nil:
		out.linef("Sign in to start contributing.")
	default:
		out.linef("Moderators will enable posting once your account is approved.")
	}
	out.blank()

	posts := d.Posts.List(ports.ListPostsFilter{Search: search, Sort: sort})
	if len(posts) == 0 {
		if strings.TrimSpace(search) != "" {
			out.linef("No posts match your filters yet. Try a different keyword or board.")
		} else {
			out.linef("No posts yet. Kick things off with your first announcement!")
		}
		return out.err
	}

	for i, post := range posts {
		if i > 0 {
			out.blank()
		}
		p.renderPost(out, post, user)
	}
	return out.err
}

func (p *FeedPage) renderPost(out *printer, post domain.Post, user *domain.User) {
	now := p.deps.Now()
	liked := ""
	if user != nil && post.LikedBy(user.ID) {
		liked = " (liked)"
	}
	meta := []string{
		RelativeTime(post.CreatedAt, now),
		fmt.Sprintf("%d likes%s", len(post.Likes), liked),
		fmt.Sprintf("%d comments", len(post.Comments)),
	}
	for _, tag := range post.Tags {
		meta = append(meta, "#"+plain(tag))
	}

	out.linef("[%s] Posted by Student | %s", post.ID, strings.Join(meta, " | "))
	for _, line := range strings.Split(plain(post.Text), "\n") {
		out.linef("  %s", line)
	}
	if post.Image != nil {
		out.linef("  [image attached]")
	}
	for _, c := range post.Comments {
		out.linef("  - Student, %s: %s", RelativeTime(c.CreatedAt, now), plain(c.Text))
	}
}

func quoteOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", s)
}

func sortLabel(s ports.PostSort) string {
	if s == ports.SortPopular {
		return "Most loved"
	}
	return "Latest"
}
