package pages

import (
	"io"
	"strings"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/router"
)

type navLink struct {
	path  string
	label string
}

var navLinks = []navLink{
	{router.PathFeed, "Community"},
	{router.PathEvents, "Events"},
}

// RenderHeader writes the site chrome: brand, navigation with the current
// path marked, and the signed-in user.
func RenderHeader(w io.Writer, currentPath string, user *domain.User) error {
	links := navLinks
	if user != nil && user.IsAdmin {
		links = append(links[:len(links):len(links)], navLink{router.PathAdmin, "Admin"})
	}

	items := make([]string, 0, len(links))
	for _, l := range links {
		if l.path == currentPath {
			items = append(items, "["+l.label+"]")
		} else {
			items = append(items, l.label)
		}
	}

	profile := "Sign in"
	if user != nil {
		profile = user.Email
		if !user.Approved {
			profile += " (Pending approval)"
		}
		profile += " | Sign out"
	}

	out := &printer{w: w}
	out.linef("Campus Connect | %s | %s", strings.Join(items, " "), profile)
	out.linef("%s", strings.Repeat("-", 72))
	return out.err
}
