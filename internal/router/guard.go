package router

import (
	"slices"

	"github.com/99minutos/community-board/internal/core/domain"
)

// Application routes.
const (
	PathLogin  = "#/login"
	PathFeed   = "#/feed"
	PathEvents = "#/events"
	PathAdmin  = "#/admin"
)

// SessionReader resolves the signed-in user.
type SessionReader interface {
	CurrentUser() *domain.User
}

// AccessGuard allows the login page to everyone, sends anonymous visitors
// (and unapproved ones under a strict policy) to login, and sends non-admins
// away from adminPaths to home. It only reads state.
func AccessGuard(auth SessionReader, policy domain.AccessPolicy, home string, adminPaths ...string) Guard {
	return func(path string) string {
		if path == PathLogin {
			return ""
		}
		user := auth.CurrentUser()
		if user == nil {
			return PathLogin
		}
		if !user.Approved && !policy.ReadOnlyForUnapproved {
			return PathLogin
		}
		if slices.Contains(adminPaths, path) && !user.IsAdmin {
			return home
		}
		return ""
	}
}
