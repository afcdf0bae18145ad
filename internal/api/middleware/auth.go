package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/domain"
)

// SessionReader is the part of the auth service the middleware needs.
type SessionReader interface {
	CurrentUser() *domain.User
	RequireApprovedUser(policy domain.AccessPolicy) domain.AccessDecision
}

// Session rejects requests without a signed-in user and injects the user into context.
func Session(auth SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := auth.CurrentUser()
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			c.Set("user", user)
			return next(c)
		}
	}
}

// Writer enforces the access policy for routes that change community content.
// It must run after Session.
func Writer(auth SessionReader, policy domain.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := auth.RequireApprovedUser(policy)
			switch {
			case decision.CanWrite():
				return next(c)
			case decision.Reason == domain.ReasonUnauthenticated:
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			default:
				return echo.NewHTTPError(http.StatusForbidden, "account is pending approval")
			}
		}
	}
}

// Reader enforces the access policy for community pages: anonymous callers
// get 401 and unapproved users get 403 unless the policy allows read-only access.
func Reader(auth SessionReader, policy domain.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := auth.RequireApprovedUser(policy)
			switch {
			case decision.Allowed:
				return next(c)
			case decision.Reason == domain.ReasonUnauthenticated:
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			default:
				return echo.NewHTTPError(http.StatusForbidden, "account is pending approval")
			}
		}
	}
}
