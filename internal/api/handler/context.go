package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/domain"
)

// userKey is where the session middleware stores the signed-in user.
const userKey = "user"

// ctxUser returns the user injected by the session middleware. A missing
// user means the route was registered without it, so the request is rejected.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(userKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
	}
	return user, nil
}
