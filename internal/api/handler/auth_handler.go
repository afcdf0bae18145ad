package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	allowedDomains []string
	policy         domain.AccessPolicy
}

func NewAuthHandler(authService ports.AuthService, allowedDomains []string, policy domain.AccessPolicy) *AuthHandler {
	return &AuthHandler{authService: authService, allowedDomains: allowedDomains, policy: policy}
}

// SignIn starts the session for an allowed email.
//
// @Summary      Sign in with an allowed email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Email to sign in with"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.SignIn(c.Request().Context(), req.Email, h.allowedDomains)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signInResponse{User: toUserResponse(res.User), Status: string(res.Status)})
}

// SignOut ends the current session.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.authService.SignOut(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me reports the signed-in user, if any, and what the access policy allows.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	resp := sessionResponse{}
	if user := h.authService.CurrentUser(); user != nil {
		u := toUserResponse(*user)
		resp.User = &u
		decision := h.authService.RequireApprovedUser(h.policy)
		resp.CanWrite = decision.CanWrite()
		resp.ReadOnly = decision.ReadOnly
	}
	return c.JSON(http.StatusOK, resp)
}
