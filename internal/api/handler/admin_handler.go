package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/ports"
)

// AdminHandler serves the admin console. Every route is registered behind
// the admin middleware.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListPending handles GET /admin/pending.
//
// @Summary      Users awaiting approval, oldest first
// @Tags         admin
// @Produce      json
// @Success      200  {object}  listResponse[userResponse]
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/pending [get]
func (h *AdminHandler) ListPending(c echo.Context) error {
	return c.JSON(http.StatusOK, mapList(h.admin.ListPendingUsers(), toUserResponse))
}

// ListUsers handles GET /admin/users.
//
// @Summary      All users ordered by email
// @Tags         admin
// @Produce      json
// @Success      200  {object}  listResponse[userResponse]
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, mapList(h.admin.ListUsers(), toUserResponse))
}

// Approve handles POST /admin/users/:id/approve.
//
// @Summary      Approve a pending user
// @Tags         admin
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	return h.noContent(c, h.admin.Approve(c.Request().Context(), c.Param("id")))
}

// Deny handles POST /admin/users/:id/deny.
//
// @Summary      Deny a user and remove their record
// @Tags         admin
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/users/{id}/deny [post]
func (h *AdminHandler) Deny(c echo.Context) error {
	return h.noContent(c, h.admin.Deny(c.Request().Context(), c.Param("id")))
}

// ToggleAdmin handles POST /admin/users/:id/toggle-admin.
//
// @Summary      Grant or revoke the admin role
// @Tags         admin
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/users/{id}/toggle-admin [post]
func (h *AdminHandler) ToggleAdmin(c echo.Context) error {
	return h.noContent(c, h.admin.ToggleAdmin(c.Request().Context(), c.Param("id")))
}

// DeletePost handles DELETE /posts/:id.
//
// @Summary      Remove a post
// @Tags         admin
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *AdminHandler) DeletePost(c echo.Context) error {
	return h.noContent(c, h.admin.DeletePost(c.Request().Context(), c.Param("id")))
}

// DeleteEvent handles DELETE /events/:id.
//
// @Summary      Remove an event
// @Tags         admin
// @Param        id   path  string  true  "Event id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	return h.noContent(c, h.admin.DeleteEvent(c.Request().Context(), c.Param("id")))
}

func (h *AdminHandler) noContent(c echo.Context, err error) error {
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
