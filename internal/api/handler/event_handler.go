package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/ports"
)

// EventHandler serves the campus calendar.
type EventHandler struct {
	events ports.EventService
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List handles GET /events.
//
// @Summary      List events in chronological order
// @Tags         events
// @Produce      json
// @Param        date  query     string  false  "Only events on this YYYY-MM-DD date"
// @Success      200   {object}  listResponse[eventResponse]
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	var q listEventsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	events := h.events.List(ports.ListEventsFilter{Date: q.Date})
	return c.JSON(http.StatusOK, mapList(events, toEventResponse))
}

// Create handles POST /events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Create(c.Request().Context(), ports.CreateEventInput{
		Title:              req.Title,
		Date:               req.Date,
		Time:               req.Time,
		ExpectedAttendance: req.ExpectedAttendance,
		CreatedBy:          user.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(*event))
}

// ToggleRSVP handles POST /events/:id/rsvp.
//
// @Summary      Join or leave an event
// @Tags         events
// @Param        id   path  string  true  "Event id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /events/{id}/rsvp [post]
func (h *EventHandler) ToggleRSVP(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.events.ToggleRSVP(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
