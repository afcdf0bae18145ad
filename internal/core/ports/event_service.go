package ports

import (
	"context"

	"github.com/99minutos/community-board/internal/core/domain"
)

// CreateEventInput carries a new event. Date is YYYY-MM-DD and Time is HH:MM.
type CreateEventInput struct {
	Title              string `validate:"required"`
	Date               string `validate:"required,datetime=2006-01-02"`
	Time               string `validate:"required,datetime=15:04"`
	ExpectedAttendance int    `validate:"min=0"`
	CreatedBy          string
}

// ListEventsFilter optionally restricts the listing to one calendar date.
type ListEventsFilter struct {
	Date string
}

// EventService manages community events and RSVPs.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	List(filter ListEventsFilter) []domain.Event
	Delete(ctx context.Context, eventID string) error
	ToggleRSVP(ctx context.Context, eventID, userID string) error
}
