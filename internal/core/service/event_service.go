package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/metrics"
)

type EventService struct {
	store  ports.Store
	logger zerolog.Logger
	now    func() time.Time
}

var _ ports.EventService = (*EventService)(nil)

func NewEventService(store ports.Store, logger zerolog.Logger) *EventService {
	return &EventService{store: store, logger: logger, now: utcNow}
}

// Create validates and stores a new event. Date must be YYYY-MM-DD and Time HH:MM.
func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if err := checkInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	event := domain.Event{
		ID:                 domain.NewID(domain.KindEvent, now),
		Title:              sanitizeText(in.Title),
		Date:               in.Date,
		Time:               in.Time,
		ExpectedAttendance: in.ExpectedAttendance,
		Attendees:          []string{},
		CreatedBy:          in.CreatedBy,
		CreatedAt:          now,
	}

	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		draft.Events = append(draft.Events, event.Clone())
		return draft, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create event")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues(domain.KindEvent).Inc()
	s.logger.Info().Str("event_id", event.ID).Str("date", event.Date).Msg("event created")
	return &event, nil
}

// List returns events in calendar order, optionally only those on filter.Date.
func (s *EventService) List(filter ports.ListEventsFilter) []domain.Event {
	events := s.store.GetState().Events
	date := strings.TrimSpace(filter.Date)

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if date != "" && e.Date != date {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b domain.Event) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
	})
	return out
}

func (s *EventService) Delete(ctx context.Context, eventID string) error {
	err := s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		return removeEvent(draft, eventID)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("event_id", eventID).Msg("event deleted")
	return nil
}

func removeEvent(draft domain.State, eventID string) (domain.State, error) {
	i := draft.EventIndex(eventID)
	if i < 0 {
		return draft, &domain.NotFoundError{Kind: domain.KindEvent, ID: eventID}
	}
	draft.Events = slices.Delete(draft.Events, i, i+1)
	return draft, nil
}

// ToggleRSVP flips userID in the event's attendee set. It does nothing for an
// empty user or an event that no longer exists.
func (s *EventService) ToggleRSVP(ctx context.Context, eventID, userID string) error {
	if userID == "" {
		return nil
	}
	return s.store.UpdateState(ctx, func(draft domain.State) (domain.State, error) {
		i := draft.EventIndex(eventID)
		if i < 0 {
			return draft, nil
		}
		draft.Events[i].Attendees = domain.ToggleMember(draft.Events[i].Attendees, userID)
		return draft, nil
	})
}
