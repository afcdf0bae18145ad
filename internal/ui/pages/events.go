package pages

import (
	"io"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

type EventsPage struct {
	deps Deps
}

func (p *EventsPage) Render(w io.Writer) error {
	d := p.deps
	user := d.Auth.CurrentUser()
	access := d.Auth.RequireApprovedUser(domain.AccessPolicy{ReadOnlyForUnapproved: d.ReadOnly})
	canWrite := user != nil && access.CanWrite()

	out := &printer{w: w}
	out.heading("Campus Calendar", "Plan and join upcoming events")
	out.linef("Browse student-led gatherings, volunteer opportunities, and official campus happenings.")
	out.notice(d.View)
	out.blank()

	if user != nil && !user.Approved {
		out.linef("! You can explore events while your access is pending. Moderators will unlock RSVP once approved.")
	}
	if d.View.SelectedDate != "" {
		out.linef("Showing %s (date all to clear)", DisplayDate(d.View.SelectedDate))
	} else {
		out.linef("Showing all dates (date YYYY-MM-DD to filter)")
	}
	if canWrite {
		out.linef("Add event: event <YYYY-MM-DD> <HH:MM> <expected> <title>")
	}
	out.blank()

	events := d.Events.List(ports.ListEventsFilter{Date: d.View.SelectedDate})
	if len(events) == 0 {
		if d.View.SelectedDate != "" {
			out.linef("No events scheduled for this date yet. Add one or try a different day.")
		} else {
			out.linef("No upcoming events yet. Check back soon or host the next gathering!")
		}
		return out.err
	}

	for i, e := range events {
		if i > 0 {
			out.blank()
		}
		rsvp := "RSVP"
		if user != nil && e.Attending(user.ID) {
			rsvp = "Cancel RSVP"
		}
		out.linef("[%s] %s", e.ID, plain(e.Title))
		out.linef("  %s, %s", DisplayDate(e.Date), e.Time)
		out.linef("  Expected %d | RSVP %d", e.ExpectedAttendance, len(e.Attendees))
		switch {
		case user == nil:
			out.linef("  Sign in to RSVP.")
		case !canWrite:
			out.linef("  Pending users cannot RSVP yet.")
		default:
			out.linef("  rsvp %s -> %s", e.ID, rsvp)
		}
	}
	return out.err
}
