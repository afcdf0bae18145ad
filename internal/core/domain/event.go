package domain

import (
	"slices"
	"time"
)

const (
	// DateLayout is the calendar date format used by Event.Date.
	DateLayout = "2006-01-02"
	// TimeLayout is the local time-of-day format used by Event.Time.
	TimeLayout = "15:04"
)

// Event is a scheduled community gathering. Attendees is a set of user ids.
type Event struct {
	ID                 string    `json:"id" yaml:"id"`
	Title              string    `json:"title" yaml:"title"`
	Date               string    `json:"date" yaml:"date"`
	Time               string    `json:"time" yaml:"time"`
	ExpectedAttendance int       `json:"expectedAttendance" yaml:"expectedAttendance"`
	Attendees          []string  `json:"attendees" yaml:"attendees"`
	CreatedBy          string    `json:"createdBy" yaml:"createdBy"`
	CreatedAt          time.Time `json:"createdAt" yaml:"createdAt"`
}

// Attending reports whether userID has RSVPed.
func (e Event) Attending(userID string) bool {
	return slices.Contains(e.Attendees, userID)
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	e.Attendees = slices.Clone(e.Attendees)
	return e
}
