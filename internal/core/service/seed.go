package service

import (
	"time"

	"github.com/99minutos/community-board/internal/core/domain"
)

// DemoSeed returns the startup seed: it makes sure adminEmail exists as an
// approved administrator and, when the feed or calendar is empty, adds the
// welcome posts and upcoming events. It reports whether anything changed and
// does nothing on a second run.
func DemoSeed(adminEmail string, now func() time.Time) func(*domain.State) bool {
	adminEmail = normalizeEmail(adminEmail)
	return func(st *domain.State) bool {
		if adminEmail == "" {
			return false
		}
		at := now().UTC()
		mutated := false

		admin, ok := st.FindUserByEmail(adminEmail)
		switch {
		case !ok:
			admin = domain.User{
				ID:        domain.NewID(domain.KindUser, at),
				Email:     adminEmail,
				Approved:  true,
				IsAdmin:   true,
				CreatedAt: at,
				Profile:   map[string]any{},
			}
			st.Users[admin.ID] = admin
			mutated = true
		case !admin.Approved || !admin.IsAdmin:
			admin.Approved = true
			admin.IsAdmin = true
			st.Users[admin.ID] = admin
			mutated = true
		}

		if len(st.Posts) == 0 {
			st.Posts = []domain.Post{
				seedPost(admin.ID, at, 6*time.Hour, "welcome",
					"Welcome to the School Community App! Share updates, wins, and questions with fellow students."),
				seedPost(admin.ID, at, 24*time.Hour, "reminder",
					"Reminder: Submit your project feedback forms by Friday. Thank you for keeping our campus thriving!"),
			}
			mutated = true
		}

		if len(st.Events) == 0 {
			st.Events = []domain.Event{
				seedEvent(admin.ID, at, 3, "Campus Cleanup Day", "10:00", 30),
				seedEvent(admin.ID, at, 10, "Innovation Showcase", "17:30", 80),
			}
			mutated = true
		}
		return mutated
	}
}

func seedPost(authorID string, now time.Time, age time.Duration, tag, text string) domain.Post {
	return domain.Post{
		ID:        domain.NewID(domain.KindPost, now),
		Text:      sanitizeText(text),
		AuthorID:  authorID,
		CreatedAt: now.Add(-age),
		Likes:     []string{},
		Comments:  []domain.Comment{},
		Tags:      []string{tag},
	}
}

func seedEvent(createdBy string, now time.Time, inDays int, title, at string, expected int) domain.Event {
	return domain.Event{
		ID:                 domain.NewID(domain.KindEvent, now),
		Title:              title,
		Date:               now.AddDate(0, 0, inDays).Format(domain.DateLayout),
		Time:               at,
		ExpectedAttendance: expected,
		Attendees:          []string{},
		CreatedBy:          createdBy,
		CreatedAt:          now,
	}
}
