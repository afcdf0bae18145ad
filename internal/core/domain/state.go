package domain

import (
	"slices"
	"time"
)

// Session references the signed-in user, if any. There is at most one per store.
type Session struct {
	UserID *string `json:"userId" yaml:"userId"`
}

// Meta carries bookkeeping about the stored document itself.
type Meta struct {
	MigratedAt *time.Time `json:"migratedAt" yaml:"migratedAt"`
}

// State is the whole persisted application tree.
type State struct {
	Users        map[string]User `json:"users" yaml:"users"`
	PendingUsers []string        `json:"pendingUsers" yaml:"pendingUsers"`
	Posts        []Post          `json:"posts" yaml:"posts"`
	Events       []Event         `json:"events" yaml:"events"`
	Session      Session         `json:"session" yaml:"session"`
	Meta         Meta            `json:"meta" yaml:"meta"`
}

// DefaultState returns the empty tree used for first start and resets.
func DefaultState() State {
	return State{
		Users:        map[string]User{},
		PendingUsers: []string{},
		Posts:        []Post{},
		Events:       []Event{},
	}
}

// Clone returns a structural deep copy of s. Nil collections stay nil.
func (s State) Clone() State {
	out := State{
		PendingUsers: slices.Clone(s.PendingUsers),
	}
	if s.Users != nil {
		out.Users = make(map[string]User, len(s.Users))
		for id, u := range s.Users {
			out.Users[id] = u.Clone()
		}
	}
	if s.Posts != nil {
		out.Posts = make([]Post, len(s.Posts))
		for i, p := range s.Posts {
			out.Posts[i] = p.Clone()
		}
	}
	if s.Events != nil {
		out.Events = make([]Event, len(s.Events))
		for i, e := range s.Events {
			out.Events[i] = e.Clone()
		}
	}
	if s.Session.UserID != nil {
		id := *s.Session.UserID
		out.Session.UserID = &id
	}
	if s.Meta.MigratedAt != nil {
		at := *s.Meta.MigratedAt
		out.Meta.MigratedAt = &at
	}
	return out
}

// SessionUserID returns the active session's user id or "".
func (s State) SessionUserID() string {
	if s.Session.UserID == nil {
		return ""
	}
	return *s.Session.UserID
}

// SetSession points the session at userID; an empty id clears it.
func (s *State) SetSession(userID string) {
	if userID == "" {
		s.Session.UserID = nil
		return
	}
	s.Session.UserID = &userID
}

// FindUserByEmail performs the linear lookup used at sign-in.
func (s State) FindUserByEmail(email string) (User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// PostIndex returns the index of the post with the given id, or -1.
func (s State) PostIndex(id string) int {
	return slices.IndexFunc(s.Posts, func(p Post) bool { return p.ID == id })
}

// EventIndex returns the index of the event with the given id, or -1.
func (s State) EventIndex(id string) int {
	return slices.IndexFunc(s.Events, func(e Event) bool { return e.ID == id })
}

// RemoveUser deletes a user and everything they own: their pending entry,
// their posts and events, and the session if it was theirs.
func (s *State) RemoveUser(userID string) {
	delete(s.Users, userID)
	s.PendingUsers = slices.DeleteFunc(s.PendingUsers, func(id string) bool { return id == userID })
	if s.SessionUserID() == userID {
		s.Session.UserID = nil
	}
	s.Posts = slices.DeleteFunc(s.Posts, func(p Post) bool { return p.AuthorID == userID })
	s.Events = slices.DeleteFunc(s.Events, func(e Event) bool { return e.CreatedBy == userID })
}

// ToggleMember flips membership of id in a set-like slice.
func ToggleMember(set []string, id string) []string {
	if i := slices.Index(set, id); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, id)
}
