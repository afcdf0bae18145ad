package domain

import "time"

// ApprovalStatus is reported back to a user right after signing in.
type ApprovalStatus string

const (
	StatusApproved ApprovalStatus = "approved"
	StatusPending  ApprovalStatus = "pending"
)

// User models a community member. Email is stored trimmed and lowercased.
type User struct {
	ID        string         `json:"id" yaml:"id"`
	Email     string         `json:"email" yaml:"email"`
	Approved  bool           `json:"approved" yaml:"approved"`
	IsAdmin   bool           `json:"isAdmin" yaml:"isAdmin"`
	CreatedAt time.Time      `json:"createdAt" yaml:"createdAt"`
	Profile   map[string]any `json:"profile" yaml:"profile"`
}

// Status reports the approval status of the user.
func (u User) Status() ApprovalStatus {
	if u.Approved {
		return StatusApproved
	}
	return StatusPending
}

// Clone returns a copy of u that shares no mutable memory with it.
func (u User) Clone() User {
	u.Profile = cloneProfile(u.Profile)
	return u
}

func cloneProfile(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

// cloneAny copies the value shapes produced by encoding/json.
func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneProfile(t)
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneAny(t[i])
		}
		return out
	default:
		return v
	}
}
