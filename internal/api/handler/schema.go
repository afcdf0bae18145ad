package handler

import "time"

// --- Requests ---

type signInRequest struct {
	Email string `json:"email" validate:"required"`
}

type createPostRequest struct {
	Text string   `json:"text" form:"text" validate:"required"`
	Tags []string `json:"tags" form:"tags"`
}

type listPostsQuery struct {
	Search string `query:"search"`
	Sort   string `query:"sort"   validate:"omitempty,oneof=latest popular"`
	Offset int    `query:"offset" validate:"min=0"`
	Limit  int    `query:"limit"  validate:"min=0,max=100"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type createEventRequest struct {
	Title              string `json:"title"               validate:"required"`
	Date               string `json:"date"                validate:"required"`
	Time               string `json:"time"                validate:"required"`
	ExpectedAttendance int    `json:"expected_attendance" validate:"min=0"`
}

type listEventsQuery struct {
	Date string `query:"date"`
}

// --- Responses ---

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Approved  bool      `json:"approved"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type signInResponse struct {
	User   userResponse `json:"user"`
	Status string       `json:"status"`
}

type sessionResponse struct {
	User     *userResponse `json:"user"`
	CanWrite bool          `json:"can_write"`
	ReadOnly bool          `json:"read_only"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type postResponse struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Image     *string           `json:"image,omitempty"`
	AuthorID  string            `json:"author_id"`
	CreatedAt time.Time         `json:"created_at"`
	Likes     []string          `json:"likes"`
	Comments  []commentResponse `json:"comments"`
	Tags      []string          `json:"tags"`
}

type eventResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	ExpectedAttendance int       `json:"expected_attendance"`
	Attendees          []string  `json:"attendees"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}
