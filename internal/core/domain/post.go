package domain

import (
	"slices"
	"time"
)

// Comment belongs to exactly one Post and is removed together with it.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"userId"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Post is a feed entry. Image holds an opaque embeddable payload (a data URL)
// or nil. Likes is a set of user ids.
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Image     *string   `json:"image" yaml:"image"`
	AuthorID  string    `json:"authorId" yaml:"authorId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Likes     []string  `json:"likes" yaml:"likes"`
	Comments  []Comment `json:"comments" yaml:"comments"`
	Tags      []string  `json:"tags" yaml:"tags"`
}

// LikedBy reports whether userID is in the like set.
func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	if p.Image != nil {
		img := *p.Image
		p.Image = &img
	}
	p.Likes = slices.Clone(p.Likes)
	p.Comments = slices.Clone(p.Comments)
	p.Tags = slices.Clone(p.Tags)
	return p
}
