// Package pages renders the application screens as plain text. Pages read
// through the service interfaces only and never touch the store.
package pages

import (
	"fmt"
	"io"
	"time"

	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/router"
)

// ViewState is UI state that survives re-renders but is never persisted.
type ViewState struct {
	FeedSearch   string
	FeedSort     ports.PostSort
	SelectedDate string
	// Notice is inline feedback for the last action, such as a validation error.
	Notice string
}

// AttachmentView exposes the composer's pending image, if any.
type AttachmentView interface {
	Pending() *string
}

type Deps struct {
	Auth           ports.AuthService
	Posts          ports.PostService
	Events         ports.EventService
	Admin          ports.AdminService
	AllowedDomains []string
	ReadOnly       bool // access policy flag for unapproved users
	AdminEmail     string
	View           *ViewState
	Attachment     AttachmentView
	Now            func() time.Time
}

// Routes returns the application's route table.
func Routes(d Deps) map[string]router.Factory {
	if d.View == nil {
		d.View = &ViewState{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return map[string]router.Factory{
		router.PathLogin:  func() router.Page { return &LoginPage{deps: d} },
		router.PathFeed:   func() router.Page { return &FeedPage{deps: d} },
		router.PathEvents: func() router.Page { return &EventsPage{deps: d} },
		router.PathAdmin:  func() router.Page { return &AdminPage{deps: d} },
	}
}

// printer writes lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() { p.linef("") }

func (p *printer) heading(eyebrow, title string) {
	p.linef("== %s ==", eyebrow)
	p.linef("%s", title)
}

func (p *printer) notice(view *ViewState) {
	if view != nil && view.Notice != "" {
		p.linef("! %s", view.Notice)
	}
}
