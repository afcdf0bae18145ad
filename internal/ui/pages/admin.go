package pages

import (
	"io"
)

type AdminPage struct {
	deps Deps
}

func (p *AdminPage) Render(w io.Writer) error {
	d := p.deps
	out := &printer{w: w}
	out.heading("Admin Console", "Manage community access, roles, and moderate content.")
	out.notice(d.View)
	out.blank()

	if user := d.Auth.CurrentUser(); user == nil || !user.IsAdmin {
		out.linef("You do not have permission to view this page.")
		return out.err
	}

	out.linef("Pending signups")
	pending := d.Admin.ListPendingUsers()
	if len(pending) == 0 {
		out.linef("  No pending requests right now.")
	}
	for _, u := range pending {
		out.linef("  %s | requested %s | approve %s / deny %s",
			u.Email, RelativeTime(u.CreatedAt, d.Now()), u.ID, u.ID)
	}
	out.blank()

	out.linef("Users")
	for _, u := range d.Admin.ListUsers() {
		status := "Pending"
		if u.Approved {
			status = "Approved"
		}
		action := "admin " + u.ID + " (Make admin)"
		if u.IsAdmin {
			action = "admin " + u.ID + " (Remove admin)"
		}
		if d.AdminEmail != "" && u.Email == d.AdminEmail {
			action = "Seed admin"
		}
		out.linef("  %s | %s | %s", u.Email, status, action)
	}
	out.blank()

	out.linef("Moderation")
	out.linef("  Remove content with: delete post <id> | delete event <id>")
	return out.err
}
