package pages

import (
	"io"
	"strings"
)

type LoginPage struct {
	deps Deps
}

func (p *LoginPage) Render(w io.Writer) error {
	out := &printer{w: w}
	out.heading("Sign in", "Sign in to continue")
	out.linef("Use your school-approved Google account to access the community feed and events.")
	out.notice(p.deps.View)
	out.blank()

	if len(p.deps.AllowedDomains) == 0 {
		out.linef("! No allowed email domains configured. Update the configuration before launching.")
	} else {
		out.linef("Allowed domains: %s", strings.Join(p.deps.AllowedDomains, ", "))
	}
	out.linef("Sign in with: login <email>   (e.g. %s)", p.placeholder())

	if user := p.deps.Auth.CurrentUser(); user != nil {
		out.blank()
		if user.Approved {
			out.linef("You are signed in and approved. Use the navigation above to visit the feed or events.")
		} else {
			out.linef("Your signup is pending approval. You can explore in read-only mode.")
		}
	}

	out.blank()
	out.linef("Authentication is mock only. Replace with production-ready Google Sign-In and secure APIs before deployment.")
	return out.err
}

func (p *LoginPage) placeholder() string {
	if len(p.deps.AllowedDomains) > 0 && strings.HasPrefix(p.deps.AllowedDomains[0], "@") {
		return "example" + p.deps.AllowedDomains[0]
	}
	return "user@example.com"
}
