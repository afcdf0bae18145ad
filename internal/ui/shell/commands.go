package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/router"
)

const helpText = `Commands:
  login <email>                          sign in with an allowed email
  logout                                 sign out
  go feed|events|admin|login             open a page
  search [term]                          filter the feed, empty clears
  sort latest|popular                    order the feed
  attach <file> | detach                 add or drop an image for the next post
  post <text>                            publish a post, #words become tags
  like <post-id>                         like or unlike a post
  comment <post-id> <text>               comment on a post
  date <YYYY-MM-DD>|all                  filter events by day
  event <date> <HH:MM> <expected> <title> create an event
  rsvp <event-id>                        join or leave an event
  approve|deny|admin <user-id>           moderate users (admins)
  delete post|event <id>                 remove content (admins)
  help | quit
`

// exec runs one command and returns the fragment to navigate to, if any.
func (s *Shell) exec(ctx context.Context, line string) (string, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(verb) {
	case "":
		return "", nil
	case "help", "?":
		if _, err := fmt.Fprint(s.opts.Out, helpText); err != nil {
			return "", err
		}
		return "", errHelpShown
	case "quit", "exit":
		return "", errQuit

	case "login":
		if len(args) != 1 {
			return "", usage("login <email>")
		}
		if _, err := s.opts.Auth.SignIn(ctx, args[0], s.opts.AllowedDomains); err != nil {
			return "", err
		}
		return router.PathFeed, nil
	case "logout":
		s.attach.Clear()
		if err := s.opts.Auth.SignOut(ctx); err != nil {
			return "", err
		}
		return router.PathLogin, nil
	case "go":
		if len(args) != 1 {
			return "", usage("go feed|events|admin|login")
		}
		return "#/" + strings.TrimPrefix(args[0], "#/"), nil

	case "search":
		s.view.FeedSearch = rest
		return router.PathFeed, nil
	case "sort":
		if len(args) != 1 || (args[0] != string(ports.SortLatest) && args[0] != string(ports.SortPopular)) {
			return "", usage("sort latest|popular")
		}
		s.view.FeedSort = ports.PostSort(args[0])
		return router.PathFeed, nil
	case "date":
		if len(args) != 1 {
			return "", usage("date <YYYY-MM-DD>|all")
		}
		if args[0] == "all" {
			s.view.SelectedDate = ""
		} else {
			s.view.SelectedDate = args[0]
		}
		return router.PathEvents, nil

	case "attach":
		return "", s.attachFile(ctx, rest)
	case "detach":
		s.attach.Clear()
		return "", nil
	case "post":
		return "", s.createPost(ctx, rest)
	case "like":
		if len(args) != 1 {
			return "", usage("like <post-id>")
		}
		user, err := s.writer()
		if err != nil {
			return "", err
		}
		return "", s.opts.Posts.ToggleLike(ctx, args[0], user.ID)
	case "comment":
		id, text, _ := strings.Cut(rest, " ")
		if id == "" {
			return "", usage("comment <post-id> <text>")
		}
		user, err := s.writer()
		if err != nil {
			return "", err
		}
		_, err = s.opts.Posts.AddComment(ctx, id, user.ID, text)
		return "", err

	case "event":
		return "", s.createEvent(ctx, args)
	case "rsvp":
		if len(args) != 1 {
			return "", usage("rsvp <event-id>")
		}
		user, err := s.writer()
		if err != nil {
			return "", err
		}
		return "", s.opts.Events.ToggleRSVP(ctx, args[0], user.ID)

	case "approve", "deny", "admin":
		if len(args) != 1 {
			return "", usage(verb + " <user-id>")
		}
		if err := s.requireAdmin(); err != nil {
			return "", err
		}
		switch verb {
		case "approve":
			return "", s.opts.Admin.Approve(ctx, args[0])
		case "deny":
			return "", s.opts.Admin.Deny(ctx, args[0])
		default:
			return "", s.opts.Admin.ToggleAdmin(ctx, args[0])
		}
	case "delete":
		if len(args) != 2 {
			return "", usage("delete post|event <id>")
		}
		if err := s.requireAdmin(); err != nil {
			return "", err
		}
		switch args[0] {
		case "post":
			return "", s.opts.Admin.DeletePost(ctx, args[1])
		case "event":
			return "", s.opts.Admin.DeleteEvent(ctx, args[1])
		default:
			return "", usage("delete post|event <id>")
		}
	}
	return "", errUnknownVerb
}

func (s *Shell) attachFile(ctx context.Context, path string) error {
	if _, err := s.writer(); err != nil {
		return err
	}
	if path == "" {
		return usage("attach <file>")
	}
	f, size, err := s.opts.OpenFile(path)
	if err != nil {
		return &domain.ImageError{Reason: "failed to read image file", Err: err}
	}
	defer f.Close()
	_, err = s.attach.Attach(ctx, f, size)
	return err
}

func (s *Shell) createPost(ctx context.Context, text string) error {
	user, err := s.writer()
	if err != nil {
		return err
	}
	var tags []string
	for _, word := range strings.Fields(text) {
		if len(word) > 1 && strings.HasPrefix(word, "#") {
			tags = append(tags, word)
		}
	}
	if _, err := s.opts.Posts.Create(ctx, ports.CreatePostInput{
		Text:     text,
		AuthorID: user.ID,
		Image:    s.attach.Pending(),
		Tags:     tags,
	}); err != nil {
		return err
	}
	s.attach.Clear()
	return nil
}

func (s *Shell) createEvent(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return usage("event <YYYY-MM-DD> <HH:MM> <expected> <title>")
	}
	user, err := s.writer()
	if err != nil {
		return err
	}
	expected, err := strconv.Atoi(args[2])
	if err != nil {
		return domain.NewValidationError("expectedAttendance", "must be a whole number")
	}
	_, err = s.opts.Events.Create(ctx, ports.CreateEventInput{
		Title:              strings.Join(args[3:], " "),
		Date:               args[0],
		Time:               args[1],
		ExpectedAttendance: expected,
		CreatedBy:          user.ID,
	})
	return err
}

// writer returns the signed-in user when the access policy lets them change content.
func (s *Shell) writer() (*domain.User, error) {
	user := s.opts.Auth.CurrentUser()
	if user == nil {
		return nil, errSignedOut
	}
	if !s.opts.Auth.RequireApprovedUser(s.opts.Policy).CanWrite() {
		return nil, errReadOnly
	}
	return user, nil
}

func (s *Shell) requireAdmin() error {
	user := s.opts.Auth.CurrentUser()
	if user == nil {
		return errSignedOut
	}
	if !user.IsAdmin {
		return errAdminOnly
	}
	return nil
}

func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}
