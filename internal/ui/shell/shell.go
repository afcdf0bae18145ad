// Package shell is an interactive terminal front end. It drives the router
// from a line-oriented command loop and re-renders whenever the store changes.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/core/service"
	"github.com/99minutos/community-board/internal/router"
	"github.com/99minutos/community-board/internal/ui/pages"
)

var (
	errQuit        = errors.New("quit")
	errHelpShown   = errors.New("help shown")
	errSignedOut   = errors.New("sign in first")
	errReadOnly    = errors.New("your account can make changes once a moderator approves it")
	errAdminOnly   = errors.New("only administrators can do that")
	errUnknownVerb = errors.New("unknown command, type help for the list")
)

// FileOpener opens an image for the attach command.
type FileOpener func(path string) (io.ReadCloser, int64, error)

type Options struct {
	Auth   ports.AuthService
	Posts  ports.PostService
	Events ports.EventService
	Admin  ports.AdminService
	Images ports.ImageService
	Store  ports.Store

	AllowedDomains []string
	Policy         domain.AccessPolicy
	AdminEmail     string

	In       io.Reader
	Out      io.Writer
	OpenFile FileOpener
	Now      func() time.Time
	Logger   zerolog.Logger
}

type Shell struct {
	opts     Options
	view     *pages.ViewState
	attach   *service.AttachmentSlot
	location *router.MemoryLocation
	router   *router.Router
	screen   *screen

	unsubscribe func()
	busy        bool
}

func New(opts Options) *Shell {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.OpenFile == nil {
		opts.OpenFile = openFile
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Shell{
		opts:     opts,
		view:     &pages.ViewState{FeedSort: ports.SortLatest},
		attach:   service.NewAttachmentSlot(opts.Images),
		location: router.NewMemoryLocation(router.PathFeed),
		screen:   newScreen(opts.Out),
	}
	s.router = router.New(router.Options{
		Routes: pages.Routes(pages.Deps{
			Auth:           opts.Auth,
			Posts:          opts.Posts,
			Events:         opts.Events,
			Admin:          opts.Admin,
			AllowedDomains: opts.AllowedDomains,
			ReadOnly:       opts.Policy.ReadOnlyForUnapproved,
			AdminEmail:     opts.AdminEmail,
			View:           s.view,
			Attachment:     s.attach,
			Now:            opts.Now,
		}),
		DefaultRoute: router.PathFeed,
		Target:       s.screen,
		Location:     s.location,
		Guard:        router.AccessGuard(opts.Auth, opts.Policy, router.PathFeed, router.PathAdmin),
		AfterRender:  s.afterRender,
		Logger:       opts.Logger,
	})
	return s
}

// Start subscribes to the store, so that commits re-render the current page,
// and renders the initial route.
func (s *Shell) Start() error {
	if s.unsubscribe == nil {
		s.unsubscribe = s.opts.Store.Subscribe(func(domain.State) {
			if s.busy {
				return
			}
			if err := s.router.Refresh(); err != nil {
				s.opts.Logger.Error().Err(err).Msg("re-render after state change failed")
			}
		})
	}
	return s.router.Start()
}

// Stop detaches the shell from the store and the location.
func (s *Shell) Stop() {
	s.router.Stop()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Run starts the shell and executes commands from In until EOF, quit, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()

	scanner := bufio.NewScanner(s.opts.In)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if _, err := fmt.Fprint(s.opts.Out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line and renders the result. Command failures are
// shown inline; only rendering failures are returned.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	s.view.Notice = ""
	s.busy = true
	next, cmdErr := s.exec(ctx, line)
	s.busy = false

	switch {
	case errors.Is(cmdErr, errQuit):
		return true, nil
	case errors.Is(cmdErr, errHelpShown):
		return false, nil
	case cmdErr != nil:
		s.view.Notice = cmdErr.Error()
	}

	if next != "" {
		return false, s.router.Navigate(next)
	}
	return false, s.router.Refresh()
}

func (s *Shell) afterRender(path string) {
	err := s.screen.present(func(w io.Writer) error {
		return pages.RenderHeader(w, path, s.opts.Auth.CurrentUser())
	})
	if err != nil {
		s.opts.Logger.Error().Err(err).Msg("write screen")
	}
}

func openFile(path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}
