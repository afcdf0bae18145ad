// Package router maps URL fragments such as "#/feed?tab=all" to pages. Before
// every render a guard may redirect the navigation; after every render an
// optional hook refreshes surrounding chrome.
//
// A Router is not safe for concurrent use. Drive it from one goroutine, the
// same one that mutates the store it observes.
package router

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/metrics"
)

// maxRedirects bounds guard redirect chains within one transition.
const maxRedirects = 8

var (
	// ErrNoTarget is the panic value raised when a render is attempted with no target.
	ErrNoTarget = errors.New("router: render target is not configured")
	// ErrRedirectLoop is returned when guards keep redirecting.
	ErrRedirectLoop = errors.New("router: too many guard redirects")
)

// Page is one rendered screen.
type Page interface {
	Render(w io.Writer) error
}

// AfterRenderer is implemented by pages that need a hook once their output is in place.
type AfterRenderer interface {
	AfterRender()
}

// Factory builds a fresh page for each render.
type Factory func() Page

// Guard inspects the resolved path and returns a fragment to redirect to, or
// "" to allow the render. Guards must not mutate application state.
type Guard func(path string) (redirect string)

// Target receives rendered output. Clear is called before every render.
type Target interface {
	io.Writer
	Clear()
}

type Options struct {
	Routes       map[string]Factory
	DefaultRoute string
	Target       Target
	Location     Location
	Guard        Guard
	// AfterRender runs after every successful render with the resolved path.
	AfterRender func(path string)
	Logger      zerolog.Logger
}

type Router struct {
	opts        Options
	current     string
	redirecting bool
	unsubscribe func()
}

func New(opts Options) *Router {
	if opts.Routes == nil {
		opts.Routes = map[string]Factory{}
	}
	return &Router{opts: opts}
}

// Start subscribes to fragment changes and renders the current fragment.
func (r *Router) Start() error {
	if r.unsubscribe == nil && r.opts.Location != nil {
		r.unsubscribe = r.opts.Location.OnChange(r.onLocationChange)
	}
	return r.Refresh()
}

// Stop detaches from the location.
func (r *Router) Stop() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// Navigate moves to fragment, or re-renders when it is already current.
func (r *Router) Navigate(fragment string) error {
	if r.fragment() == fragment {
		return r.Refresh()
	}
	return r.setFragment(fragment, 0)
}

// Refresh runs the transition for the current fragment again.
func (r *Router) Refresh() error {
	return r.handle(0)
}

// Current returns the last rendered path, or "" before the first render.
func (r *Router) Current() string {
	return r.current
}

// PathOf strips the query suffix from a fragment.
func PathOf(fragment string) string {
	path, _, _ := strings.Cut(fragment, "?")
	return path
}

func (r *Router) onLocationChange() {
	if r.redirecting {
		return
	}
	if err := r.Refresh(); err != nil {
		r.opts.Logger.Error().Err(err).Str("fragment", r.fragment()).Msg("route transition failed")
	}
}

func (r *Router) fragment() string {
	if r.opts.Location == nil {
		return ""
	}
	return r.opts.Location.Fragment()
}

// setFragment rewrites the location without triggering the change listener
// and runs the transition directly, so redirect chains can be counted.
func (r *Router) setFragment(fragment string, hops int) error {
	if r.opts.Location != nil {
		r.redirecting = true
		r.opts.Location.SetFragment(fragment)
		r.redirecting = false
	}
	return r.handle(hops)
}

func (r *Router) handle(hops int) error {
	fragment := r.fragment()
	if fragment == "" {
		fragment = r.opts.DefaultRoute
	}
	path := PathOf(fragment)
	if path == "" {
		path = r.opts.DefaultRoute
	}

	if r.opts.Guard != nil {
		if redirect := r.opts.Guard(path); redirect != "" {
			metrics.RouterTransitionsTotal.WithLabelValues(r.routeLabel(path), "redirect").Inc()
			if redirect == fragment {
				return nil
			}
			if hops >= maxRedirects {
				return ErrRedirectLoop
			}
			r.opts.Logger.Debug().Str("from", path).Str("to", redirect).Msg("guard redirect")
			return r.setFragment(redirect, hops+1)
		}
	}

	factory, ok := r.opts.Routes[path]
	if !ok {
		factory, ok = r.opts.Routes[r.opts.DefaultRoute]
	}
	if !ok {
		r.opts.Logger.Warn().Str("path", path).Msg("route not found")
		return nil
	}

	r.current = path
	if r.opts.Target == nil {
		panic(ErrNoTarget)
	}

	r.opts.Target.Clear()
	page := factory()
	if page != nil {
		if err := page.Render(r.opts.Target); err != nil {
			return err
		}
		if ar, ok := page.(AfterRenderer); ok {
			ar.AfterRender()
		}
	}
	metrics.RouterTransitionsTotal.WithLabelValues(r.routeLabel(path), "render").Inc()

	if r.opts.AfterRender != nil {
		r.opts.AfterRender(path)
	}
	return nil
}

// routeLabel keeps metric cardinality bounded to registered routes.
func (r *Router) routeLabel(path string) string {
	if _, ok := r.opts.Routes[path]; ok {
		return path
	}
	return "unknown"
}
