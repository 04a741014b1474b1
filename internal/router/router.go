// Package router maps paths to views and runs every protected route through
// the Gate. It re-evaluates the mounted path whenever the session changes.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/misterclayt0n/lazaro-planner/internal/session"
)

const (
	maxRedirects = 8
	maxRenders   = 8
)

var (
	ErrRedirectLoop = errors.New("too many redirects")
	ErrNothingOpen  = errors.New("no view is open")
)

// View is a renderable screen.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

type ViewFunc func(ctx context.Context, w io.Writer) error

func (f ViewFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

type Params map[string]string

// Factory builds the view for a matched route.
type Factory func(Params) View

type Route struct {
	Name      string
	Pattern   string
	Protected bool

	factory  Factory
	redirect func(session.Session) string
}

// Resolution is the outcome of navigating to a path.
type Resolution struct {
	Requested string // Path that was asked for.
	Path      string // Path that was rendered after redirects.
	Route     string
	Params    Params
	View      View

	seq uint64
}

type Router struct {
	mu     sync.Mutex
	mux    *mux.Router
	routes map[string]*Route

	gate     *Gate
	sessions SessionSource
	home     string

	current   Resolution
	seq       uint64
	listeners map[int]func(Resolution)
	nextID    int

	unsubscribe func()
}

// New returns a router with the root route installed: "/" goes to home when
// the session is authenticated and to the login path otherwise. Unknown
// paths resolve to "/".
func New(sessions SessionSource, home string) *Router {
	r := &Router{
		mux:       mux.NewRouter().UseEncodedPath(),
		routes:    make(map[string]*Route),
		gate:      NewGate(sessions, PathLogin),
		sessions:  sessions,
		home:      home,
		listeners: make(map[int]func(Resolution)),
	}

	r.add(&Route{
		Name:    RouteRoot,
		Pattern: PathRoot,
		redirect: func(s session.Session) string {
			if s.IsAuthenticated {
				return r.home
			}
			return PathLogin
		},
	})

	r.unsubscribe = sessions.Subscribe(r.onSessionChange)
	return r
}

// Handle registers a view route.
func (r *Router) Handle(name, pattern string, protected bool, factory Factory) {
	r.add(&Route{
		Name:      name,
		Pattern:   pattern,
		Protected: protected,
		factory:   factory,
	})
}

func (r *Router) add(route *Route) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes[route.Name] = route
	r.mux.NewRoute().Name(route.Name).Path(route.Pattern)
}

// match takes an escaped path so that an escaped "/" inside a parameter
// stays inside that parameter.
func (r *Router) match(path string) (*Route, Params, bool) {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return nil, nil, false
	}
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: decoded, RawPath: path}}

	r.mu.Lock()
	defer r.mu.Unlock()

	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.Route == nil {
		return nil, nil, false
	}
	route, ok := r.routes[m.Route.GetName()]
	if !ok {
		return nil, nil, false
	}

	params := make(Params, len(m.Vars))
	for k, v := range m.Vars {
		if params[k], err = url.PathUnescape(v); err != nil {
			return nil, nil, false
		}
	}
	return route, params, true
}

// Resolve follows redirects for path without changing the current view.
func (r *Router) Resolve(path string) (Resolution, error) {
	requested := path
	if u, err := url.Parse(path); err == nil {
		path = u.EscapedPath()
	}

	for hops := 0; hops < maxRedirects; hops++ {
		route, params, ok := r.match(path)
		if !ok {
			path = PathRoot
			continue
		}

		if route.redirect != nil {
			path = route.redirect(r.sessions.Current())
			continue
		}

		if d := r.gate.Evaluate(route); !d.Allowed {
			log.Debug().Str("path", path).Str("redirect", d.RedirectTo).Msg("gate denied route")
			path = d.RedirectTo
			continue
		}

		if params == nil {
			params = Params{}
		}
		return Resolution{
			Requested: requested,
			Path:      path,
			Route:     route.Name,
			Params:    params,
			View:      route.factory(params),
		}, nil
	}

	return Resolution{}, fmt.Errorf("%w resolving %s", ErrRedirectLoop, requested)
}

// Navigate resolves path, makes it current and notifies subscribers.
func (r *Router) Navigate(path string) error {
	res, err := r.Resolve(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("navigation failed")
		return err
	}

	r.mu.Lock()
	r.seq++
	res.seq = r.seq
	r.current = res
	r.mu.Unlock()

	log.Debug().Str("requested", res.Requested).Str("path", res.Path).Msg("navigated")
	r.notify(res)
	return nil
}

func (r *Router) Current() Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers fn to be called synchronously after every navigation.
func (r *Router) Subscribe(fn func(Resolution)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

func (r *Router) notify(res Resolution) {
	r.mu.Lock()
	ids := make([]int, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		r.mu.Lock()
		fn, ok := r.listeners[id]
		r.mu.Unlock()
		if ok {
			fn(res)
		}
	}
}

// onSessionChange re-runs the gate for the mounted path so a logout while a
// protected view is open redirects right away.
func (r *Router) onSessionChange(session.Session) {
	cur := r.Current()
	if cur.Path == "" {
		return
	}

	res, err := r.Resolve(cur.Path)
	if err != nil || res.Path == cur.Path {
		return
	}
	if err := r.Navigate(cur.Path); err != nil {
		log.Error().Err(err).Msg("failed to re-evaluate route after session change")
	}
}

// Open navigates to path and renders the resulting view to w.
func (r *Router) Open(ctx context.Context, path string, w io.Writer) error {
	if err := r.Navigate(path); err != nil {
		return err
	}
	return r.RenderCurrent(ctx, w)
}

// RenderCurrent renders the current view. When rendering causes a
// navigation (a forced logout, an edit request) the new view is rendered next.
func (r *Router) RenderCurrent(ctx context.Context, w io.Writer) error {
	for i := 0; i < maxRenders; i++ {
		res := r.Current()
		if res.View == nil {
			return ErrNothingOpen
		}
		if err := res.View.Render(ctx, w); err != nil {
			return err
		}
		if r.Current().seq == res.seq {
			return nil
		}
	}
	return ErrRedirectLoop
}

// Close stops following session changes.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}
