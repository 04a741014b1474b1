// Package workouts keeps the local mirror of the planned-workout collection
// in step with the remote service. Every mutation is followed by a full
// refetch; the local list is never patched in place.
package workouts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/misterclayt0n/lazaro-planner/internal/api"
	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/router"
	"github.com/misterclayt0n/lazaro-planner/internal/session"
)

const (
	MsgFetchFailed  = "Failed to load planned workouts"
	MsgDeleteFailed = "Failed to delete planned workout"
)

var (
	// ErrSessionInvalid is returned when the server rejected the session; the
	// controller has already logged out and redirected to login.
	ErrSessionInvalid = errors.New("session is no longer valid")
	ErrUnknownWorkout = errors.New("unknown planned workout")
)

type Remote interface {
	ListPlannedWorkouts(ctx context.Context) ([]models.PlannedWorkout, error)
	DeletePlannedWorkout(ctx context.Context, id models.WorkoutID) error
}

type Sessions interface {
	Logout() session.Session
}

type Navigator interface {
	Navigate(path string) error
}

var (
	_ Remote    = (*api.Client)(nil)
	_ Sessions  = (*session.Store)(nil)
	_ Navigator = (*router.Router)(nil)
)

type Controller struct {
	remote   Remote
	sessions Sessions
	nav      Navigator

	mu         sync.Mutex
	state      State
	generation uint64 // Bumped by every FetchAll; only the latest may apply.

	listeners map[int]func(State)
	nextID    int
}

// NewController starts in the Loading state with no items.
func NewController(remote Remote, sessions Sessions, nav Navigator) *Controller {
	return &Controller{
		remote:    remote,
		sessions:  sessions,
		nav:       nav,
		state:     State{Loading: true},
		listeners: make(map[int]func(State)),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to be called synchronously after every transition.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// update applies fn under the lock and notifies subscribers with the result.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state.clone()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		c.mu.Lock()
		listener, ok := c.listeners[id]
		c.mu.Unlock()
		if ok {
			listener(snapshot)
		}
	}
}

// FetchAll replaces the local list with the server's. On failure the
// previous items stay in place and an error message is set, except for an
// authorization failure which logs the session out and returns
// ErrSessionInvalid instead. A response that arrives after a newer FetchAll
// was issued is discarded.
func (c *Controller) FetchAll(ctx context.Context) error {
	var gen uint64
	c.update(func(s *State) {
		c.generation++
		gen = c.generation
		s.Loading = true
	})

	items, err := c.remote.ListPlannedWorkouts(ctx)

	if err != nil && api.IsUnauthorized(err) {
		log.Error().Err(err).Msg("session rejected while fetching planned workouts")
		c.update(func(s *State) {
			if c.generation == gen {
				s.Loading = false
			}
		})
		c.forceLogout()
		return ErrSessionInvalid
	}

	c.mu.Lock()
	stale := c.generation != gen
	c.mu.Unlock()
	if stale {
		log.Debug().Uint64("generation", gen).Msg("discarding stale planned workouts response")
		return err
	}

	if err != nil {
		log.Error().Err(err).Msg("error fetching planned workouts")
		c.update(func(s *State) {
			if c.generation != gen {
				return
			}
			s.Loading = false
			s.Error = []string{MsgFetchFailed}
		})
		return fmt.Errorf("failed to fetch planned workouts: %w", err)
	}

	names := distinctNames(items)
	c.update(func(s *State) {
		if c.generation != gen {
			return
		}
		s.Items = items
		s.WorkoutNames = names
		s.Error = nil
		s.Loading = false
	})
	return nil
}

// SetFilter narrows the visible items to those named name. No network call.
func (c *Controller) SetFilter(name string) {
	c.update(func(s *State) { s.Filter = name })
}

func (c *Controller) ClearFilter() {
	c.SetFilter("")
}

func (c *Controller) DismissError() {
	c.update(func(s *State) { s.Error = nil })
}

// Find returns a known item by id.
func (c *Controller) Find(id models.WorkoutID) (models.PlannedWorkout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.state.Items {
		if w.ID == id {
			return w, true
		}
	}
	return models.PlannedWorkout{}, false
}

func (c *Controller) RequestCreate() error {
	return c.nav.Navigate(router.PathAddWorkout)
}

func (c *Controller) RequestEdit(id models.WorkoutID) error {
	return c.nav.Navigate(router.EditWorkoutPath(id.String()))
}

func (c *Controller) RequestStart(id models.WorkoutID) error {
	return c.nav.Navigate(router.StartWorkoutPath(id.String()))
}

// RequestDelete deletes id on the server and then refetches the collection.
// A failed delete shows the server's messages and leaves the list as it was.
func (c *Controller) RequestDelete(ctx context.Context, id models.WorkoutID) error {
	if _, ok := c.Find(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWorkout, id)
	}

	if err := c.remote.DeletePlannedWorkout(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("error deleting planned workout")
		if api.IsUnauthorized(err) {
			c.forceLogout()
			return ErrSessionInvalid
		}

		msgs := deleteMessages(err)
		c.update(func(s *State) { s.Error = msgs })
		return fmt.Errorf("failed to delete planned workout %s: %w", id, err)
	}

	c.update(func(s *State) { s.Error = nil })
	return c.FetchAll(ctx)
}

func deleteMessages(err error) []string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		if msgs := httpErr.Messages(); len(msgs) > 0 {
			return msgs
		}
	}
	return []string{MsgDeleteFailed}
}

func (c *Controller) forceLogout() {
	c.sessions.Logout()
	if err := c.nav.Navigate(router.PathLogin); err != nil {
		log.Error().Err(err).Msg("failed to redirect to login")
	}
}
