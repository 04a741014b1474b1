package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/workouts"
)

type LoginView struct{}

func (LoginView) Render(ctx context.Context, w io.Writer) error {
	header(w, "Login")
	fmt.Fprintln(w, "You are not logged in.")
	fmt.Fprintf(w, "Run %s to sign in, or %s to create an account.\n", yellow("lazaro login"), yellow("lazaro register"))
	return nil
}

type RegisterView struct{}

func (RegisterView) Render(ctx context.Context, w io.Writer) error {
	header(w, "Register")
	fmt.Fprintf(w, "Run %s to create an account.\n", yellow("lazaro register -u USERNAME"))
	return nil
}

type ListOptions struct {
	Filter    string
	NamesOnly bool
	JSON      bool
}

// PlannedWorkoutsView mounts the controller (a full fetch) and draws the list.
type PlannedWorkoutsView struct {
	Controller *workouts.Controller
	Location   *time.Location
	Options    ListOptions
}

func (v *PlannedWorkoutsView) Render(ctx context.Context, w io.Writer) error {
	v.Controller.SetFilter(v.Options.Filter)
	if err := v.Controller.FetchAll(ctx); errors.Is(err, workouts.ErrSessionInvalid) {
		// The router is already on its way to the login view.
		return nil
	}

	st := v.Controller.State()
	switch {
	case v.Options.JSON:
		return WriteJSON(w, st)
	case v.Options.NamesOnly:
		DrawErrors(w, st.Error)
		DrawWorkoutNames(w, st)
	default:
		DrawPlannedWorkouts(w, st, v.Location)
	}
	return nil
}

// AddWorkoutView is the entry point of the planning form.
type AddWorkoutView struct{}

func (AddWorkoutView) Render(ctx context.Context, w io.Writer) error {
	header(w, "Plan a New Workout")
	fmt.Fprintln(w, "Planning new workouts is done in the web app.")
	return nil
}

// WorkoutView shows a single planned workout for the edit and start routes.
type WorkoutView struct {
	Controller *workouts.Controller
	Location   *time.Location
	Title      string
	ID         models.WorkoutID
}

func (v *WorkoutView) Render(ctx context.Context, w io.Writer) error {
	pw, ok := v.Controller.Find(v.ID)
	if !ok {
		err := v.Controller.FetchAll(ctx)
		if errors.Is(err, workouts.ErrSessionInvalid) {
			return nil
		}
		pw, ok = v.Controller.Find(v.ID)
	}

	header(w, v.Title)
	if !ok {
		if st := v.Controller.State(); st.HasError() {
			DrawErrors(w, st.Error)
			return nil
		}
		DrawErrors(w, []string{fmt.Sprintf("Planned workout %s not found", v.ID)})
		return nil
	}

	drawWorkoutDetail(w, pw, v.Location)
	return nil
}
