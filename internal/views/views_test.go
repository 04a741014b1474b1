package views

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/lazaro-planner/internal/api"
	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/router"
	"github.com/misterclayt0n/lazaro-planner/internal/session"
	"github.com/misterclayt0n/lazaro-planner/internal/workouts"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type stubRemote struct {
	items []models.PlannedWorkout
	err   error
}

func (s *stubRemote) ListPlannedWorkouts(ctx context.Context) ([]models.PlannedWorkout, error) {
	return s.items, s.err
}

func (s *stubRemote) DeletePlannedWorkout(ctx context.Context, id models.WorkoutID) error {
	return nil
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) error { return nil }

func named(id, name, date string) models.PlannedWorkout {
	return models.PlannedWorkout{ID: models.WorkoutID(id), WorkoutName: &name, PlannedDate: date}
}

func newController(t *testing.T, remote workouts.Remote) *workouts.Controller {
	t.Helper()
	store := session.NewStore()
	_, err := store.Login("opaque-token")
	require.NoError(t, err)
	return workouts.NewController(remote, store, noopNavigator{})
}

var sample = []models.PlannedWorkout{
	named("1", "Leg Day", "2024-01-01"),
	named("2", "Leg Day", "2024-01-08"),
	named("3", "Arms", "2024-01-02"),
}

func TestPlannedWorkoutsViewFiltered(t *testing.T) {
	v := &PlannedWorkoutsView{
		Controller: newController(t, &stubRemote{items: sample}),
		Location:   time.UTC,
		Options:    ListOptions{Filter: "Leg Day"},
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, "PLANNED WORKOUTS")
	assert.Contains(t, out, "Filter: Leg Day")
	assert.Contains(t, out, "Workouts: Leg Day, Arms")
	assert.Contains(t, out, "1. Leg Day [id 1]")
	assert.Contains(t, out, "2. Leg Day [id 2]")
	assert.Contains(t, out, "Planned: Mon, 08 Jan 2024")
	assert.NotContains(t, out, "[id 3]")
}

func TestPlannedWorkoutsViewEmpty(t *testing.T) {
	v := &PlannedWorkoutsView{Controller: newController(t, &stubRemote{}), Location: time.UTC}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No planned workouts found")
}

func TestPlannedWorkoutsViewError(t *testing.T) {
	v := &PlannedWorkoutsView{
		Controller: newController(t, &stubRemote{err: &api.HTTPError{StatusCode: http.StatusBadGateway}}),
		Location:   time.UTC,
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "✗ "+workouts.MsgFetchFailed)
}

func TestPlannedWorkoutsViewSessionExpired(t *testing.T) {
	v := &PlannedWorkoutsView{
		Controller: newController(t, &stubRemote{err: &api.HTTPError{StatusCode: http.StatusUnauthorized}}),
		Location:   time.UTC,
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	assert.Empty(t, buf.String(), "nothing is drawn; the login view takes over")
}

func TestPlannedWorkoutsViewNames(t *testing.T) {
	v := &PlannedWorkoutsView{
		Controller: newController(t, &stubRemote{items: sample}),
		Options:    ListOptions{NamesOnly: true},
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	assert.Equal(t, "Leg Day\nArms\n", buf.String())
}

func TestPlannedWorkoutsViewJSON(t *testing.T) {
	v := &PlannedWorkoutsView{
		Controller: newController(t, &stubRemote{items: sample}),
		Options:    ListOptions{Filter: "Arms", JSON: true},
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	assert.JSONEq(t, `{
		"items": [{"id": 3, "workoutName": "Arms", "plannedDate": "2024-01-02"}],
		"workoutNames": ["Leg Day", "Arms"],
		"filter": "Arms"
	}`, buf.String())
}

func TestWorkoutView(t *testing.T) {
	rpe := float32(8)
	pw := named("7", "Push", "2024-03-04")
	pw.Notes = "deload week"
	pw.Exercises = []models.PlannedExercise{{ExerciseName: "Bench Press", Sets: 3, Reps: "5", TargetRPE: &rpe}}

	v := &WorkoutView{
		Controller: newController(t, &stubRemote{items: []models.PlannedWorkout{pw}}),
		Location:   time.UTC,
		Title:      "Start Workout",
		ID:         "7",
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, "START WORKOUT")
	assert.Contains(t, out, "Workout: Push")
	assert.Contains(t, out, "Notes: deload week")
	assert.Contains(t, out, "1. Bench Press")
	assert.Contains(t, out, "Target: 3 x 5 (@8.0 RPE)")
}

func TestWorkoutViewNotFound(t *testing.T) {
	v := &WorkoutView{
		Controller: newController(t, &stubRemote{items: sample}),
		Title:      "Edit Workout",
		ID:         "99",
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Planned workout 99 not found")
}

func TestLoginViewThroughRouter(t *testing.T) {
	store := session.NewStore()
	r := router.New(store, router.PathPlannedWorkouts)
	defer r.Close()
	r.Handle(router.RouteLogin, router.PathLogin, false, func(router.Params) router.View { return LoginView{} })
	r.Handle(router.RoutePlannedWorkouts, router.PathPlannedWorkouts, true, func(router.Params) router.View {
		t.Fatal("protected view rendered while logged out")
		return nil
	})

	var buf bytes.Buffer
	require.NoError(t, r.Open(context.Background(), router.PathPlannedWorkouts, &buf))
	assert.Contains(t, buf.String(), "You are not logged in.")
}
