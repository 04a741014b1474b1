package router

import (
	"net/url"
	"strings"
)

const (
	PathRoot            = "/"
	PathLogin           = "/login"
	PathRegister        = "/register"
	PathPlannedWorkouts = "/planned-workouts"
	PathAddWorkout      = "/add-workout"
	PathEditWorkout     = "/edit-workout/{id}"
	PathStartWorkout    = "/start-workout/{id}"
)

// Route names.
const (
	RouteRoot            = "root"
	RouteLogin           = "login"
	RouteRegister        = "register"
	RoutePlannedWorkouts = "planned-workouts"
	RouteAddWorkout      = "add-workout"
	RouteEditWorkout     = "edit-workout"
	RouteStartWorkout    = "start-workout"
)

func EditWorkoutPath(id string) string {
	return withID(PathEditWorkout, id)
}

func StartWorkoutPath(id string) string {
	return withID(PathStartWorkout, id)
}

func withID(pattern, id string) string {
	return strings.Replace(pattern, "{id}", url.PathEscape(id), 1)
}
