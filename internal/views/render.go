// Package views draws each route to the terminal.
package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"

	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/utils"
	"github.com/misterclayt0n/lazaro-planner/internal/workouts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

const ruleWidth = 60

func header(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", green(strings.ToUpper(title)))
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

// DrawErrors prints the error summary, one message per line.
func DrawErrors(w io.Writer, msgs []string) {
	for _, msg := range msgs {
		fmt.Fprintf(w, "%s %s\n", red("✗"), msg)
	}
}

// DrawPlannedWorkouts prints the list as the planned-workouts view shows it.
func DrawPlannedWorkouts(w io.Writer, st workouts.State, loc *time.Location) {
	header(w, "Planned Workouts")

	if st.Filter != "" {
		fmt.Fprintf(w, "%s: %s\n", cyan("Filter"), st.Filter)
	}
	if len(st.WorkoutNames) > 0 {
		fmt.Fprintf(w, "%s: %s\n", cyan("Workouts"), strings.Join(st.WorkoutNames, ", "))
	}
	fmt.Fprintln(w, faint("Run `lazaro start-workout ID` to start a workout."))

	if st.HasError() {
		fmt.Fprintln(w)
		DrawErrors(w, st.Error)
	}
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))

	// An empty collection reads differently from a filter with no matches.
	if len(st.Items) == 0 {
		fmt.Fprintln(w, "No planned workouts found")
		return
	}

	for i, pw := range st.Visible() {
		name := pw.Name()
		if !pw.HasName() {
			name = faint("(unnamed)")
		}
		fmt.Fprintf(w, "%d. %s %s\n", i+1, name, faint("[id "+pw.ID.String()+"]"))
		fmt.Fprintf(w, "   %s: %s\n", yellow("Planned"), utils.FormatPlannedDate(pw.PlannedDate, loc))
	}
}

// DrawWorkoutNames prints the filter vocabulary, one per line.
func DrawWorkoutNames(w io.Writer, st workouts.State) {
	for _, name := range st.WorkoutNames {
		fmt.Fprintln(w, name)
	}
}

type stateJSON struct {
	Items        []models.PlannedWorkout `json:"items"`
	WorkoutNames []string                `json:"workoutNames"`
	Filter       string                  `json:"filter,omitempty"`
	Error        []string                `json:"error,omitempty"`
}

// WriteJSON writes the visible part of the state as indented JSON.
func WriteJSON(w io.Writer, st workouts.State) error {
	visible := st.Visible()
	if visible == nil {
		visible = []models.PlannedWorkout{}
	}
	names := st.WorkoutNames
	if names == nil {
		names = []string{}
	}

	out, err := json.MarshalIndent(stateJSON{
		Items:        visible,
		WorkoutNames: names,
		Filter:       st.Filter,
		Error:        st.Error,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

// drawWorkoutDetail prints one workout with its exercises.
func drawWorkoutDetail(w io.Writer, pw models.PlannedWorkout, loc *time.Location) {
	name := pw.Name()
	if !pw.HasName() {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "%s: %s\n", cyan("Workout"), name)
	fmt.Fprintf(w, "%s: %s\n", cyan("Planned"), utils.FormatPlannedDate(pw.PlannedDate, loc))
	if pw.Notes != "" {
		fmt.Fprintf(w, "%s: %s\n", cyan("Notes"), pw.Notes)
	}
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))

	for i, ex := range pw.Exercises {
		fmt.Fprintf(w, "%d. %s\n", i+1, ex.ExerciseName)

		target := fmt.Sprintf("%d x %s", ex.Sets, ex.Reps)
		if ex.TargetRPE != nil {
			target += fmt.Sprintf(" (@%.1f RPE)", *ex.TargetRPE)
		}
		fmt.Fprintf(w, "   %s: %s\n", cyan("Target"), target)
		if ex.Notes != "" {
			fmt.Fprintf(w, "   %s: %s\n", cyan("Notes"), ex.Notes)
		}
	}
}
