package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// WorkoutID identifies a planned workout. The server may send it as a JSON
// number or a string; both decode to the same text form.
type WorkoutID string

func (id *WorkoutID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid workout id %s: %w", data, err)
		}
		*id = WorkoutID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid workout id %s: %w", data, err)
	}
	*id = WorkoutID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as numbers. Ids whose text is not the
// canonical form of the number ("007", "+5") stay strings.
func (id WorkoutID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id WorkoutID) String() string {
	return string(id)
}

type PlannedWorkout struct {
	ID          WorkoutID         `json:"id"`
	WorkoutName *string           `json:"workoutName"`
	PlannedDate string            `json:"plannedDate"`
	Notes       string            `json:"notes,omitempty"`
	Exercises   []PlannedExercise `json:"plannedExercises,omitempty"`
}

// Name returns the workout name, or "" when the server sent none.
func (w PlannedWorkout) Name() string {
	if w.WorkoutName == nil {
		return ""
	}
	return *w.WorkoutName
}

// HasName reports whether the server sent a name for the workout.
func (w PlannedWorkout) HasName() bool {
	return w.WorkoutName != nil
}
