package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannedWorkoutDecode(t *testing.T) {
	body := `[
		{"id": 1, "workoutName": "Leg Day", "plannedDate": "2024-01-01", "coach": "ignored"},
		{"id": "a7f3", "workoutName": null, "plannedDate": "2024-01-02"},
		{"id": 3, "plannedDate": "2024-01-03", "plannedExercises": [{"exerciseName": "Squat", "sets": 5, "reps": "5", "targetRpe": 8}]}
	]`

	var workouts []PlannedWorkout
	require.NoError(t, json.Unmarshal([]byte(body), &workouts))
	require.Len(t, workouts, 3)

	assert.Equal(t, WorkoutID("1"), workouts[0].ID)
	assert.True(t, workouts[0].HasName())
	assert.Equal(t, "Leg Day", workouts[0].Name())

	assert.Equal(t, WorkoutID("a7f3"), workouts[1].ID)
	assert.False(t, workouts[1].HasName())
	assert.Equal(t, "", workouts[1].Name())

	assert.False(t, workouts[2].HasName())
	require.Len(t, workouts[2].Exercises, 1)
	assert.Equal(t, "Squat", workouts[2].Exercises[0].ExerciseName)
	require.NotNil(t, workouts[2].Exercises[0].TargetRPE)
	assert.InDelta(t, 8, *workouts[2].Exercises[0].TargetRPE, 0.001)
}

func TestWorkoutIDMarshal(t *testing.T) {
	out, err := json.Marshal([]WorkoutID{"42", "a7f3"})
	require.NoError(t, err)
	assert.JSONEq(t, `[42, "a7f3"]`, string(out))
}

func TestWorkoutIDMarshalNonCanonicalNumbers(t *testing.T) {
	out, err := json.Marshal([]WorkoutID{"007", "+5", "-3", "0"})
	require.NoError(t, err)
	assert.JSONEq(t, `["007", "+5", -3, 0]`, string(out))

	var back []WorkoutID
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, []WorkoutID{"007", "+5", "-3", "0"}, back)
}

func TestWorkoutIDRejectsObjects(t *testing.T) {
	var id WorkoutID
	assert.Error(t, json.Unmarshal([]byte(`{"id": 1}`), &id))
}
