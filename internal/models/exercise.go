package models

// PlannedExercise is one line of a planned workout as the server describes it.
type PlannedExercise struct {
	ExerciseName string   `json:"exerciseName"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	TargetRPE    *float32 `json:"targetRpe,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}
