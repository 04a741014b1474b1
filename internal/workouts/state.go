package workouts

import "github.com/misterclayt0n/lazaro-planner/internal/models"

// State is what the planned-workouts view renders.
type State struct {
	Items        []models.PlannedWorkout
	WorkoutNames []string // Distinct non-absent names, first appearance first.
	Filter       string   // "" shows every item.
	Loading      bool
	Error        []string // nil when there is nothing to show.
}

// Visible returns the items matching the filter, in server order.
func (s State) Visible() []models.PlannedWorkout {
	return filterByName(s.Items, s.Filter)
}

func (s State) HasError() bool {
	return len(s.Error) > 0
}

func (s State) clone() State {
	c := s
	c.Items = append([]models.PlannedWorkout(nil), s.Items...)
	c.WorkoutNames = append([]string(nil), s.WorkoutNames...)
	c.Error = append([]string(nil), s.Error...)
	return c
}

func distinctNames(items []models.PlannedWorkout) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, w := range items {
		if !w.HasName() || seen[w.Name()] {
			continue
		}
		seen[w.Name()] = true
		names = append(names, w.Name())
	}
	return names
}

func filterByName(items []models.PlannedWorkout, name string) []models.PlannedWorkout {
	if name == "" {
		return append([]models.PlannedWorkout(nil), items...)
	}
	var out []models.PlannedWorkout
	for _, w := range items {
		if w.HasName() && w.Name() == name {
			out = append(out, w)
		}
	}
	return out
}
