package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/router"
	"github.com/misterclayt0n/lazaro-planner/internal/views"
	"github.com/misterclayt0n/lazaro-planner/internal/workouts"
)

var deleteWorkoutCmd = &cobra.Command{
	Use:   "delete-workout [id]",
	Short: "Delete a planned workout and show the refreshed list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		id := models.WorkoutID(args[0])

		// Deleting happens from the list, so it goes through the same gate.
		if err := app.router.Navigate(router.PathPlannedWorkouts); err != nil {
			return err
		}
		if app.router.Current().Route != router.RoutePlannedWorkouts {
			return renderBounce(cmd)
		}

		loc := app.cfg.Display.Location()
		if err := app.controller.FetchAll(ctx); err != nil {
			if errors.Is(err, workouts.ErrSessionInvalid) {
				return renderBounce(cmd)
			}
			// Without the list there is nothing to delete from.
			views.DrawPlannedWorkouts(out, app.controller.State(), loc)
			return ErrAlreadyHandled
		}

		err := app.controller.RequestDelete(ctx, id)
		switch {
		case errors.Is(err, workouts.ErrSessionInvalid):
			return renderBounce(cmd)
		case errors.Is(err, workouts.ErrUnknownWorkout):
			return fmt.Errorf("Planned workout %s not found", id)
		case err == nil:
			fmt.Fprintf(out, "✅ Planned workout %s deleted successfully\n", id)
		}

		views.DrawPlannedWorkouts(out, app.controller.State(), loc)
		return app.listOutcome()
	},
}

// renderBounce shows the view the gate sent us to and fails the command.
func renderBounce(cmd *cobra.Command) error {
	if err := app.router.RenderCurrent(cmd.Context(), cmd.OutOrStdout()); err != nil {
		return err
	}
	return ErrAlreadyHandled
}

func init() {
	rootCmd.AddCommand(deleteWorkoutCmd)
}
