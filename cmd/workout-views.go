package cmd

import (
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/router"
)

var addWorkoutCmd = &cobra.Command{
	Use:   "add-workout",
	Short: "Open the form for planning a new workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return openRequested(cmd, app.controller.RequestCreate())
	},
}

var editWorkoutCmd = &cobra.Command{
	Use:   "edit-workout [id]",
	Short: "Open a planned workout for editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return openRequested(cmd, app.controller.RequestEdit(models.WorkoutID(args[0])))
	},
}

var startWorkoutCmd = &cobra.Command{
	Use:   "start-workout [id]",
	Short: "Start a planned workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return openRequested(cmd, app.controller.RequestStart(models.WorkoutID(args[0])))
	},
}

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open any view by path, e.g. /planned-workouts or /start-workout/3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return openRequested(cmd, app.router.Navigate(args[0]))
	},
}

// openRequested renders wherever the navigation request (after the gate)
// ended up. Landing on login means the session was missing.
func openRequested(cmd *cobra.Command, navErr error) error {
	if navErr != nil {
		return navErr
	}

	requested := app.router.Current()
	if err := app.router.RenderCurrent(cmd.Context(), cmd.OutOrStdout()); err != nil {
		return err
	}
	if requested.Requested != router.PathLogin && app.router.Current().Route == router.RouteLogin {
		return ErrAlreadyHandled
	}
	return nil
}

func init() {
	rootCmd.AddCommand(addWorkoutCmd)
	rootCmd.AddCommand(editWorkoutCmd)
	rootCmd.AddCommand(startWorkoutCmd)
	rootCmd.AddCommand(openCmd)
}
