package cmd

import (
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/lazaro-planner/internal/router"
	"github.com/misterclayt0n/lazaro-planner/internal/views"
)

var (
	workoutFilter string // Optional workout name filter.
	namesOnly     bool
	jsonOutput    bool
)

var workoutsCmd = &cobra.Command{
	Use:     "workouts",
	Aliases: []string{"ls"},
	Short:   "List planned workouts (optionally filter by workout name)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.listOptions = views.ListOptions{
			Filter:    workoutFilter,
			NamesOnly: namesOnly,
			JSON:      jsonOutput,
		}

		if err := app.router.Open(cmd.Context(), router.PathPlannedWorkouts, cmd.OutOrStdout()); err != nil {
			return err
		}
		return app.listOutcome()
	},
}

// listOutcome turns an error shown in the list, or a bounce to the login
// view, into a non-zero exit.
func (a *application) listOutcome() error {
	if a.router.Current().Route != router.RoutePlannedWorkouts {
		return ErrAlreadyHandled
	}
	if a.controller.State().HasError() {
		return ErrAlreadyHandled
	}
	return nil
}

func init() {
	workoutsCmd.Flags().StringVarP(&workoutFilter, "filter", "f", "", "Only show workouts with this name")
	workoutsCmd.Flags().BoolVar(&namesOnly, "names", false, "Print the distinct workout names only")
	workoutsCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.AddCommand(workoutsCmd)
}
