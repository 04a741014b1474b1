package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.store.Current().IsAuthenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}

		app.store.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
