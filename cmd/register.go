package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/lazaro-planner/internal/router"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the workout service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.router.Navigate(router.PathRegister); err != nil {
			return err
		}

		creds, err := readCredentials()
		if err != nil {
			return err
		}

		if err := app.client.Register(cmd.Context(), creds); err != nil {
			return fmt.Errorf("register request failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Account %s created. Run `lazaro login -u %s` to sign in.\n", creds.Username, creds.Username)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	registerCmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}
