package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/router"
)

var (
	username string
	password string
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the workout service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.store.Current().IsAuthenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Already logged in. Run `lazaro logout` first to switch accounts.")
			return nil
		}

		if err := app.router.Navigate(router.PathLogin); err != nil {
			return err
		}

		creds, err := readCredentials()
		if err != nil {
			return err
		}

		token, err := app.client.Login(cmd.Context(), creds)
		if err != nil {
			return fmt.Errorf("login request failed: %w", err)
		}

		if _, err := app.store.Login(token); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged in as %s\n", creds.Username)
		return app.router.Open(cmd.Context(), router.PathRoot, cmd.OutOrStdout())
	},
}

// readCredentials fills in whatever the flags did not provide by prompting.
// The password is read without echo.
func readCredentials() (models.Credentials, error) {
	creds := models.Credentials{Username: username, Password: password}

	if creds.Username == "" {
		fmt.Print("Enter username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return creds, fmt.Errorf("error reading username: %w", err)
		}
		creds.Username = strings.TrimSpace(line)
	}

	if creds.Password == "" {
		fmt.Print("Enter password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return creds, fmt.Errorf("error reading password: %w", err)
		}
		creds.Password = string(raw)
	}

	if err := validate.Struct(creds); err != nil {
		return creds, fmt.Errorf("username and password are required")
	}
	return creds, nil
}

func init() {
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	loginCmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}
