package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/lazaro-planner/internal/config"
)

const statusWidth = 40

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session, server and token storage in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		current := app.store.Current()

		boxTitle(w, "STATUS")

		path := configFile
		if path == "" {
			path, _ = config.GetConfigPath()
		}
		metric(w, "Config file", path)
		metric(w, "Server", app.cfg.Server.URL)
		metric(w, "Token storage", app.tokenStorage())

		if !current.IsAuthenticated {
			metric(w, "Session", color.New(color.FgRed).Sprint("logged out"))
			fmt.Fprintln(w)
			return nil
		}

		metric(w, "Session", color.New(color.FgGreen).Sprint("logged in"))
		if current.ExpiresAt.IsZero() {
			metric(w, "Expires", "unknown")
		} else {
			left := time.Until(current.ExpiresAt).Round(time.Minute)
			metric(w, "Expires", fmt.Sprintf("%s (in %s)", current.ExpiresAt.In(app.cfg.Display.Location()).Format(time.RFC1123), left))
		}
		fmt.Fprintln(w)

		return nil
	},
}

// tokenStorage describes where the session token is kept.
func (a *application) tokenStorage() string {
	switch {
	case a.storage != nil:
		return "database"
	case a.sessionFile == nil:
		return "none"
	case a.sessionFile.Exists():
		return a.sessionFile.Path
	default:
		return a.sessionFile.Path + " (not created yet)"
	}
}

// boxTitle draws title centred in a double-line box.
func boxTitle(w io.Writer, title string) {
	style := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", statusWidth)

	pad := max(statusWidth-len(title), 0)
	left := pad / 2
	inner := strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left)

	fmt.Fprintln(w, style("╔"+border+"╗"))
	fmt.Fprintln(w, style("║"+inner+"║"))
	fmt.Fprintln(w, style("╚"+border+"╝"))
}

func metric(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s: %v\n", color.New(color.FgYellow, color.Bold).Sprint(label), value)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
