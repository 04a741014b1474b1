package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/misterclayt0n/lazaro-planner/internal/config"
	"github.com/misterclayt0n/lazaro-planner/internal/storage"
	"github.com/spf13/cobra"
)

var (
	initServerURL string // Server URL written to the new config.
	initDatabase  string // Optional libsql connection string for the token table.
	initForce     bool   // Overwrite an existing config file.
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and create the token table when a database is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if path == "" {
			var err error
			path, err = config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("Failed to locate config file: %w", err)
			}
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("Config file %s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("Failed to check config file: %w", err)
		}

		cfg := config.Default()
		if initServerURL != "" {
			cfg.Server.URL = initServerURL
		}
		cfg.DB.ConnectionString = initDatabase
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := cfg.WriteConfig(path); err != nil {
			return fmt.Errorf("Failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Config written to %s\n", path)

		if cfg.DB.ConnectionString == "" {
			return nil
		}

		st, err := storage.NewStorage(cfg.DB.ConnectionString)
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		defer st.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Database initialized successfully")
		return nil
	},
}

func init() {
	initSetupCmd.Flags().StringVar(&initServerURL, "server", "", "Workout service URL (default "+config.DefaultServerURL+")")
	initSetupCmd.Flags().StringVar(&initDatabase, "database", "", "libsql connection string used to keep the session token")
	initSetupCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initSetupCmd)
}
