package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingo-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := app.NewLogger(cfg.Log)

		cfg.Database.AutoMigrate = true
		store, err := app.OpenStore(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		store.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.Database.Driver)
		return nil
	},
}
