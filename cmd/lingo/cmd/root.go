package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingo-backend/internal/app"
	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

var (
	configPath string
	asLearner  string
)

var rootCmd = &cobra.Command{
	Use:           "lingo",
	Short:         "lingo vocabulary service",
	Long:          "Acquire dictionary entries from several sources, serve them to learners, and manage the catalog.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&asLearner, "as", "", "act as this learner id instead of the admin")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// withServices loads the configuration, wires the service layer, and runs fn
// with a caller context: the admin by default, or the learner named by --as.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *app.Services) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, err := callerContext(cmd.Context(), asLearner)
	if err != nil {
		return err
	}

	svc, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		logger.Error("wire services", slog.String("error", err.Error()))
		return err
	}
	defer svc.Close()

	return fn(ctx, svc)
}

func callerContext(ctx context.Context, learner string) (context.Context, error) {
	if learner == "" {
		return ctxutil.WithRole(ctx, domain.RoleAdmin.String()), nil
	}
	id, err := uuid.Parse(learner)
	if err != nil {
		return nil, fmt.Errorf("--as: %w", err)
	}
	ctx = ctxutil.WithLearnerID(ctx, id)
	return ctxutil.WithRole(ctx, domain.RoleUser.String()), nil
}

func printInsert(cmd *cobra.Command, r domain.InsertResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, duplicates %d, skipped %d\n", r.Inserted, r.Duplicates, r.Skipped)
}

func printEntry(cmd *cobra.Command, e domain.Entry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s [%s] %s\n", e.Title(), e.Level, e.TopicOrDefault())
	if e.Definition != "" {
		fmt.Fprintf(out, "  %s\n", e.Definition)
	}
	if e.Example != "" {
		fmt.Fprintf(out, "  e.g. %s\n", e.Example)
	}
	if e.Pronunciation != "" {
		fmt.Fprintf(out, "  /%s/\n", e.Pronunciation)
	}
}
