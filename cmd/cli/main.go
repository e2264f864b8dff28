package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/cmd/cli/commands"
	"github.com/jakechorley/festival-jury/internal/config"
	"github.com/jakechorley/festival-jury/pkg/metrics"
	"github.com/jakechorley/festival-jury/pkg/postgres"
	"github.com/jakechorley/festival-jury/pkg/utils/logging"
)

var (
	env      string
	app      = &commands.AppContext{}
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Festival Jury CLI - Distribute films to jury members and rank them",
		Long:  `A CLI tool for assigning submitted films to jury members for rating and for ranking films by their ratings.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
		SilenceUsage: true,
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.PreviewDistributionCmd(app))
	rootCmd.AddCommand(commands.DistributeCmd(app))
	rootCmd.AddCommand(commands.CheckCapacityCmd(app))
	rootCmd.AddCommand(commands.RankingCmd(app))
	rootCmd.AddCommand(commands.JuryLoadCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRun is skipped when RunE fails
		shutdown()
		os.Exit(1)
	}
}

// initApp sets up config, logger, metrics, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded",
		zap.Int("min_ratings_per_film", app.Cfg.MinRatingsPerFilm),
		zap.Int("max_films_per_jury", app.Cfg.MaxFilmsPerJury),
		zap.Strings("eligible_statuses", app.Cfg.EligibleStatuses))

	app.Metrics = metrics.NewManager()

	// Connect to database
	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.Database = database
	app.Migrator = database
	app.Logger.Info("Database initialized successfully")

	return nil
}

// shutdown writes run metrics, closes the database, and flushes the logger.
// Safe to call more than once and after a partial initApp.
func shutdown() {
	if app.Metrics != nil && app.Cfg != nil && app.Cfg.MetricsTextfile != "" {
		if err := app.Metrics.WriteTextfile(app.Cfg.MetricsTextfile); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to write metrics textfile", zap.String("path", app.Cfg.MetricsTextfile), zap.Error(err))
		}
	}

	if database != nil {
		database.Close()
		database = nil
	}

	if app.Logger != nil {
		app.Logger.Sync()
	}
	app.Metrics = nil
}
