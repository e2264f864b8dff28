package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/internal/config"
	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/core/services"
	"github.com/jakechorley/festival-jury/pkg/db"
	"github.com/jakechorley/festival-jury/pkg/metrics"
)

// Migrator applies pending schema migrations
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Migrator Migrator
	Logger   *zap.Logger
	Metrics  *metrics.Manager
	Ctx      context.Context
}

// limitFlags lets a command override the configured distribution limits
type limitFlags struct {
	minRatings int
	maxPerJury int
}

func (f *limitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minRatings, "min-ratings", 0, "Minimum ratings per film (overrides config)")
	cmd.Flags().IntVar(&f.maxPerJury, "max-per-jury", 0, "Maximum new films per jury member (overrides config)")
}

// params returns the configured limits with any flags the user set applied on top
func (f *limitFlags) params(cmd *cobra.Command, cfg *config.Config) services.DistributeParams {
	limits := allocator.Params{
		MinRatingsPerFilm: cfg.MinRatingsPerFilm,
		MaxFilmsPerJury:   cfg.MaxFilmsPerJury,
	}
	if cmd.Flags().Changed("min-ratings") {
		limits.MinRatingsPerFilm = f.minRatings
	}
	if cmd.Flags().Changed("max-per-jury") {
		limits.MaxFilmsPerJury = f.maxPerJury
	}

	return services.DistributeParams{
		Limits:           limits,
		EligibleStatuses: cfg.EligibleStatuses,
	}
}
