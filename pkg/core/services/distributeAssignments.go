package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/db"
	"github.com/jakechorley/festival-jury/pkg/metrics"
)

// SnapshotStore reads the state a distribution is computed from
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, statuses []string) (*db.Snapshot, error)
}

// DistributeStore defines the database operations needed for distributing assignments
type DistributeStore interface {
	SnapshotStore
	ReplaceAssignments(ctx context.Context, assignments []db.Assignment) error
}

// DistributionRecorder receives the outcome of each distribution run
type DistributionRecorder interface {
	ObserveDistribution(mode string, result *allocator.Result)
	ObserveDistributionFailure(mode string, feasibility allocator.Feasibility, err error)
}

// DistributeParams controls which films are eligible and the per-film / per-jury limits
type DistributeParams struct {
	Limits           allocator.Params
	EligibleStatuses []string
}

// DistributeResult contains the computed distribution and what was (or would be) persisted
type DistributeResult struct {
	RunID     string
	Committed bool

	Films  []db.Film
	Juries []db.JuryMember

	Result  *allocator.Result
	Records []db.Assignment

	titles map[int64]string
}

// Title returns the title of a film in the snapshot, or an empty string
func (r *DistributeResult) Title(filmID int64) string {
	return r.titles[filmID]
}

// DistributeAssignments computes a fresh distribution of eligible films across jury members.
// With dryRun set the result is returned without touching the assignment table; otherwise the
// table is replaced wholesale with the new distribution. Both paths run the same computation.
func DistributeAssignments(
	ctx context.Context,
	store DistributeStore,
	params DistributeParams,
	logger *zap.Logger,
	recorder DistributionRecorder,
	dryRun bool,
) (*DistributeResult, error) {
	mode := metrics.ModeCommit
	if dryRun {
		mode = metrics.ModePreview
	}

	logger.Debug("Starting distribution",
		zap.String("mode", mode),
		zap.Int("min_ratings_per_film", params.Limits.MinRatingsPerFilm),
		zap.Int("max_films_per_jury", params.Limits.MaxFilmsPerJury),
		zap.Strings("eligible_statuses", params.EligibleStatuses))

	snapshot, err := store.LoadSnapshot(ctx, params.EligibleStatuses)
	if err != nil {
		recorder.ObserveDistributionFailure(mode, allocator.Feasibility{}, err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	logger.Debug("Loaded snapshot",
		zap.Int("films", len(snapshot.Films)),
		zap.Int("juries", len(snapshot.Juries)),
		zap.Int("ratings", len(snapshot.Ratings)))

	films := toAllocatorFilms(snapshot.Films)
	juries := toAllocatorJuries(snapshot.Juries)
	existing := buildExistingRatings(snapshot.Ratings)

	feasibility, err := allocator.CheckFeasibility(films, juries, params.Limits, existing)
	if err != nil {
		recorder.ObserveDistributionFailure(mode, feasibility, err)
		logFeasibilityFailure(logger, feasibility, err)
		return nil, fmt.Errorf("failed to distribute assignments: %w", err)
	}

	result, err := allocator.Distribute(films, juries, params.Limits, existing)
	if err != nil {
		recorder.ObserveDistributionFailure(mode, feasibility, err)
		logFeasibilityFailure(logger, feasibility, err)
		return nil, fmt.Errorf("failed to distribute assignments: %w", err)
	}

	if violations := allocator.VerifyDistribution(films, params.Limits, existing, result.Assignments); len(violations) > 0 {
		for _, v := range violations {
			logger.Error("Distribution invariant violated",
				zap.String("invariant", v.Invariant),
				zap.Int64("film_id", v.FilmID),
				zap.Int64("jury_id", v.JuryID),
				zap.String("description", v.Description))
		}
		err := fmt.Errorf("distribution violated %d invariant(s)", len(violations))
		recorder.ObserveDistributionFailure(mode, feasibility, err)
		return nil, err
	}

	runID := uuid.New().String()
	records := buildAssignmentRecords(runID, result.Assignments, time.Now().UTC())

	logger.Info("Distribution computed",
		zap.String("run_id", runID),
		zap.Int("assignments", result.Stats.Total),
		zap.Int("films_needing_coverage", feasibility.FilmsNeedingCoverage),
		zap.Int("min_load", result.Stats.Min),
		zap.Int("max_load", result.Stats.Max),
		zap.Float64("avg_load", result.Stats.Avg))

	distribution := &DistributeResult{
		RunID:   runID,
		Films:   snapshot.Films,
		Juries:  snapshot.Juries,
		Result:  result,
		Records: records,
		titles:  filmTitles(snapshot.Films),
	}

	if dryRun {
		logger.Info("Dry run, assignment table left unchanged")
		recorder.ObserveDistribution(mode, result)
		return distribution, nil
	}

	if err := store.ReplaceAssignments(ctx, records); err != nil {
		recorder.ObserveDistributionFailure(mode, feasibility, err)
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}
	distribution.Committed = true

	logger.Info("Assignment table replaced", zap.String("run_id", runID), zap.Int("rows", len(records)))
	recorder.ObserveDistribution(mode, result)

	return distribution, nil
}

// buildAssignmentRecords turns allocator output into persistable rows sharing one run ID
func buildAssignmentRecords(runID string, assignments []allocator.Assignment, assignedAt time.Time) []db.Assignment {
	records := make([]db.Assignment, len(assignments))
	for i, a := range assignments {
		records[i] = db.Assignment{
			ID:         uuid.New().String(),
			RunID:      runID,
			FilmID:     a.FilmID,
			JuryID:     a.JuryID,
			AssignedAt: assignedAt,
		}
	}
	return records
}

func logFeasibilityFailure(logger *zap.Logger, feasibility allocator.Feasibility, err error) {
	fields := []zap.Field{
		zap.Int("total_needed", feasibility.TotalNeeded),
		zap.Int("max_capacity", feasibility.MaxCapacity),
		zap.Int("jury_count", feasibility.JuryCount),
		zap.Int("max_films_per_jury", feasibility.MaxFilmsPerJury),
		zap.Error(err),
	}

	var noJury *allocator.NoEligibleJuryError
	if errors.As(err, &noJury) {
		fields = append(fields, zap.Int64("film_id", noJury.FilmID))
	}

	logger.Warn("Distribution refused", fields...)
}
