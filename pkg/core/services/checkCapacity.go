package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
)

// CapacityReport is the result of a capacity check. Err holds the refusal when the
// distribution could not run, so callers can still print the numbers.
type CapacityReport struct {
	Feasibility allocator.Feasibility
	Err         error
}

// CheckCapacity reports whether the current juries can cover the eligible films without
// computing a distribution. Infeasibility is reported in the CapacityReport, not as an error;
// the returned error is reserved for store failures and invalid parameters.
func CheckCapacity(ctx context.Context, store SnapshotStore, params DistributeParams, logger *zap.Logger) (*CapacityReport, error) {
	snapshot, err := store.LoadSnapshot(ctx, params.EligibleStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	films := toAllocatorFilms(snapshot.Films)
	juries := toAllocatorJuries(snapshot.Juries)
	existing := buildExistingRatings(snapshot.Ratings)

	feasibility, err := allocator.CheckFeasibility(films, juries, params.Limits, existing)
	if err != nil && !isCoverageRefusal(err) {
		return nil, fmt.Errorf("failed to check capacity: %w", err)
	}

	logger.Debug("Capacity checked",
		zap.Int("total_needed", feasibility.TotalNeeded),
		zap.Int("max_capacity", feasibility.MaxCapacity),
		zap.Bool("feasible", err == nil))

	return &CapacityReport{Feasibility: feasibility, Err: err}, nil
}
