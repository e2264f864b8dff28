package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/db"
)

// JuryLoadStore defines the database operations needed for reporting jury load
type JuryLoadStore interface {
	GetJuryMembers(ctx context.Context) ([]db.JuryMember, error)
	GetAssignments(ctx context.Context) ([]db.Assignment, error)
}

// JuryLoad computes per-jury load of the persisted assignment table.
// Assignments held by members no longer on the roster are reported with an empty name.
func JuryLoad(ctx context.Context, store JuryLoadStore, logger *zap.Logger) (allocator.Stats, error) {
	var (
		members     []db.JuryMember
		assignments []db.Assignment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = store.GetJuryMembers(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch jury members: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		assignments, err = store.GetAssignments(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch assignments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return allocator.Stats{}, err
	}

	stats := allocator.ComputeStats(toAllocatorJuries(members), toAllocatorAssignments(assignments))

	logger.Debug("Jury load computed",
		zap.Int("juries", len(stats.Loads)),
		zap.Int("assignments", stats.Total))

	return stats, nil
}
