package db

import "context"

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	LoadSnapshot(ctx context.Context, statuses []string) (*Snapshot, error)
	GetJuryMembers(ctx context.Context) ([]JuryMember, error)
	GetRatingAggregates(ctx context.Context, statuses []string) ([]RatingAggregate, error)
	GetAssignments(ctx context.Context) ([]Assignment, error)
	ReplaceAssignments(ctx context.Context, assignments []Assignment) error
}
