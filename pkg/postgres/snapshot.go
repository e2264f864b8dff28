package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/festival-jury/pkg/db"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadSnapshot reads eligible films, jury members and ratings inside a single
// repeatable-read transaction so all three reflect the same point in time.
func (d *DB) LoadSnapshot(ctx context.Context, statuses []string) (*db.Snapshot, error) {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	films, err := queryFilms(ctx, tx, statuses)
	if err != nil {
		return nil, err
	}

	juries, err := queryJuryMembers(ctx, tx)
	if err != nil {
		return nil, err
	}

	ratings, err := queryRatings(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &db.Snapshot{Films: films, Juries: juries, Ratings: ratings}, nil
}
