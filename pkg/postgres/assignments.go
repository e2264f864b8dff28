package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/festival-jury/pkg/db"
)

var _ db.Database = (*DB)(nil)

// GetAssignments retrieves the current assignment table
func (d *DB) GetAssignments(ctx context.Context) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::TEXT, run_id::TEXT, film_id, jury_id, assigned_at
		FROM assignment
		ORDER BY film_id, jury_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.RunID, &a.FilmID, &a.JuryID, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// ReplaceAssignments swaps the whole assignment table for the given records in one transaction,
// so readers never see a partially replaced distribution.
func (d *DB) ReplaceAssignments(ctx context.Context, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM assignment`); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	if len(assignments) > 0 {
		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"assignment"},
			[]string{"id", "run_id", "film_id", "jury_id", "assigned_at"},
			pgx.CopyFromSlice(len(assignments), func(i int) ([]any, error) {
				a := assignments[i]
				id, err := uuid.Parse(a.ID)
				if err != nil {
					return nil, fmt.Errorf("invalid assignment id %q: %w", a.ID, err)
				}
				runID, err := uuid.Parse(a.RunID)
				if err != nil {
					return nil, fmt.Errorf("invalid run id %q: %w", a.RunID, err)
				}
				return []any{id, runID, a.FilmID, a.JuryID, a.AssignedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
