package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/festival-jury/pkg/db"
)

// queryFilms retrieves films whose status is one of statuses, ordered by ID
func queryFilms(ctx context.Context, q querier, statuses []string) ([]db.Film, error) {
	rows, err := q.Query(ctx, `
		SELECT id, title, status, submitted_at
		FROM film
		WHERE status = ANY($1)
		ORDER BY id
	`, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	defer rows.Close()

	var films []db.Film
	for rows.Next() {
		var f db.Film
		if err := rows.Scan(&f.ID, &f.Title, &f.Status, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		films = append(films, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating films: %w", err)
	}

	return films, nil
}
