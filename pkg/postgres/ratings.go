package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/festival-jury/pkg/db"
)

// queryRatings retrieves every rating record
func queryRatings(ctx context.Context, q querier) ([]db.Rating, error) {
	rows, err := q.Query(ctx, `
		SELECT film_id, jury_id, score, created_at
		FROM rating
		ORDER BY film_id, jury_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []db.Rating
	for rows.Next() {
		var r db.Rating
		if err := rows.Scan(&r.FilmID, &r.JuryID, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

// GetRatingAggregates returns one row per film with the given statuses.
// Films without ratings get a NULL average and a zero count.
func (d *DB) GetRatingAggregates(ctx context.Context, statuses []string) ([]db.RatingAggregate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT f.id, f.title, AVG(r.score)::DOUBLE PRECISION, COUNT(r.film_id), f.submitted_at
		FROM film f
		LEFT JOIN rating r ON r.film_id = f.id
		WHERE f.status = ANY($1)
		GROUP BY f.id, f.title, f.submitted_at
		ORDER BY f.id
	`, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating aggregates: %w", err)
	}
	defer rows.Close()

	var aggregates []db.RatingAggregate
	for rows.Next() {
		var a db.RatingAggregate
		if err := rows.Scan(&a.FilmID, &a.Title, &a.Average, &a.Count, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating aggregate: %w", err)
		}
		aggregates = append(aggregates, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating aggregates: %w", err)
	}

	return aggregates, nil
}
