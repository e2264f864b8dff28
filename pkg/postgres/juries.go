package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/festival-jury/pkg/db"
)

// GetJuryMembers retrieves all jury members, ordered by ID
func (d *DB) GetJuryMembers(ctx context.Context) ([]db.JuryMember, error) {
	return queryJuryMembers(ctx, d.pool)
}

func queryJuryMembers(ctx context.Context, q querier) ([]db.JuryMember, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, email
		FROM jury_member
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jury members: %w", err)
	}
	defer rows.Close()

	var members []db.JuryMember
	for rows.Next() {
		var m db.JuryMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan jury member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jury members: %w", err)
	}

	return members, nil
}
