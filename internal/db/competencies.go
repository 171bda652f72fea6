package db

import (
	"context"
	"fmt"

	"github.com/jordan/interview-copilot/internal/types"
)

// ListCompetencies returns every competency row, sorted by name.
func (db *DB) ListCompetencies(ctx context.Context) ([]types.Competency, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, description FROM competencies ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list competencies: %w", err)
	}
	defer rows.Close()

	var competencies []types.Competency
	for rows.Next() {
		var c types.Competency
		if err := rows.Scan(&c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan competency: %w", err)
		}
		competencies = append(competencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read competencies: %w", err)
	}

	return competencies, nil
}
