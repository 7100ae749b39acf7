package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Search Run Methods
// -----------------------------------------------------------------------------

const searchRunColumns = `id, flag, parent_company, position, city, state, country, skills,
	status, result_count, error_message, created_at, completed_at`

// CreateSearchRun records a new running search and returns its ID
func (db *DB) CreateSearchRun(ctx context.Context, input *SearchRunInput) (uuid.UUID, error) {
	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO search_runs (id, flag, parent_company, position, city, state, country, skills, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, input.Flag, input.ParentCompany, input.Position, input.City, input.State, input.Country,
		skills, RunStatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create search run: %w", err)
	}
	return id, nil
}

// CompleteSearchRun marks a run as completed with its result count, or as
// failed when runErr is non-nil.
func (db *DB) CompleteSearchRun(ctx context.Context, runID uuid.UUID, resultCount int, runErr error) error {
	status := RunStatusCompleted
	var message *string
	if runErr != nil {
		status = RunStatusFailed
		text := runErr.Error()
		message = &text
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE search_runs
		 SET status = $1, result_count = $2, error_message = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, resultCount, message, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete search run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("search run %s not found", runID)
	}
	return nil
}

// GetSearchRun retrieves a search run by ID. A missing run returns nil, nil.
func (db *DB) GetSearchRun(ctx context.Context, runID uuid.UUID) (*SearchRun, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+searchRunColumns+` FROM search_runs WHERE id = $1`,
		runID,
	)
	run, err := scanSearchRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get search run: %w", err)
	}
	return run, nil
}

// ListSearchRuns retrieves the most recent search runs
func (db *DB) ListSearchRuns(ctx context.Context, limit int) ([]SearchRun, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+searchRunColumns+` FROM search_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list search runs: %w", err)
	}
	defer rows.Close()

	runs := make([]SearchRun, 0)
	for rows.Next() {
		run, err := scanSearchRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list search runs: %w", err)
	}
	return runs, nil
}

func scanSearchRun(row pgx.Row) (*SearchRun, error) {
	var run SearchRun
	err := row.Scan(&run.ID, &run.Flag, &run.ParentCompany, &run.Position, &run.City, &run.State,
		&run.Country, &run.Skills, &run.Status, &run.ResultCount, &run.ErrorMessage,
		&run.CreatedAt, &run.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
