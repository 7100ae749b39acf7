package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Profile Cache Methods
// -----------------------------------------------------------------------------

// GetFreshProfile returns the cached profile document for username if it was
// stored less than maxAge ago. A miss returns nil, nil.
func (db *DB) GetFreshProfile(ctx context.Context, username string, maxAge time.Duration) ([]byte, error) {
	var document []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM profile_cache
		 WHERE username = $1 AND fetched_at > $2`,
		username, time.Now().Add(-maxAge),
	).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached profile %s: %w", username, err)
	}
	return document, nil
}

// UpsertProfile stores the profile document for username, replacing any older copy.
func (db *DB) UpsertProfile(ctx context.Context, username string, document []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profile_cache (username, document, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (username) DO UPDATE SET document = $2, fetched_at = NOW()`,
		username, document,
	)
	if err != nil {
		return fmt.Errorf("failed to cache profile %s: %w", username, err)
	}
	return nil
}

// PurgeStaleProfiles deletes cached profiles older than maxAge and returns how many were removed.
func (db *DB) PurgeStaleProfiles(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM profile_cache WHERE fetched_at <= $1`,
		time.Now().Add(-maxAge),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge profile cache: %w", err)
	}
	return tag.RowsAffected(), nil
}
