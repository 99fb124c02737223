package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// BlacklistRepository implements port.BlacklistRepository using PostgreSQL.
type BlacklistRepository struct {
	pool *pgxpool.Pool
}

// NewBlacklistRepository creates a new PostgreSQL-backed blacklist repository.
func NewBlacklistRepository(pool *pgxpool.Pool) *BlacklistRepository {
	return &BlacklistRepository{pool: pool}
}

// FindValues returns existing entries of the given type keyed by value.
func (r *BlacklistRepository) FindValues(ctx context.Context, entryType string, values []string) (map[string]*model.BlacklistEntry, error) {
	found := make(map[string]*model.BlacklistEntry, len(values))
	if len(values) == 0 {
		return found, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_type, value, reason, times_detected, first_seen_at, last_seen_at
		FROM fraud_blacklist
		WHERE entry_type = $1 AND value = ANY($2)
	`, entryType, values)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry model.BlacklistEntry
		err := rows.Scan(
			&entry.ID, &entry.EntryType, &entry.Value, &entry.Reason,
			&entry.TimesDetected, &entry.FirstSeenAt, &entry.LastSeenAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		found[entry.Value] = &entry
	}
	return found, rows.Err()
}

// Upsert inserts new entries or bumps times_detected and last_seen_at on
// values already present.
func (r *BlacklistRepository) Upsert(ctx context.Context, entries []*model.BlacklistEntry) error {
	if len(entries) == 0 {
		return nil
	}

	pgBatch := &pgx.Batch{}
	for _, entry := range entries {
		pgBatch.Queue(`
			INSERT INTO fraud_blacklist (
				id, entry_type, value, reason, times_detected, first_seen_at, last_seen_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (entry_type, value) DO UPDATE SET
				times_detected = fraud_blacklist.times_detected + 1,
				last_seen_at = EXCLUDED.last_seen_at
		`,
			entry.ID, entry.EntryType, entry.Value, entry.Reason,
			entry.TimesDetected, entry.FirstSeenAt, entry.LastSeenAt,
		)
	}

	results := r.pool.SendBatch(ctx, pgBatch)
	defer results.Close()
	for i := 0; i < pgBatch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert blacklist entry: %w", err)
		}
	}
	return nil
}
