package drift

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, entries []Entry) error {
	const sql = `
		INSERT INTO normalization_gaps (area, field, reason, aliases, occurrences, first_seen, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (area, field, reason) DO UPDATE SET
			aliases = EXCLUDED.aliases,
			occurrences = normalization_gaps.occurrences + EXCLUDED.occurrences,
			first_seen = LEAST(normalization_gaps.first_seen, EXCLUDED.first_seen),
			last_seen = GREATEST(normalization_gaps.last_seen, EXCLUDED.last_seen)`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(sql, e.Area, e.Field, e.Reason, e.Aliases, e.Occurrences, e.FirstSeen, e.LastSeen)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for i := range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert gap %s.%s: %w", entries[i].Area, entries[i].Field, err)
		}
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	const sql = `
		SELECT area, field, reason, aliases, occurrences, first_seen, last_seen
		FROM normalization_gaps
		ORDER BY occurrences DESC, area, field, reason
		LIMIT $1`

	rows, err := s.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Area, &e.Field, &e.Reason, &e.Aliases, &e.Occurrences, &e.FirstSeen, &e.LastSeen); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
