package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyCache on PostgreSQL for
// deployments that run a database but no Redis. Expired rows are ignored on
// read and overwritten on the next Set for the same key.
type IdempotencyRepo struct {
	pool Pool
	now  func() time.Time
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

// Get fetches a cached response by key. Returns nil, nil if the key is absent
// or expired.
func (r *IdempotencyRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT response_json FROM idempotency_keys WHERE key = $1 AND expires_at > $2`

	var body []byte
	err := r.pool.QueryRow(ctx, query, key, r.now()).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return body, nil
}

// Set stores a response until now+ttl.
func (r *IdempotencyRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `INSERT INTO idempotency_keys (key, response_json, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET response_json = EXCLUDED.response_json,
		    created_at = EXCLUDED.created_at,
		    expires_at = EXCLUDED.expires_at`

	now := r.now()
	if _, err := r.pool.Exec(ctx, query, key, value, now, now.Add(ttl)); err != nil {
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired keys and reports how many were removed.
func (r *IdempotencyRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at <= $1`, r.now())
	if err != nil {
		return 0, fmt.Errorf("purge idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
