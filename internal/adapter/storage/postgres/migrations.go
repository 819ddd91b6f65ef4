package postgres

import (
	"context"
	"fmt"
)

// schema creates the pointer and idempotency tables. Statements are idempotent and run on startup.
const schema = `
CREATE TABLE IF NOT EXISTS index_pointers (
    slot        TEXT PRIMARY KEY,
    blob_id     TEXT NOT NULL,
    version     BIGINT NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS index_pointer_moves (
    id            UUID PRIMARY KEY,
    slot          TEXT NOT NULL,
    prev_blob_id  TEXT NOT NULL DEFAULT '',
    blob_id       TEXT NOT NULL,
    forced        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_index_pointer_moves_slot_created
    ON index_pointer_moves (slot, created_at DESC);

CREATE TABLE IF NOT EXISTS idempotency_keys (
    key            TEXT PRIMARY KEY,
    response_json  BYTEA NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL,
    expires_at     TIMESTAMPTZ NOT NULL
);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
