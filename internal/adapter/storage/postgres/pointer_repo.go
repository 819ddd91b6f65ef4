package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payzoll-audit/internal/core/domain"
	"payzoll-audit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PointerRepo implements ports.PointerRepository.
type PointerRepo struct {
	pool Pool
	now  func() time.Time
}

// NewPointerRepo creates a new PointerRepo.
func NewPointerRepo(pool Pool) *PointerRepo {
	return &PointerRepo{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the pointer for slot, or nil when the slot has never been set.
func (r *PointerRepo) Get(ctx context.Context, slot string) (*domain.IndexPointer, error) {
	query := `SELECT slot, blob_id, version, updated_at FROM index_pointers WHERE slot = $1`

	p := &domain.IndexPointer{}
	err := r.pool.QueryRow(ctx, query, slot).Scan(&p.Slot, &p.BlobID, &p.Version, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get index pointer: %w", err)
	}
	return p, nil
}

// CompareAndSwap moves slot from expected to next, recording the move.
// expected "" matches a slot that has never been set.
func (r *PointerRepo) CompareAndSwap(ctx context.Context, slot, expected, next string) (*domain.IndexPointer, error) {
	return r.move(ctx, slot, &expected, next)
}

// Set moves slot to blobID regardless of its current value. The move is
// recorded as forced.
func (r *PointerRepo) Set(ctx context.Context, slot, blobID string) (*domain.IndexPointer, error) {
	return r.move(ctx, slot, nil, blobID)
}

func (r *PointerRepo) move(ctx context.Context, slot string, expected *string, next string) (*domain.IndexPointer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin pointer move: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var (
		current string
		version int64
		exists  = true
	)
	err = tx.QueryRow(ctx,
		`SELECT blob_id, version FROM index_pointers WHERE slot = $1 FOR UPDATE`, slot,
	).Scan(&current, &version)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lock index pointer: %w", err)
		}
		exists = false
	}

	if expected != nil && *expected != current {
		return nil, apperror.ErrPointerConflict(*expected, current)
	}

	now := r.now()
	p := &domain.IndexPointer{Slot: slot, BlobID: next, Version: version + 1, UpdatedAt: now}

	if exists {
		_, err = tx.Exec(ctx,
			`UPDATE index_pointers SET blob_id = $2, version = $3, updated_at = $4 WHERE slot = $1`,
			p.Slot, p.BlobID, p.Version, p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("update index pointer: %w", err)
		}
	} else {
		// A row that does not exist yet cannot be locked, so a concurrent first
		// writer is detected by the insert doing nothing.
		tag, err := tx.Exec(ctx,
			`INSERT INTO index_pointers (slot, blob_id, version, updated_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (slot) DO NOTHING`,
			p.Slot, p.BlobID, p.Version, p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert index pointer: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, apperror.ErrPointerConflict(current, "a concurrent writer")
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO index_pointer_moves (id, slot, prev_blob_id, blob_id, forced, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), slot, current, next, expected == nil, now)
	if err != nil {
		return nil, fmt.Errorf("insert pointer move: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit pointer move: %w", err)
	}
	return p, nil
}

// History returns up to limit moves of slot, newest first.
func (r *PointerRepo) History(ctx context.Context, slot string, limit int) ([]domain.PointerMove, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, slot, prev_blob_id, blob_id, forced, created_at
		FROM index_pointer_moves WHERE slot = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, slot, limit)
	if err != nil {
		return nil, fmt.Errorf("query pointer history: %w", err)
	}
	defer rows.Close()

	var moves []domain.PointerMove
	for rows.Next() {
		var m domain.PointerMove
		if err := rows.Scan(&m.ID, &m.Slot, &m.PrevBlobID, &m.BlobID, &m.Forced, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pointer move: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pointer history: %w", err)
	}
	return moves, nil
}
