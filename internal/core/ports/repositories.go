package ports

import (
	"context"

	"payzoll-audit/internal/core/domain"
)

// BlobStore is an immutable, content-addressed byte store. There is no update
// or delete; identical bytes may come back with an already-known ID.
type BlobStore interface {
	// Put stores data retained for epochs storage epochs and returns its blob ID.
	Put(ctx context.Context, data []byte, epochs int) (string, error)
	// Get returns the bytes stored under blobID. Unknown or expired IDs yield a
	// STO_002 error; transport failures yield STO_001.
	Get(ctx context.Context, blobID string) ([]byte, error)
}

// PointerStore is one tier holding the ID of the current index blob.
type PointerStore interface {
	// Name identifies the tier in logs and metrics.
	Name() string
	// Resolve returns the current blob ID, or "" when the slot is empty.
	Resolve(ctx context.Context) (string, error)
	// CompareAndSwap sets the slot to next only if it currently holds expected
	// ("" meaning empty). A mismatch yields a PTR_002 error.
	CompareAndSwap(ctx context.Context, expected, next string) error
	// Store sets the slot unconditionally.
	Store(ctx context.Context, blobID string) error
}

// PointerRepository is the durable server-side home of pointer slots.
type PointerRepository interface {
	Get(ctx context.Context, slot string) (*domain.IndexPointer, error) // nil, nil when empty
	CompareAndSwap(ctx context.Context, slot, expected, next string) (*domain.IndexPointer, error)
	Set(ctx context.Context, slot, blobID string) (*domain.IndexPointer, error)
	History(ctx context.Context, slot string, limit int) ([]domain.PointerMove, error)
}
