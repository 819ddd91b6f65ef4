package memory

import (
	"context"
	"errors"
	"sync"

	"payzoll-audit/pkg/apperror"
)

// PointerStore is a process-scoped ports.PointerStore.
type PointerStore struct {
	mu     sync.Mutex
	name   string
	blobID string
}

// NewPointerStore creates an empty pointer slot.
func NewPointerStore(name string) *PointerStore {
	return &PointerStore{name: name}
}

// Name returns the tier name.
func (s *PointerStore) Name() string {
	return s.name
}

// Resolve returns the current blob ID, or "" when unset.
func (s *PointerStore) Resolve(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobID, nil
}

// CompareAndSwap moves the slot from expected to next.
func (s *PointerStore) CompareAndSwap(ctx context.Context, expected, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blobID != expected {
		return apperror.ErrPointerConflict(expected, s.blobID)
	}
	s.blobID = next
	return nil
}

// Store sets the slot unconditionally.
func (s *PointerStore) Store(ctx context.Context, blobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobID = blobID
	return nil
}

// ErrNotPersisted is returned by NoopPointerStore writes.
var ErrNotPersisted = errors.New("pointer tier none keeps no state")

// NoopPointerStore is the fallback tier when no local storage exists: it
// holds nothing and refuses every write, so callers never report a pointer
// as moved when it was not.
type NoopPointerStore struct{}

func (NoopPointerStore) Name() string { return "none" }

func (NoopPointerStore) Resolve(context.Context) (string, error) { return "", nil }

func (NoopPointerStore) CompareAndSwap(context.Context, string, string) error {
	return ErrNotPersisted
}

func (NoopPointerStore) Store(context.Context, string) error { return ErrNotPersisted }
