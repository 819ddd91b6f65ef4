// Package memory holds in-process implementations of the storage ports, used
// for tests and for running without Walrus or Redis.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"payzoll-audit/pkg/apperror"
)

// BlobStore is a content-addressed ports.BlobStore held in memory.
// Identical bytes map to the same blob ID, like an already-certified Walrus blob.
type BlobStore struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	epochs map[string]int
}

// NewBlobStore creates an empty in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs:  make(map[string][]byte),
		epochs: make(map[string]int),
	}
}

// Put stores a copy of data and returns its content-derived ID.
func (s *BlobStore) Put(ctx context.Context, data []byte, epochs int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperror.ErrStorage("put", err)
	}
	sum := sha256.Sum256(data)
	id := base64.RawURLEncoding.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		s.blobs[id] = append([]byte(nil), data...)
	}
	if epochs > s.epochs[id] {
		s.epochs[id] = epochs
	}
	return id, nil
}

// Get returns a copy of the bytes stored under blobID.
func (s *BlobStore) Get(ctx context.Context, blobID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.ErrStorage("get", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[blobID]
	if !ok {
		return nil, apperror.ErrNotFound("Blob " + blobID)
	}
	return append([]byte(nil), data...), nil
}

// Expire drops a blob, as if its retention period had passed.
func (s *BlobStore) Expire(blobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, blobID)
	delete(s.epochs, blobID)
}

// Epochs returns the longest retention requested for blobID.
func (s *BlobStore) Epochs(blobID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epochs[blobID]
}

// Len returns the number of stored blobs.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
