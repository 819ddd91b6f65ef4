package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"payzoll-audit/internal/adapter/storage/memory"
	"payzoll-audit/internal/core/domain"
	"payzoll-audit/pkg/apperror"

	"github.com/google/uuid"
)

// --- In-Memory Pointer Repo ---

type inMemoryPointerRepo struct {
	mu       sync.Mutex
	pointers map[string]*domain.IndexPointer
	moves    []domain.PointerMove
}

func newInMemoryPointerRepo() *inMemoryPointerRepo {
	return &inMemoryPointerRepo{pointers: make(map[string]*domain.IndexPointer)}
}

func (r *inMemoryPointerRepo) Get(ctx context.Context, slot string) (*domain.IndexPointer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pointers[slot]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPointerRepo) CompareAndSwap(ctx context.Context, slot, expected, next string) (*domain.IndexPointer, error) {
	return r.move(slot, &expected, next)
}

func (r *inMemoryPointerRepo) Set(ctx context.Context, slot, blobID string) (*domain.IndexPointer, error) {
	return r.move(slot, nil, blobID)
}

func (r *inMemoryPointerRepo) move(slot string, expected *string, next string) (*domain.IndexPointer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current string
	var version int64
	if p, ok := r.pointers[slot]; ok {
		current, version = p.BlobID, p.Version
	}
	if expected != nil && *expected != current {
		return nil, apperror.ErrPointerConflict(*expected, current)
	}

	now := time.Now().UTC()
	p := &domain.IndexPointer{Slot: slot, BlobID: next, Version: version + 1, UpdatedAt: now}
	r.pointers[slot] = p
	r.moves = append(r.moves, domain.PointerMove{
		ID: uuid.New(), Slot: slot, PrevBlobID: current, BlobID: next, Forced: expected == nil, CreatedAt: now,
	})
	cp := *p
	return &cp, nil
}

func (r *inMemoryPointerRepo) History(ctx context.Context, slot string, limit int) ([]domain.PointerMove, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PointerMove
	for i := len(r.moves) - 1; i >= 0 && len(out) < limit; i-- {
		if r.moves[i].Slot == slot {
			out = append(out, r.moves[i])
		}
	}
	return out, nil
}

// --- Fake Walrus publisher/aggregator ---

// fakeWalrus serves the publisher and aggregator blob endpoints from one
// in-memory store. Set down to make every call answer 503.
type fakeWalrus struct {
	server *httptest.Server
	blobs  *memory.BlobStore
	puts   atomic.Int64
	down   atomic.Bool
}

func newFakeWalrus() *fakeWalrus {
	w := &fakeWalrus{blobs: memory.NewBlobStore()}
	w.server = httptest.NewServer(http.HandlerFunc(w.serve))
	return w
}

func (w *fakeWalrus) URL() string { return w.server.URL }

func (w *fakeWalrus) Close() { w.server.Close() }

func (w *fakeWalrus) serve(rw http.ResponseWriter, r *http.Request) {
	if w.down.Load() {
		http.Error(rw, "storage node unavailable", http.StatusServiceUnavailable)
		return
	}

	switch {
	case r.Method == http.MethodPut && r.URL.Path == "/v1/blobs":
		epochs, err := strconv.Atoi(r.URL.Query().Get("epochs"))
		if err != nil || epochs < 1 {
			http.Error(rw, "epochs must be a positive integer", http.StatusBadRequest)
			return
		}
		var body bytes.Buffer
		if _, err := body.ReadFrom(r.Body); err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		id, _ := w.blobs.Put(r.Context(), []byte(body.String()), epochs)
		w.puts.Add(1)
		_ = json.NewEncoder(rw).Encode(map[string]interface{}{
			"newlyCreated": map[string]interface{}{
				"blobObject": map[string]interface{}{"blobId": id},
			},
		})

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/blobs/"):
		data, err := w.blobs.Get(r.Context(), strings.TrimPrefix(r.URL.Path, "/v1/blobs/"))
		if err != nil {
			http.NotFound(rw, r)
			return
		}
		_, _ = rw.Write(data)

	default:
		http.NotFound(rw, r)
	}
}
