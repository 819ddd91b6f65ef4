package redis

import (
	"context"
	"testing"

	"payzoll-audit/pkg/apperror"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPointerStore(t *testing.T) (*PointerStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPointerStore(client, ""), mr
}

func TestPointerStore_ResolveUnset(t *testing.T) {
	s, _ := newPointerStore(t)

	id, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, "redis", s.Name())
}

func TestPointerStore_UsesLegacyKey(t *testing.T) {
	s, mr := newPointerStore(t)
	mr.Set("auditIndexBlobId", "idx-legacy")

	id, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "idx-legacy", id)
}

func TestPointerStore_CompareAndSwap(t *testing.T) {
	s, mr := newPointerStore(t)
	ctx := context.Background()

	require.NoError(t, s.CompareAndSwap(ctx, "", "idx-1"))
	got, _ := mr.Get(DefaultPointerKey)
	assert.Equal(t, "idx-1", got)

	require.NoError(t, s.CompareAndSwap(ctx, "idx-1", "idx-2"))

	err := s.CompareAndSwap(ctx, "idx-1", "idx-3")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodePointerConflict))
	assert.Contains(t, err.Error(), "idx-2")

	got, _ = mr.Get(DefaultPointerKey)
	assert.Equal(t, "idx-2", got, "losing swap must not write")
}

func TestPointerStore_CompareAndSwapEmptyExpectedOnSetKey(t *testing.T) {
	s, mr := newPointerStore(t)
	mr.Set(DefaultPointerKey, "idx-other")

	err := s.CompareAndSwap(context.Background(), "", "idx-mine")
	assert.True(t, apperror.HasCode(err, apperror.CodePointerConflict))
}

func TestPointerStore_Store(t *testing.T) {
	s, mr := newPointerStore(t)
	mr.Set(DefaultPointerKey, "idx-1")

	require.NoError(t, s.Store(context.Background(), "idx-forced"))

	id, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "idx-forced", id)
}

func TestPointerStore_CustomKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewPointerStore(client, "tenant-a:index")

	require.NoError(t, s.Store(context.Background(), "idx"))
	assert.False(t, mr.Exists(DefaultPointerKey))
	got, _ := mr.Get("tenant-a:index")
	assert.Equal(t, "idx", got)
}

func TestPointerStore_UnavailableWhenRedisDown(t *testing.T) {
	s, mr := newPointerStore(t)
	mr.Close()
	ctx := context.Background()

	_, err := s.Resolve(ctx)
	assert.True(t, apperror.HasCode(err, apperror.CodePointerUnavailable))

	err = s.CompareAndSwap(ctx, "", "idx")
	assert.True(t, apperror.HasCode(err, apperror.CodePointerUnavailable))

	err = s.Store(ctx, "idx")
	assert.True(t, apperror.HasCode(err, apperror.CodePointerUnavailable))
}
