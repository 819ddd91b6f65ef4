package redis

import (
	"context"
	"errors"
	"fmt"

	"payzoll-audit/pkg/apperror"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultPointerKey is the key the index pointer has always lived under.
const DefaultPointerKey = "auditIndexBlobId"

// casScript swaps KEYS[1] from ARGV[1] to ARGV[2]. A missing key reads as "".
// Returns {1, next} on success and {0, current} on mismatch.
var casScript = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then cur = '' end
if cur ~= ARGV[1] then
	return {0, cur}
end
redis.call('SET', KEYS[1], ARGV[2])
return {1, ARGV[2]}
`)

// PointerStore is the fallback index pointer tier kept in Redis.
type PointerStore struct {
	client goredis.UniversalClient
	key    string
}

// NewPointerStore creates a pointer store on key, or DefaultPointerKey when empty.
func NewPointerStore(client goredis.UniversalClient, key string) *PointerStore {
	if key == "" {
		key = DefaultPointerKey
	}
	return &PointerStore{client: client, key: key}
}

// Name returns the tier name.
func (s *PointerStore) Name() string {
	return "redis"
}

// Resolve returns the stored blob ID, or "" when the key is unset.
func (s *PointerStore) Resolve(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", apperror.ErrPointerUnavailable(fmt.Errorf("redis pointer get: %w", err))
	}
	return val, nil
}

// CompareAndSwap atomically moves the pointer from expected to next.
func (s *PointerStore) CompareAndSwap(ctx context.Context, expected, next string) error {
	res, err := casScript.Run(ctx, s.client, []string{s.key}, expected, next).Slice()
	if err != nil {
		return apperror.ErrPointerUnavailable(fmt.Errorf("redis pointer cas: %w", err))
	}
	if len(res) != 2 {
		return apperror.ErrPointerUnavailable(fmt.Errorf("redis pointer cas: unexpected reply %v", res))
	}
	ok, _ := res[0].(int64)
	if ok != 1 {
		current, _ := res[1].(string)
		return apperror.ErrPointerConflict(expected, current)
	}
	return nil
}

// Store overwrites the pointer unconditionally.
func (s *PointerStore) Store(ctx context.Context, blobID string) error {
	if err := s.client.Set(ctx, s.key, blobID, 0).Err(); err != nil {
		return apperror.ErrPointerUnavailable(fmt.Errorf("redis pointer set: %w", err))
	}
	return nil
}
