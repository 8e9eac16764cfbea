/*
Package redisstore persists a whole forest snapshot as a single blob
in Redis, keyed by a caller-chosen name, as an alternative to the
filesystem-oriented forest.Save/Load pair. A save is wrapped in a
short-lived SetNX lock so two processes writing the same key don't
interleave.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pbanos/irforest/forest"
	"gopkg.in/redis.v5"
)

// lockReleaseScript only deletes the lock key if it still holds the
// value this process set, so a lock this process lost to its own TTL
// expiry can't be released out from under whoever acquired it next.
const lockReleaseScript = `
if redis.call("GET",KEYS[1]) == ARGV[1] then
    return redis.call("DEL",KEYS[1])
else
    return 0
end
`

const (
	lockAttempts    = 5
	failToLockSleep = 10 * time.Millisecond
	lockTTL         = 30 * time.Second
)

// Store is a Redis-backed forest snapshot store.
type Store struct {
	rc     *redis.Client
	prefix string
}

// New returns a Store that keys its data under prefix on the given
// redis client.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc: rc, prefix: prefix}
}

// Save serializes f and stores it under key, retrying briefly if
// another process currently holds the key's lock.
func (s *Store) Save(ctx context.Context, key string, f *forest.Forest) error {
	return s.withLock(ctx, key, lockAttempts, func() error {
		var buf bytes.Buffer
		if err := f.Save(&buf); err != nil {
			return fmt.Errorf("redisstore: encoding forest %q: %v", key, err)
		}
		if _, err := s.rc.Set(s.dataKey(key), buf.String(), 0).Result(); err != nil {
			return fmt.Errorf("redisstore: storing forest %q: %v", key, err)
		}
		return nil
	})
}

// Load retrieves and deserializes the forest stored under key.
func (s *Store) Load(ctx context.Context, key string) (*forest.Forest, error) {
	data, err := s.rc.Get(s.dataKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: retrieving forest %q: %v", key, err)
	}
	f, err := forest.Load(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("redisstore: decoding forest %q: %v", key, err)
	}
	return f, nil
}

func (s *Store) withLock(ctx context.Context, key string, attempts int, f func() error) error {
	lockKey := s.lockKey(key)
	lockValue := randString(20)
	ok, err := s.rc.SetNX(lockKey, lockValue, lockTTL).Result()
	if err != nil {
		return fmt.Errorf("redisstore: locking forest %q: %v", key, err)
	}
	if !ok {
		if attempts <= 0 {
			return fmt.Errorf("redisstore: could not acquire lock for forest %q", key)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(failToLockSleep):
		}
		return s.withLock(ctx, key, attempts-1, f)
	}
	defer s.rc.Eval(lockReleaseScript, []string{lockKey}, lockValue)
	return f()
}

func (s *Store) dataKey(key string) string { return fmt.Sprintf("%s:%s:data", s.prefix, key) }
func (s *Store) lockKey(key string) string { return fmt.Sprintf("%s:%s:lock", s.prefix, key) }
