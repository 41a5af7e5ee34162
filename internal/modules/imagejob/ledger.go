// README: Image job ledger: last progress snapshot per trip, kept in a Redis hash with a TTL.
package imagejob

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ledgerKeyFmt = "imagejob:trip:%s"
	ledgerTTL    = 24 * time.Hour
)

type RedisLedger struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisLedger(rdb *redis.Client) *RedisLedger {
	return &RedisLedger{redis: rdb, ttl: ledgerTTL}
}

func ledgerKey(tripID string) string {
	return fmt.Sprintf(ledgerKeyFmt, tripID)
}

func (l *RedisLedger) Record(ctx context.Context, s Snapshot) error {
	key := ledgerKey(s.TripID)
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"job_id", s.JobID,
			"country", s.Country,
			"state", string(s.State),
			"wait", s.WaitSeconds,
			"image_url", s.ImageURL,
			"reason", s.Reason,
			"updated_at", s.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, l.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ledger: record %s: %w", s.TripID, err)
	}
	return nil
}

func (l *RedisLedger) Get(ctx context.Context, tripID string) (*Snapshot, error) {
	vals, err := l.redis.HGetAll(ctx, ledgerKey(tripID)).Result()
	if err != nil {
		return nil, fmt.Errorf("ledger: get %s: %w", tripID, err)
	}
	if len(vals) == 0 {
		return nil, ErrSnapshotNotFound
	}
	s := &Snapshot{
		TripID:   tripID,
		JobID:    vals["job_id"],
		Country:  vals["country"],
		State:    Kind(vals["state"]),
		ImageURL: vals["image_url"],
		Reason:   vals["reason"],
	}
	s.WaitSeconds, _ = strconv.Atoi(vals["wait"])
	s.UpdatedAt, _ = time.Parse(time.RFC3339Nano, vals["updated_at"])
	return s, nil
}

// MemoryLedger is used when Redis is not configured. Entries never expire.
type MemoryLedger struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{snaps: make(map[string]Snapshot)}
}

func (l *MemoryLedger) Record(_ context.Context, s Snapshot) error {
	l.mu.Lock()
	l.snaps[s.TripID] = s
	l.mu.Unlock()
	return nil
}

func (l *MemoryLedger) Get(_ context.Context, tripID string) (*Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.snaps[tripID]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return &s, nil
}
