package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/playmatatu/blockpong/internal/game"
	"github.com/redis/go-redis/v9"
)

// SnapshotKey holds the most recent mirrored snapshot.
const SnapshotKey = "arena:state"

var (
	// ErrMirrorDisabled is returned by Load when no Redis client is configured.
	ErrMirrorDisabled = errors.New("snapshot mirror disabled")
	// ErrNoSnapshot is returned by Load when the key is missing or expired.
	ErrNoSnapshot = errors.New("no mirrored snapshot")
)

// SnapshotMirror writes the live snapshot to Redis with a short TTL so the
// key disappears when the server stops.
type SnapshotMirror struct {
	rdb      *redis.Client
	ttl      time.Duration
	inflight atomic.Bool
}

// NewSnapshotMirror returns a mirror for rdb. ttl <= 0 defaults to 5s.
func NewSnapshotMirror(rdb *redis.Client, ttl time.Duration) *SnapshotMirror {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &SnapshotMirror{rdb: rdb, ttl: ttl}
}

// Mirror stores state in the background. If the previous write has not
// finished yet this snapshot is skipped.
func (m *SnapshotMirror) Mirror(state game.GameState) {
	if m == nil || m.rdb == nil {
		return
	}
	if !m.inflight.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer m.inflight.Store(false)
		if err := m.Save(context.Background(), state); err != nil {
			log.Printf("[REDIS] mirror snapshot failed: %v", err)
		}
	}()
}

// Save writes state synchronously.
func (m *SnapshotMirror) Save(ctx context.Context, state game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.rdb.SetEx(ctx, SnapshotKey, data, m.ttl).Err()
}

// Load reads the mirrored snapshot.
func (m *SnapshotMirror) Load(ctx context.Context) (*game.GameState, error) {
	if m == nil || m.rdb == nil {
		return nil, ErrMirrorDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	data, err := m.rdb.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", SnapshotKey, err)
	}

	var state game.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", SnapshotKey, err)
	}
	return &state, nil
}
