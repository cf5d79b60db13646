package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	model "task-tracker.com/task-tracker/internal/models"
)

const (
	keyPrefix = "task"

	// tombstone marks a key invalidated by a write. It never parses as JSON.
	tombstone = "-"

	DefaultTombstoneTTL = 10 * time.Second
)

type RedisTaskCache struct {
	client       rueidis.Client
	ttl          time.Duration
	tombstoneTTL time.Duration
}

func NewRedisTaskCache(client rueidis.Client, ttl time.Duration) *RedisTaskCache {
	if ttl < time.Second {
		ttl = time.Second
	}
	return &RedisTaskCache{
		client:       client,
		ttl:          ttl,
		tombstoneTTL: DefaultTombstoneTTL,
	}
}

func Key(userID, taskID uint) string {
	return fmt.Sprintf("%s:%d:%d", keyPrefix, userID, taskID)
}

func (r *RedisTaskCache) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	cmd := r.client.B().Get().Key(Key(userID, taskID)).Build()
	raw, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	if raw == tombstone {
		return nil, ErrCacheMiss
	}

	var task model.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, fmt.Errorf("decode cached task: %w", err)
	}

	if task.UserID != userID || task.ID != taskID {
		return nil, ErrCacheMiss
	}

	return &task, nil
}

// Fill writes with NX, so a tombstone left by Invalidate wins over a fill
// carrying a row read before the write committed.
func (r *RedisTaskCache) Fill(ctx context.Context, task *model.Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}

	cmd := r.client.B().Set().
		Key(Key(task.UserID, task.ID)).
		Value(rueidis.BinaryString(raw)).
		Nx().
		PxMilliseconds(r.ttl.Milliseconds()).
		Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil && !rueidis.IsRedisNil(err) {
		return err
	}
	return nil
}

func (r *RedisTaskCache) Invalidate(ctx context.Context, userID, taskID uint) error {
	cmd := r.client.B().Set().
		Key(Key(userID, taskID)).
		Value(tombstone).
		PxMilliseconds(r.tombstoneTTL.Milliseconds()).
		Build()
	return r.client.Do(ctx, cmd).Error()
}
