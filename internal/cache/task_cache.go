package cache

import (
	"context"
	"errors"

	model "task-tracker.com/task-tracker/internal/models"
)

// TaskCache holds single tasks keyed by owner and id. Implementations must
// never hand a task to anyone but the owner it was stored under.
type TaskCache interface {
	Get(ctx context.Context, userID, taskID uint) (*model.Task, error)

	// Fill stores a task read from the store after a miss. It must not
	// overwrite an existing entry or a recent invalidation, so a read that
	// raced with a write never puts the old row back.
	Fill(ctx context.Context, task *model.Task) error

	// Invalidate drops the entry and blocks fills of the key for a while.
	Invalidate(ctx context.Context, userID, taskID uint) error
}

var ErrCacheMiss = errors.New("task cache miss")

// NoopTaskCache is used when no Redis address is configured.
type NoopTaskCache struct{}

func (NoopTaskCache) Get(context.Context, uint, uint) (*model.Task, error) {
	return nil, ErrCacheMiss
}

func (NoopTaskCache) Fill(context.Context, *model.Task) error {
	return nil
}

func (NoopTaskCache) Invalidate(context.Context, uint, uint) error {
	return nil
}
