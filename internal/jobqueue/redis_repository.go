package jobqueue

import (
	"context"
	"time"

	"github.com/motionmix/montage-backend/internal/models"
)

// Repository is the shared work queue between the API process and the worker
// pool. The queue carries only task envelopes; claiming a job is the database
// row's pending-to-processing transition, not a queue operation.
type Repository interface {
	EnqueueTask(ctx context.Context, key string, task *models.Task) error
	DequeueTask(ctx context.Context, key string, timeout time.Duration) (*models.Task, error)
}

// RateLimiter is a shared counter with expiry, usable across orchestration
// instances (unlike a process-local counter).
type RateLimiter interface {
	Allow(ctx context.Context, bucket string, limit int, window time.Duration) (bool, error)
}
