package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/jobqueue"
	"github.com/motionmix/montage-backend/internal/models"
)

type taskRedisRepo struct {
	redisClient *redis.Client
}

func NewTaskRedisRepo(redisClient *redis.Client) jobqueue.Repository {
	return &taskRedisRepo{redisClient: redisClient}
}

func (r *taskRedisRepo) EnqueueTask(ctx context.Context, key string, task *models.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "taskRedisRepo.EnqueueTask marshal")
	}
	if err := r.redisClient.LPush(ctx, key, data).Err(); err != nil {
		return errors.Wrap(err, "taskRedisRepo.EnqueueTask lpush")
	}
	return nil
}

// DequeueTask blocks up to timeout for the next task. A nil task with a nil
// error means the wait timed out.
func (r *taskRedisRepo) DequeueTask(ctx context.Context, key string, timeout time.Duration) (*models.Task, error) {
	res, err := r.redisClient.BRPop(ctx, timeout, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "taskRedisRepo.DequeueTask brpop")
	}
	task := &models.Task{}
	if err := json.Unmarshal([]byte(res[1]), task); err != nil {
		return nil, errors.Wrap(err, "taskRedisRepo.DequeueTask unmarshal")
	}
	return task, nil
}

type redisRateLimiter struct {
	redisClient *redis.Client
}

func NewRedisRateLimiter(redisClient *redis.Client) jobqueue.RateLimiter {
	return &redisRateLimiter{redisClient: redisClient}
}

// Allow counts one hit against the bucket and reports whether it is still
// within the limit. INCR plus first-hit EXPIRE keeps the counter shared and
// self-cleaning across all orchestration instances.
func (r *redisRateLimiter) Allow(ctx context.Context, bucket string, limit int, window time.Duration) (bool, error) {
	key := "ratelimit:" + bucket
	count, err := r.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "redisRateLimiter.Allow incr")
	}
	if count == 1 {
		if err := r.redisClient.Expire(ctx, key, window).Err(); err != nil {
			return false, errors.Wrap(err, "redisRateLimiter.Allow expire")
		}
	}
	return count <= int64(limit), nil
}
