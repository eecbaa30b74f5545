package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionLockPrefix = "submission:"

// SubmissionLockRepository holds short-lived Redis locks keyed by actor and
// form instance id.
type SubmissionLockRepository struct {
	client *redis.Client
}

// NewSubmissionLockRepository constructs the repository. It returns nil when
// client is nil so callers can fall back to an in-process lock.
func NewSubmissionLockRepository(client *redis.Client) *SubmissionLockRepository {
	if client == nil {
		return nil
	}
	return &SubmissionLockRepository{client: client}
}

// Acquire sets the lock if absent and reports whether this caller holds it.
func (r *SubmissionLockRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, namespaced(submissionLockPrefix+key), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

// Release drops the lock.
func (r *SubmissionLockRepository) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, namespaced(submissionLockPrefix+key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
