package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

type submissionLockStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// SubmissionGuard allows at most one in-flight submission per form instance
// key. Redis backs it when available so the guard holds across replicas;
// otherwise an in-process set is used.
type SubmissionGuard struct {
	store  submissionLockStore
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[string]time.Time
}

// NewSubmissionGuard builds a guard. A nil store selects the in-process set.
func NewSubmissionGuard(store submissionLockStore, ttl time.Duration, logger *zap.Logger) *SubmissionGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionGuard{store: store, ttl: ttl, logger: logger, inFlight: make(map[string]time.Time)}
}

// Acquire claims owner's form key and returns the release function. Keys
// are scoped per owner, so two users sending the same key never collide.
// An empty key is not guarded. A held key yields ErrSubmissionInFlight.
func (g *SubmissionGuard) Acquire(ctx context.Context, owner, key string) (func(), error) {
	key = strings.TrimSpace(key)
	if g == nil || key == "" {
		return func() {}, nil
	}
	key = strings.TrimSpace(owner) + ":" + key

	if g.store != nil {
		ok, err := g.store.Acquire(ctx, key, g.ttl)
		if err == nil {
			if !ok {
				return nil, appErrors.ErrSubmissionInFlight
			}
			return func() {
				if err := g.store.Release(context.WithoutCancel(ctx), key); err != nil {
					g.logger.Warn("release submission lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		g.logger.Warn("submission lock store unavailable, using local guard", zap.Error(err))
	}

	now := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	if expires, held := g.inFlight[key]; held && now.Before(expires) {
		return nil, appErrors.ErrSubmissionInFlight
	}
	g.inFlight[key] = now.Add(g.ttl)
	return func() {
		g.mu.Lock()
		delete(g.inFlight, key)
		g.mu.Unlock()
	}, nil
}
