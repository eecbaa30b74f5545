package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
	"github.com/noah-isme/verticx-api/pkg/jobs"
)

type flakyLockStore struct {
	held     map[string]bool
	down     bool
	released []string
}

func (s *flakyLockStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if s.down {
		return false, errors.New("connection refused")
	}
	if s.held[key] {
		return false, nil
	}
	s.held[key] = true
	return true, nil
}

func (s *flakyLockStore) Release(ctx context.Context, key string) error {
	delete(s.held, key)
	s.released = append(s.released, key)
	return nil
}

func TestSubmissionGuardLocal(t *testing.T) {
	guard := NewSubmissionGuard(nil, time.Minute, nil)
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "teacher-1", "form-1")
	require.NoError(t, err)

	_, err = guard.Acquire(ctx, "teacher-1", "form-1")
	assert.True(t, errors.Is(err, appErrors.ErrSubmissionInFlight))

	other, err := guard.Acquire(ctx, "teacher-1", "form-2")
	require.NoError(t, err)
	other()

	release()
	again, err := guard.Acquire(ctx, "teacher-1", "form-1")
	require.NoError(t, err)
	again()

	noop, err := guard.Acquire(ctx, "teacher-1", "  ")
	require.NoError(t, err)
	noop()
}

func TestSubmissionGuardScopesKeysPerOwner(t *testing.T) {
	store := &flakyLockStore{held: map[string]bool{}}
	guard := NewSubmissionGuard(store, time.Minute, nil)
	ctx := context.Background()

	mine, err := guard.Acquire(ctx, "teacher-1", "form-1")
	require.NoError(t, err)
	theirs, err := guard.Acquire(ctx, "registrar-1", "form-1")
	require.NoError(t, err)
	assert.True(t, store.held["teacher-1:form-1"])
	assert.True(t, store.held["registrar-1:form-1"])
	mine()
	theirs()

	local := NewSubmissionGuard(nil, time.Minute, nil)
	_, err = local.Acquire(ctx, "teacher-1", "form-1")
	require.NoError(t, err)
	_, err = local.Acquire(ctx, "registrar-1", "form-1")
	assert.NoError(t, err)
}

func TestSubmissionGuardStore(t *testing.T) {
	store := &flakyLockStore{held: map[string]bool{}}
	guard := NewSubmissionGuard(store, time.Minute, nil)
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "teacher-1", "form-1")
	require.NoError(t, err)
	_, err = guard.Acquire(ctx, "teacher-1", "form-1")
	assert.True(t, errors.Is(err, appErrors.ErrSubmissionInFlight))
	release()
	assert.Equal(t, []string{"teacher-1:form-1"}, store.released)

	store.down = true
	fallback, err := guard.Acquire(ctx, "teacher-1", "form-3")
	require.NoError(t, err)
	_, err = guard.Acquire(ctx, "teacher-1", "form-3")
	assert.True(t, errors.Is(err, appErrors.ErrSubmissionInFlight))
	fallback()
}

func TestPatternsFor(t *testing.T) {
	saved := PatternsFor(events.AttendanceSaved{BranchID: "b1", PersonIDs: []string{"p1", "p2"}})
	assert.Equal(t, []string{
		"calendar:p1:*", "dashboard:person:p1:*",
		"calendar:p2:*", "dashboard:person:p2:*",
		"dashboard:branch:b1",
	}, saved)

	assert.Equal(t, []string{"dashboard:branch:b1"}, PatternsFor(events.ChangeRequestReviewed{
		BranchID: "b1", EntityType: string(models.EntityFeeTemplate), PersonID: "p1",
	}))
	assert.Equal(t, []string{"calendar:p1:*", "dashboard:person:p1:*", "dashboard:branch:b1"}, PatternsFor(events.ChangeRequestReviewed{
		BranchID: "b1", EntityType: string(models.EntityAttendance), PersonID: "p1",
	}))
	assert.Equal(t, []string{"calendar:p9:*", "dashboard:person:p9:*", "dashboard:branch:b2"}, PatternsFor(events.LeaveReviewed{PersonID: "p9", BranchID: "b2"}))
	assert.Equal(t, []string{"dashboard:branch:b3"}, PatternsFor(events.FeeTemplateChanged{BranchID: "b3"}))
}

func TestInvalidationRefreshesOnlyAffectedViews(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	ctx := context.Background()
	for _, key := range []string{
		CalendarCacheKey("p1", "2024-04"),
		CalendarCacheKey("p1", "2024-03"),
		CalendarCacheKey("p2", "2024-04"),
		PersonDashboardKey("p1", "2024-04"),
		BranchDashboardKey("b1"),
		BranchDashboardKey("b2"),
	} {
		require.NoError(t, cache.Set(ctx, key, "cached", 0))
	}

	bus := events.NewBus(nil)
	NewInvalidationService(cache, nil, nil).Subscribe(bus)
	bus.Publish(events.LeaveReviewed{LeaveID: "l1", PersonID: "p1", BranchID: "b1", Status: "APPROVED"})

	assert.False(t, store.has(CalendarCacheKey("p1", "2024-04")))
	assert.False(t, store.has(CalendarCacheKey("p1", "2024-03")))
	assert.False(t, store.has(PersonDashboardKey("p1", "2024-04")))
	assert.False(t, store.has(BranchDashboardKey("b1")))
	assert.True(t, store.has(CalendarCacheKey("p2", "2024-04")))
	assert.True(t, store.has(BranchDashboardKey("b2")))
}

func TestInvalidationThroughQueue(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, BranchDashboardKey("b1"), "cached", 0))

	svc := NewInvalidationService(cache, nil, nil)
	queue := jobs.NewQueue("invalidation", svc.Handle, jobs.QueueConfig{Workers: 1})
	queue.Start(ctx)
	defer queue.Stop()
	svc.SetQueue(queue)

	svc.OnEvent(events.FeeTemplateChanged{TemplateID: "tpl-1", BranchID: "b1"})

	assert.Eventually(t, func() bool {
		return !store.has(BranchDashboardKey("b1"))
	}, time.Second, 10*time.Millisecond)
}

func TestCacheServiceDisabled(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, 0, nil, false)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	assert.False(t, store.has("k"))

	calls := 0
	load := func(context.Context) (string, error) {
		calls++
		return "fresh", nil
	}
	value, hit, err := cached(ctx, cache, "k", 0, load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
	assert.False(t, hit)
	_, _, _ = cached(ctx, cache, "k", 0, load)
	assert.Equal(t, 2, calls)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.NoError(t, nilCache.Invalidate(ctx, "*"))
}
