package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/pkg/events"
	"github.com/noah-isme/verticx-api/pkg/jobs"
)

const invalidationJobType = "cache.invalidate"

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// InvalidationService turns domain events into cache invalidation jobs so
// every derived view depending on a write is refreshed, and nothing else.
type InvalidationService struct {
	cache  cacheInvalidator
	queue  jobEnqueuer
	logger *zap.Logger
}

// NewInvalidationService builds the service. A nil queue invalidates inline.
func NewInvalidationService(cache cacheInvalidator, queue jobEnqueuer, logger *zap.Logger) *InvalidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidationService{cache: cache, queue: queue, logger: logger}
}

// SetQueue attaches the worker queue once it has been built around Handle.
func (s *InvalidationService) SetQueue(queue jobEnqueuer) {
	s.queue = queue
}

// Subscribe registers the service on every event type it reacts to.
func (s *InvalidationService) Subscribe(bus *events.Bus) {
	for _, eventType := range []string{
		events.TypeAttendanceSaved,
		events.TypeLeaveApplied,
		events.TypeLeaveReviewed,
		events.TypeChangeRequestSubmitted,
		events.TypeChangeRequestReviewed,
		events.TypeFeeTemplateChanged,
	} {
		bus.Subscribe(eventType, s.OnEvent)
	}
}

// OnEvent enqueues one job per affected key pattern.
func (s *InvalidationService) OnEvent(event events.Event) {
	for _, pattern := range PatternsFor(event) {
		job := jobs.Job{ID: uuid.NewString(), Type: invalidationJobType, Key: pattern}
		if s.queue != nil {
			err := s.queue.Enqueue(job)
			if err == nil {
				continue
			}
			s.logger.Warn("enqueue invalidation failed, running inline", zap.String("pattern", pattern), zap.Error(err))
		}
		if err := s.Handle(context.Background(), job); err != nil {
			s.logger.Error("inline invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

// Handle is the queue handler.
func (s *InvalidationService) Handle(ctx context.Context, job jobs.Job) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, job.Key)
}

// PatternsFor lists the cache key patterns an event makes stale.
func PatternsFor(event events.Event) []string {
	var patterns []string
	person := func(id string) {
		if id == "" {
			return
		}
		patterns = append(patterns, CalendarCachePattern(id), PersonDashboardPattern(id))
	}
	branch := func(id string) {
		if id != "" {
			patterns = append(patterns, BranchDashboardKey(id))
		}
	}

	switch e := event.(type) {
	case events.AttendanceSaved:
		for _, id := range e.PersonIDs {
			person(id)
		}
		branch(e.BranchID)
	case events.LeaveApplied:
		branch(e.BranchID)
	case events.LeaveReviewed:
		person(e.PersonID)
		branch(e.BranchID)
	case events.ChangeRequestSubmitted:
		branch(e.BranchID)
	case events.ChangeRequestReviewed:
		if e.EntityType == string(models.EntityAttendance) {
			person(e.PersonID)
		}
		branch(e.BranchID)
	case events.FeeTemplateChanged:
		branch(e.BranchID)
	}
	return patterns
}
