package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/calendar"
	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
)

type pendingRequestCounter interface {
	CountPendingByEntity(ctx context.Context, branchID string) ([]models.PendingCount, error)
}

type pendingLeaveCounter interface {
	CountPending(ctx context.Context, branchID string) (int, error)
}

type feeTemplateLister interface {
	ListByBranch(ctx context.Context, branchID string, lifecycle models.Lifecycle) ([]models.FeeTemplate, error)
}

type attendanceCounter interface {
	CountByStatus(ctx context.Context, branchID, date string) ([]models.AttendanceCount, error)
}

type monthViewer interface {
	Calendar(ctx context.Context, actor models.Actor, personID, month string) (calendar.MonthView, bool, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the read-only summaries shown on dashboards.
type DashboardService struct {
	requests   pendingRequestCounter
	leaves     pendingLeaveCounter
	fees       feeTemplateLister
	attendance attendanceCounter
	calendars  monthViewer
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
	cfg        DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Requests   pendingRequestCounter
	Leaves     pendingLeaveCounter
	Fees       feeTemplateLister
	Attendance attendanceCounter
	Calendars  monthViewer
	Cache      *CacheService
	Logger     *zap.Logger
	Config     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		requests:   params.Requests,
		leaves:     params.Leaves,
		fees:       params.Fees,
		attendance: params.Attendance,
		calendars:  params.Calendars,
		cache:      params.Cache,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// BranchSummary returns the reviewer dashboard and whether it came from cache.
func (s *DashboardService) BranchSummary(ctx context.Context, actor models.Actor, branchID string) (*dto.BranchSummary, bool, error) {
	branchID, err := resolveBranch(actor, branchID)
	if err != nil {
		return nil, false, err
	}
	return cached(ctx, s.cache, BranchDashboardKey(branchID), s.cfg.CacheTTL, func(ctx context.Context) (*dto.BranchSummary, error) {
		return s.buildBranchSummary(ctx, branchID)
	})
}

func (s *DashboardService) buildBranchSummary(ctx context.Context, branchID string) (*dto.BranchSummary, error) {
	now := s.now().UTC()
	summary := &dto.BranchSummary{
		BranchID:              branchID,
		PendingChangeRequests: map[models.EntityType]int{},
		Today:                 now.Format(calendar.DateLayout),
		AttendanceToday:       map[models.AttendanceStatus]int{},
		GeneratedAt:           now,
	}

	counts, err := s.requests.CountPendingByEntity(ctx, branchID)
	if err != nil {
		return nil, internalError(err, "failed to count pending change requests")
	}
	for _, c := range counts {
		summary.PendingChangeRequests[c.EntityType] = c.Total
		summary.PendingRequestsTotal += c.Total
	}

	if summary.PendingLeaves, err = s.leaves.CountPending(ctx, branchID); err != nil {
		return nil, internalError(err, "failed to count pending leave")
	}

	templates, err := s.fees.ListByBranch(ctx, branchID, models.LifecycleCommitted)
	if err != nil {
		return nil, internalError(err, "failed to list fee templates")
	}
	summary.CommittedFeeTemplates = len(templates)
	for _, tpl := range templates {
		summary.AnnualFeeTotal += tpl.Amount()
	}

	attendance, err := s.attendance.CountByStatus(ctx, branchID, summary.Today)
	if err != nil {
		return nil, internalError(err, "failed to count attendance")
	}
	for _, status := range []models.AttendanceStatus{models.AttendancePresent, models.AttendanceAbsent, models.AttendanceTardy, models.AttendanceHalfDay} {
		summary.AttendanceToday[status] = 0
	}
	for _, c := range attendance {
		summary.AttendanceToday[c.Status] = c.Total
	}
	return summary, nil
}

// PersonSummary returns one person's month counts and whether it came from cache.
func (s *DashboardService) PersonSummary(ctx context.Context, actor models.Actor, personID, month string) (*dto.PersonSummary, bool, error) {
	if month == "" {
		month = calendar.MonthOf(s.now()).String()
	}
	view, _, err := s.calendars.Calendar(ctx, actor, personID, month)
	if err != nil {
		return nil, false, err
	}
	return cached(ctx, s.cache, PersonDashboardKey(personID, view.Month), s.cfg.CacheTTL, func(ctx context.Context) (*dto.PersonSummary, error) {
		return &dto.PersonSummary{
			PersonID:       personID,
			Month:          view.Month,
			Counts:         view.Counts,
			AttendanceRate: attendanceRate(view.Counts),
			GeneratedAt:    s.now().UTC(),
		}, nil
	})
}

// attendanceRate is the share of recorded days attended, in percent. Leave
// and unrecorded days are excluded.
func attendanceRate(counts map[calendar.DayStatus]int) float64 {
	attended := counts[calendar.StatusPresent] + counts[calendar.StatusTardy] + counts[calendar.StatusHalfDay]
	recorded := attended + counts[calendar.StatusAbsent]
	if recorded == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(recorded)*1000) / 10
}
