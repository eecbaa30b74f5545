package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/calendar"
	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/repository"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
	"github.com/noah-isme/verticx-api/pkg/export"
)

type attendanceRepository interface {
	GetSheet(ctx context.Context, branchID string, courseID *string, date string) (*models.AttendanceSheet, error)
	CreateSheet(ctx context.Context, sheet *models.AttendanceSheet) error
	InsertRecords(ctx context.Context, records []models.AttendanceRecord) error
	ListRecords(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	ListSheetRecords(ctx context.Context, branchID string, courseID *string, date string) ([]models.AttendanceRecord, error)
}

type leaveLister interface {
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error)
}

type personLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AttendanceService saves attendance sheets and serves attendance calendars.
type AttendanceService struct {
	repo      attendanceRepository
	leaves    leaveLister
	people    personLookup
	tx        txRunner
	cache     *CacheService
	bus       eventPublisher
	audit     auditWriter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// AttendanceServiceDeps groups the collaborators of AttendanceService.
type AttendanceServiceDeps struct {
	Repo      attendanceRepository
	Leaves    leaveLister
	People    personLookup
	Tx        txRunner
	Cache     *CacheService
	Bus       eventPublisher
	Audit     auditWriter
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(deps AttendanceServiceDeps) *AttendanceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:      deps.Repo,
		leaves:    deps.Leaves,
		people:    deps.People,
		tx:        deps.Tx,
		cache:     deps.Cache,
		bus:       deps.Bus,
		audit:     deps.Audit,
		metrics:   deps.Metrics,
		validator: newValidator(deps.Validator),
		logger:    logger,
		cacheTTL:  deps.CacheTTL,
	}
}

// SaveSheet stores every record of a sheet and locks it. A sheet that is
// already saved can only change through a change request.
func (s *AttendanceService) SaveSheet(ctx context.Context, actor models.Actor, req dto.SaveSheetRequest) (*dto.SheetResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance sheet")
	}
	branchID, err := resolveBranch(actor, req.BranchID)
	if err != nil {
		return nil, err
	}
	courseID := optionalString(derefString(req.CourseID))

	seen := make(map[string]struct{}, len(req.Records))
	now := time.Now().UTC()
	records := make([]models.AttendanceRecord, 0, len(req.Records))
	personIDs := make([]string, 0, len(req.Records))
	for _, entry := range req.Records {
		personID := strings.TrimSpace(entry.PersonID)
		if _, dup := seen[personID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("person %s appears more than once", personID))
		}
		seen[personID] = struct{}{}
		personIDs = append(personIDs, personID)
		records = append(records, models.AttendanceRecord{
			PersonID:   personID,
			BranchID:   branchID,
			CourseID:   courseID,
			Date:       req.Date,
			Status:     models.AttendanceStatus(strings.ToUpper(entry.Status)),
			RecordedBy: actor.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if _, err := s.repo.GetSheet(ctx, branchID, courseID, req.Date); err == nil {
		return nil, appErrors.ErrLocked
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, internalError(err, "failed to check attendance sheet")
	}

	sheet := &models.AttendanceSheet{BranchID: branchID, CourseID: courseID, Date: req.Date, SavedBy: actor.ID, SavedAt: now}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateSheet(ctx, sheet); err != nil {
			return err
		}
		if err := s.repo.InsertRecords(ctx, records); err != nil {
			return err
		}
		return auditInTx(ctx, s.audit, actor, &models.AuditLog{
			Action:     models.AuditActionAttendanceSave,
			Resource:   "attendance_sheet",
			ResourceID: &sheet.ID,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, appErrors.ErrLocked
		}
		return nil, internalError(err, "failed to save attendance")
	}

	s.metrics.RecordSheetSaved()
	publish(s.bus, events.AttendanceSaved{BranchID: branchID, CourseID: courseID, Date: req.Date, PersonIDs: personIDs})
	s.logger.Debug("attendance sheet saved", zap.String("branch_id", branchID), zap.String("date", req.Date), zap.Int("records", len(records)))

	return &dto.SheetResponse{
		BranchID: branchID,
		CourseID: courseID,
		Date:     req.Date,
		IsSaved:  true,
		SavedAt:  &sheet.SavedAt,
		SavedBy:  sheet.SavedBy,
		Records:  records,
	}, nil
}

// GetSheet returns the sheet of a course (nil for staff) on date.
func (s *AttendanceService) GetSheet(ctx context.Context, actor models.Actor, branchID string, courseID *string, date string) (*dto.SheetResponse, error) {
	if _, err := time.Parse(calendar.DateLayout, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	branchID, err := resolveBranch(actor, branchID)
	if err != nil {
		return nil, err
	}
	courseID = optionalString(derefString(courseID))

	resp := &dto.SheetResponse{BranchID: branchID, CourseID: courseID, Date: date, Records: []models.AttendanceRecord{}}
	sheet, err := s.repo.GetSheet(ctx, branchID, courseID, date)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return resp, nil
	case err != nil:
		return nil, internalError(err, "failed to load attendance sheet")
	}
	records, err := s.repo.ListSheetRecords(ctx, branchID, courseID, date)
	if err != nil {
		return nil, internalError(err, "failed to load attendance records")
	}
	resp.IsSaved = true
	resp.SavedAt = &sheet.SavedAt
	resp.SavedBy = sheet.SavedBy
	if records != nil {
		resp.Records = records
	}
	return resp, nil
}

// ListForPerson returns a person's records, newest first.
func (s *AttendanceService) ListForPerson(ctx context.Context, actor models.Actor, personID string, query dto.AttendanceQuery) ([]models.AttendanceRecord, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err, "invalid attendance query")
	}
	if err := s.authorizePerson(ctx, actor, personID); err != nil {
		return nil, err
	}
	filter := models.AttendanceFilter{PersonID: personID, BranchID: strings.TrimSpace(query.BranchID), From: query.From, To: query.To}
	records, err := s.repo.ListRecords(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list attendance")
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return records, nil
}

// Calendar returns the month view of a person. The bool reports a cache hit.
func (s *AttendanceService) Calendar(ctx context.Context, actor models.Actor, personID, month string) (calendar.MonthView, bool, error) {
	m, err := calendar.ParseMonth(month)
	if err != nil {
		return calendar.MonthView{}, false, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := s.authorizePerson(ctx, actor, personID); err != nil {
		return calendar.MonthView{}, false, err
	}
	return cached(ctx, s.cache, CalendarCacheKey(personID, m.String()), s.cacheTTL, func(ctx context.Context) (calendar.MonthView, error) {
		return s.buildMonthView(ctx, personID, m)
	})
}

// ExportCalendar renders a person's month as csv or pdf.
func (s *AttendanceService) ExportCalendar(ctx context.Context, actor models.Actor, personID, month, format string) ([]byte, export.Format, string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	view, _, err := s.Calendar(ctx, actor, personID, month)
	if err != nil {
		return nil, "", "", err
	}

	table := export.Table{
		Title:   "Attendance " + view.Month,
		Meta:    []string{"Person: " + personID},
		Columns: []string{"Date", "Weekday", "Status"},
	}
	for _, cell := range view.Cells {
		if cell.Date == "" {
			continue
		}
		day, _ := time.Parse(calendar.DateLayout, cell.Date)
		table.Rows = append(table.Rows, []string{cell.Date, day.Weekday().String(), string(cell.Status)})
	}
	for _, status := range calendar.AllStatuses {
		table.Meta = append(table.Meta, fmt.Sprintf("%s: %d", status, view.Counts[status]))
	}

	data, err := export.Render(f, table)
	if err != nil {
		return nil, "", "", internalError(err, "failed to render calendar export")
	}
	return data, f, f.Filename(fmt.Sprintf("attendance-%s-%s", personID, view.Month)), nil
}

func (s *AttendanceService) buildMonthView(ctx context.Context, personID string, m calendar.Month) (calendar.MonthView, error) {
	from := m.First().Format(calendar.DateLayout)
	to := m.Last().Format(calendar.DateLayout)

	records, err := s.repo.ListRecords(ctx, models.AttendanceFilter{PersonID: personID, From: from, To: to})
	if err != nil {
		return calendar.MonthView{}, internalError(err, "failed to load attendance")
	}
	leaves, err := s.leaves.List(ctx, models.LeaveFilter{
		PersonID: personID,
		Statuses: []workflow.Status{workflow.StatusApproved},
		From:     from,
		To:       to,
	})
	if err != nil {
		return calendar.MonthView{}, internalError(err, "failed to load leave applications")
	}
	return calendar.BuildMonthView(m, calendar.AggregateWithin(calendar.MonthWindow(m), toCalendarRecords(records), toCalendarLeaves(leaves))), nil
}

// authorizePerson lets everyone read themselves and branch reviewers read
// anyone in their branch.
func (s *AttendanceService) authorizePerson(ctx context.Context, actor models.Actor, personID string) error {
	if strings.TrimSpace(personID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "person id is required")
	}
	if actor.ID == personID {
		return nil
	}
	switch actor.Role {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal, models.RoleRegistrar:
	default:
		return appErrors.Clone(appErrors.ErrForbidden, "you can only view your own attendance")
	}
	if actor.IsSuperAdmin() || s.people == nil {
		return nil
	}
	person, err := s.people.FindByID(ctx, personID)
	if err != nil {
		return notFoundOr(err, "person")
	}
	if person.BranchID == nil {
		return appErrors.Clone(appErrors.ErrForbidden, "branch is outside your scope")
	}
	return ensureBranch(actor, *person.BranchID)
}

func toCalendarRecords(records []models.AttendanceRecord) []calendar.Record {
	out := make([]calendar.Record, 0, len(records))
	for _, r := range records {
		out = append(out, calendar.Record{Date: r.Date, Status: calendar.DayStatus(r.Status)})
	}
	return out
}

func toCalendarLeaves(leaves []models.LeaveApplication) []calendar.Leave {
	out := make([]calendar.Leave, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, calendar.Leave{StartDate: l.StartDate, EndDate: l.EndDate, Approved: l.Status == workflow.StatusApproved})
	}
	return out
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
