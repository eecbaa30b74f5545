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
)

type leaveRepository interface {
	Create(ctx context.Context, leave *models.LeaveApplication) error
	GetByID(ctx context.Context, id string) (*models.LeaveApplication, error)
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error)
	MarkReviewed(ctx context.Context, params repository.ReviewParams) error
}

// LeaveService handles leave applications and their review.
type LeaveService struct {
	repo      leaveRepository
	bus       eventPublisher
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeaveService constructs the leave service.
func NewLeaveService(repo leaveRepository, bus eventPublisher, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{repo: repo, bus: bus, audit: audit, validator: newValidator(validate), logger: logger}
}

// Apply files a PENDING application for the caller.
func (s *LeaveService) Apply(ctx context.Context, actor models.Actor, req dto.ApplyLeaveRequest) (*models.LeaveApplication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid leave application")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, validationError(workflow.ErrReasonRequired, workflow.ErrReasonRequired.Error())
	}
	start, _ := time.Parse(calendar.DateLayout, req.StartDate)
	end, _ := time.Parse(calendar.DateLayout, req.EndDate)
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > calendar.MaxLeaveDays {
		return nil, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("a leave may span at most %d days", calendar.MaxLeaveDays)),
			map[string]string{"endDate": "max"},
		)
	}
	if actor.BranchID == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account is not attached to a branch")
	}

	leave := &models.LeaveApplication{
		PersonID:  actor.ID,
		BranchID:  actor.BranchID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    workflow.StatusPending,
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, internalError(err, "failed to save leave application")
	}
	publish(s.bus, events.LeaveApplied{LeaveID: leave.ID, BranchID: leave.BranchID, PersonID: leave.PersonID})
	writeAudit(ctx, s.audit, s.logger, actor, &models.AuditLog{
		Action:     models.AuditActionLeaveApply,
		Resource:   "leave_application",
		ResourceID: &leave.ID,
	})
	return leave, nil
}

// Review approves or rejects a PENDING application.
func (s *LeaveService) Review(ctx context.Context, actor models.Actor, id string, req dto.ReviewRequest) (*models.LeaveApplication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid review payload")
	}
	leave, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "leave application")
	}
	if err := ensureBranch(actor, leave.BranchID); err != nil {
		return nil, err
	}
	if leave.PersonID == actor.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot review your own leave")
	}

	next, err := workflow.Transition(leave.Status, workflow.Decision(req.Decision))
	if err != nil {
		return nil, workflowError(err)
	}
	now := time.Now().UTC()
	note := optionalString(req.Note)
	if err := s.repo.MarkReviewed(ctx, repository.ReviewParams{ID: leave.ID, Status: next, ReviewedBy: actor.ID, ReviewedAt: now, Note: note}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workflowError(workflow.ErrInvalidTransition)
		}
		return nil, internalError(err, "failed to review leave application")
	}
	leave.Status = next
	leave.ReviewedBy = &actor.ID
	leave.ReviewedAt = &now
	leave.ReviewNote = note

	publish(s.bus, events.LeaveReviewed{LeaveID: leave.ID, BranchID: leave.BranchID, PersonID: leave.PersonID, Status: string(next)})
	writeAudit(ctx, s.audit, s.logger, actor, &models.AuditLog{
		Action:     models.AuditActionLeaveReview,
		Resource:   "leave_application",
		ResourceID: &leave.ID,
		NewValues:  []byte(`{"status":"` + string(next) + `"}`),
	})
	return leave, nil
}

// ListForUser returns a person's applications, newest first.
func (s *LeaveService) ListForUser(ctx context.Context, actor models.Actor, personID string) ([]models.LeaveApplication, error) {
	if personID != actor.ID {
		switch actor.Role {
		case models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal, models.RoleRegistrar:
		default:
			return nil, appErrors.Clone(appErrors.ErrForbidden, "you can only view your own leave")
		}
	}
	filter := models.LeaveFilter{PersonID: personID}
	if !actor.IsSuperAdmin() {
		filter.BranchID = actor.BranchID
	}
	leaves, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list leave applications")
	}
	return sortLeaves(leaves, nil), nil
}

// ListByBranch returns a branch's applications filtered by status.
func (s *LeaveService) ListByBranch(ctx context.Context, actor models.Actor, query dto.LeaveQuery) ([]models.LeaveApplication, error) {
	branchID, err := resolveBranch(actor, query.BranchID)
	if err != nil {
		return nil, err
	}
	statuses, err := parseStatuses(query.Statuses)
	if err != nil {
		return nil, err
	}
	leaves, err := s.repo.List(ctx, models.LeaveFilter{BranchID: branchID, Statuses: statuses})
	if err != nil {
		return nil, internalError(err, "failed to list leave applications")
	}
	return sortLeaves(leaves, statuses), nil
}

// sortLeaves orders like change requests: by review time when only
// reviewed statuses were asked for, by application time otherwise.
func sortLeaves(leaves []models.LeaveApplication, statuses []workflow.Status) []models.LeaveApplication {
	if leaves == nil {
		return []models.LeaveApplication{}
	}
	workflow.SortNewestFirst(leaves, workflow.ReviewedOnly(statuses), models.LeaveApplication.SortKey)
	return leaves
}

// parseStatuses accepts repeated or comma separated status values.
func parseStatuses(raw []string) ([]workflow.Status, error) {
	var statuses []workflow.Status
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToUpper(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			status := workflow.Status(part)
			if !status.Valid() {
				return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status "+part)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}
