package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/repository"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
)

type changeRequestRepository interface {
	Create(ctx context.Context, req *models.ChangeRequest) error
	GetByID(ctx context.Context, id string) (*models.ChangeRequest, error)
	HasPending(ctx context.Context, entityType models.EntityType, targetID string) (bool, error)
	List(ctx context.Context, filter models.ChangeRequestFilter) ([]models.ChangeRequest, error)
	MarkReviewed(ctx context.Context, params repository.ReviewParams) error
}

type submissionGuard interface {
	Acquire(ctx context.Context, owner, key string) (func(), error)
}

// reviewerRoles lists who may decide requests per entity type besides ADMIN
// and SUPERADMIN.
var reviewerRoles = map[models.EntityType][]models.UserRole{
	models.EntityFeeTemplate:     {models.RolePrincipal},
	models.EntitySyllabusLecture: {models.RolePrincipal},
	models.EntityExamMark:        {models.RolePrincipal, models.RoleRegistrar},
	models.EntityAttendance:      {models.RolePrincipal, models.RoleRegistrar},
}

// CanReview reports whether role may approve or reject requests on entity.
func CanReview(role models.UserRole, entity models.EntityType) bool {
	if role == models.RoleSuperAdmin || role == models.RoleAdmin {
		return true
	}
	for _, r := range reviewerRoles[entity] {
		if r == role {
			return true
		}
	}
	return false
}

func reviewableEntities(role models.UserRole) []models.EntityType {
	var out []models.EntityType
	for _, entity := range []models.EntityType{models.EntityFeeTemplate, models.EntitySyllabusLecture, models.EntityExamMark, models.EntityAttendance} {
		if CanReview(role, entity) {
			out = append(out, entity)
		}
	}
	return out
}

// ChangeRequestService runs the propose and review workflow for committed records.
type ChangeRequestService struct {
	repo      changeRequestRepository
	targets   map[models.EntityType]ChangeTarget
	tx        txRunner
	guard     submissionGuard
	bus       eventPublisher
	audit     auditWriter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// ChangeRequestServiceDeps groups the collaborators of ChangeRequestService.
type ChangeRequestServiceDeps struct {
	Repo      changeRequestRepository
	Targets   map[models.EntityType]ChangeTarget
	Tx        txRunner
	Guard     submissionGuard
	Bus       eventPublisher
	Audit     auditWriter
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewChangeRequestService constructs the service.
func NewChangeRequestService(deps ChangeRequestServiceDeps) *ChangeRequestService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	targets := deps.Targets
	if targets == nil {
		targets = map[models.EntityType]ChangeTarget{}
	}
	guard := deps.Guard
	if guard == nil {
		guard = NewSubmissionGuard(nil, 0, logger)
	}
	return &ChangeRequestService{
		repo:      deps.Repo,
		targets:   targets,
		tx:        deps.Tx,
		guard:     guard,
		bus:       deps.Bus,
		audit:     deps.Audit,
		metrics:   deps.Metrics,
		validator: newValidator(deps.Validator),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a PENDING request against a committed record. Nothing is
// persisted unless the submission passes the workflow gate.
func (s *ChangeRequestService) Submit(ctx context.Context, actor models.Actor, req dto.SubmitChangeRequest) (*models.ChangeRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid change request payload")
	}
	entity := models.EntityType(strings.ToUpper(strings.TrimSpace(req.EntityType)))
	if !entity.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported entity type "+req.EntityType)
	}
	target := s.targets[entity]
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no handler registered for "+string(entity))
	}

	release, err := s.guard.Acquire(ctx, actor.ID, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	defer release()

	snapshot, err := target.Snapshot(ctx, req.TargetEntityID)
	if err != nil {
		return nil, notFoundOr(err, "target record")
	}
	if !snapshot.Committed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "draft entities are edited directly")
	}
	if err := ensureBranch(actor, snapshot.BranchID); err != nil {
		return nil, err
	}

	requestType := workflow.RequestType(req.RequestType)
	if err := workflow.ValidateSubmission(workflow.Submission{
		RequestType: requestType,
		Reason:      req.Reason,
		Original:    snapshot.Data,
		Proposed:    req.NewData,
	}); err != nil {
		return nil, workflowError(err)
	}
	if requestType == workflow.RequestUpdate {
		if err := s.ensureChanges(ctx, target, req.TargetEntityID, snapshot.Data, req.NewData); err != nil {
			return nil, err
		}
	}

	pending, err := s.repo.HasPending(ctx, entity, req.TargetEntityID)
	if err != nil {
		return nil, internalError(err, "failed to check pending requests")
	}
	if pending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a pending request already targets this record")
	}

	cr := &models.ChangeRequest{
		RequesterID:    actor.ID,
		RequesterName:  actor.Name,
		BranchID:       snapshot.BranchID,
		EntityType:     entity,
		RequestType:    requestType,
		TargetEntityID: req.TargetEntityID,
		OriginalData:   datatypes.JSON(snapshot.Data),
		Reason:         strings.TrimSpace(req.Reason),
		Status:         workflow.StatusPending,
		RequestedAt:    s.now(),
	}
	if requestType == workflow.RequestUpdate {
		proposed := datatypes.JSON(req.NewData)
		cr.NewData = &proposed
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, cr); err != nil {
			return err
		}
		return auditInTx(ctx, s.audit, actor, &models.AuditLog{
			Action:     models.AuditActionChangeRequestSubmit,
			Resource:   string(entity),
			ResourceID: &cr.TargetEntityID,
			OldValues:  snapshot.Data,
			NewValues:  req.NewData,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a pending request already targets this record")
		}
		return nil, internalError(err, "failed to save change request")
	}

	s.metrics.RecordSubmission(entity)
	publish(s.bus, events.ChangeRequestSubmitted{RequestID: cr.ID, BranchID: cr.BranchID, EntityType: string(entity), TargetID: cr.TargetEntityID})
	s.logger.Info("change request submitted",
		zap.String("request_id", cr.ID),
		zap.String("entity", string(entity)),
		zap.String("request_type", string(requestType)),
	)
	return cr, nil
}

// Review approves or rejects a PENDING request. The status flip and the
// target mutation share one transaction: if applying fails the request
// stays PENDING and the target is untouched.
func (s *ChangeRequestService) Review(ctx context.Context, actor models.Actor, id string, req dto.ReviewRequest) (*models.ChangeRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid review payload")
	}
	decision := workflow.Decision(req.Decision)

	var reviewed *models.ChangeRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cr, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "change request")
		}
		if err := ensureBranch(actor, cr.BranchID); err != nil {
			return err
		}
		if !CanReview(actor.Role, cr.EntityType) {
			return appErrors.Clone(appErrors.ErrForbidden, "you cannot review "+string(cr.EntityType)+" requests")
		}
		if cr.RequesterID == actor.ID {
			return appErrors.Clone(appErrors.ErrForbidden, "requests need a second reviewer")
		}
		next, err := workflow.Transition(cr.Status, decision)
		if err != nil {
			return workflowError(err)
		}

		now := s.now()
		note := optionalString(req.Note)
		if err := s.repo.MarkReviewed(ctx, repository.ReviewParams{ID: cr.ID, Status: next, ReviewedBy: actor.ID, ReviewedAt: now, Note: note}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return workflowError(workflow.ErrInvalidTransition)
			}
			return internalError(err, "failed to review change request")
		}
		if next == workflow.StatusApproved {
			if err := s.apply(ctx, cr); err != nil {
				return err
			}
		}

		cr.Status = next
		cr.ReviewedBy = &actor.ID
		cr.ReviewedAt = &now
		cr.ReviewNote = note
		reviewed = cr
		return auditInTx(ctx, s.audit, actor, reviewAudit(cr, decision))
	})
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, internalError(err, "failed to review change request")
	}

	s.metrics.RecordReview(reviewed.EntityType, string(decision))
	publish(s.bus, events.ChangeRequestReviewed{
		RequestID:  reviewed.ID,
		BranchID:   reviewed.BranchID,
		EntityType: string(reviewed.EntityType),
		TargetID:   reviewed.TargetEntityID,
		Decision:   string(decision),
		PersonID:   snapshotPerson(reviewed.OriginalData),
	})
	s.logger.Info("change request reviewed", zap.String("request_id", reviewed.ID), zap.String("decision", string(decision)))
	return reviewed, nil
}

func reviewAudit(cr *models.ChangeRequest, decision workflow.Decision) *models.AuditLog {
	action := models.AuditActionChangeRequestReject
	if decision == workflow.DecisionApproved {
		action = models.AuditActionChangeRequestApprove
	}
	log := &models.AuditLog{
		Action:     action,
		Resource:   string(cr.EntityType),
		ResourceID: &cr.TargetEntityID,
		OldValues:  cr.OriginalData,
	}
	if cr.NewData != nil {
		log.NewValues = *cr.NewData
	}
	return log
}

// ensureChanges compares the record as it would be stored after approval
// with its current snapshot, so proposals that only repeat current values,
// differ in letter case or touch nothing editable never queue.
func (s *ChangeRequestService) ensureChanges(ctx context.Context, target ChangeTarget, id string, original, proposed []byte) error {
	merged, err := target.Preview(ctx, id, proposed)
	if err != nil {
		return notFoundOr(err, "target record")
	}
	noop, err := workflow.IsNoOp(original, merged)
	if err != nil {
		return internalError(err, "failed to compare proposal")
	}
	if noop {
		return workflowError(workflow.ErrNoChange)
	}
	return nil
}

func (s *ChangeRequestService) apply(ctx context.Context, cr *models.ChangeRequest) error {
	target := s.targets[cr.EntityType]
	if target == nil {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "no handler registered for "+string(cr.EntityType))
	}
	var err error
	switch cr.RequestType {
	case workflow.RequestUpdate:
		if cr.NewData == nil {
			return validationError(workflow.ErrProposalRequired, workflow.ErrProposalRequired.Error())
		}
		err = target.ApplyUpdate(ctx, cr.TargetEntityID, *cr.NewData)
	case workflow.RequestDelete:
		err = target.Delete(ctx, cr.TargetEntityID)
	default:
		return validationError(workflow.ErrUnknownRequestType, workflow.ErrUnknownRequestType.Error())
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "target record no longer exists")
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return err
		}
		return internalError(err, "failed to apply change request")
	}
	return nil
}

// List returns requests newest first. Requesters without reviewer rights
// for an entity type only see their own requests of that type.
func (s *ChangeRequestService) List(ctx context.Context, actor models.Actor, query dto.ChangeRequestQuery) ([]models.ChangeRequest, error) {
	filter := models.ChangeRequestFilter{}
	switch {
	case actor.IsSuperAdmin():
		filter.BranchID = strings.TrimSpace(query.BranchID)
	case actor.BranchID == "":
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account is not attached to a branch")
	default:
		if err := ensureBranch(actor, firstNonEmpty(query.BranchID, actor.BranchID)); err != nil {
			return nil, err
		}
		filter.BranchID = actor.BranchID
	}

	statuses, err := parseStatuses(query.Statuses)
	if err != nil {
		return nil, err
	}
	filter.Statuses = statuses
	if raw := strings.TrimSpace(query.EntityType); raw != "" {
		entity := models.EntityType(strings.ToUpper(raw))
		if !entity.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported entity type "+raw)
		}
		filter.EntityType = entity
	}

	switch actor.Role {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal:
	case models.RoleTeacher, models.RoleRegistrar:
		filter.RequesterID = actor.ID
		filter.EntityTypes = reviewableEntities(actor.Role)
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot list change requests")
	}

	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list change requests")
	}
	if requests == nil {
		return []models.ChangeRequest{}, nil
	}
	workflow.SortNewestFirst(requests, workflow.ReviewedOnly(statuses), models.ChangeRequest.SortKey)
	return requests, nil
}

// Get returns one request visible to the actor.
func (s *ChangeRequestService) Get(ctx context.Context, actor models.Actor, id string) (*models.ChangeRequest, error) {
	cr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "change request")
	}
	if err := ensureBranch(actor, cr.BranchID); err != nil {
		return nil, err
	}
	if cr.RequesterID != actor.ID && !CanReview(actor.Role, cr.EntityType) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot view this request")
	}
	return cr, nil
}

// snapshotPerson extracts the person a snapshot belongs to, if any.
func snapshotPerson(data []byte) string {
	var ref struct {
		PersonID  string `json:"personId"`
		StudentID string `json:"studentId"`
	}
	if len(data) == 0 || json.Unmarshal(data, &ref) != nil {
		return ""
	}
	return firstNonEmpty(ref.PersonID, ref.StudentID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
