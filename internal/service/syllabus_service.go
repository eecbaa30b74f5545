package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

type syllabusRepository interface {
	Create(ctx context.Context, lecture *models.SyllabusLecture) error
	GetByID(ctx context.Context, id string) (*models.SyllabusLecture, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.SyllabusLecture, error)
	Update(ctx context.Context, lecture *models.SyllabusLecture, expected models.Lifecycle) error
	Delete(ctx context.Context, id string, expected models.Lifecycle) error
	Commit(ctx context.Context, id string) error
}

// SyllabusService manages syllabus lectures.
type SyllabusService struct {
	repo      syllabusRepository
	requests  changeRequestSubmitter
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSyllabusService constructs the service.
func NewSyllabusService(repo syllabusRepository, requests changeRequestSubmitter, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *SyllabusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyllabusService{repo: repo, requests: requests, audit: audit, validator: newValidator(validate), logger: logger}
}

// Create stores a DRAFT lecture taught by the caller.
func (s *SyllabusService) Create(ctx context.Context, actor models.Actor, req dto.SyllabusLectureRequest) (*models.SyllabusLecture, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid syllabus lecture")
	}
	branchID, err := resolveBranch(actor, req.BranchID)
	if err != nil {
		return nil, err
	}
	lecture := &models.SyllabusLecture{
		BranchID:      branchID,
		CourseID:      strings.TrimSpace(req.CourseID),
		TeacherID:     actor.ID,
		Title:         strings.TrimSpace(req.Title),
		Topics:        strings.TrimSpace(req.Topics),
		ScheduledDate: req.ScheduledDate,
		Lifecycle:     models.LifecycleDraft,
	}
	if err := validateLecture(lecture); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, lecture); err != nil {
		return nil, internalError(err, "failed to create syllabus lecture")
	}
	s.record(ctx, actor, lecture.ID, models.AuditActionEntityCreate)
	return lecture, nil
}

// UpdateDraft rewrites a DRAFT lecture.
func (s *SyllabusService) UpdateDraft(ctx context.Context, actor models.Actor, id string, req dto.SyllabusLectureRequest) (*models.SyllabusLecture, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid syllabus lecture")
	}
	lecture, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "syllabus lecture")
	}
	if err := guardDraft(actor, lecture.BranchID, lecture.Lifecycle); err != nil {
		return nil, err
	}
	lecture.CourseID = strings.TrimSpace(req.CourseID)
	lecture.Title = strings.TrimSpace(req.Title)
	lecture.Topics = strings.TrimSpace(req.Topics)
	lecture.ScheduledDate = req.ScheduledDate
	if err := validateLecture(lecture); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, lecture, models.LifecycleDraft); err != nil {
		return nil, draftWriteError(err, "update syllabus lecture")
	}
	s.record(ctx, actor, lecture.ID, models.AuditActionEntityUpdate)
	return lecture, nil
}

// DeleteDraft removes a DRAFT lecture.
func (s *SyllabusService) DeleteDraft(ctx context.Context, actor models.Actor, id string) error {
	lecture, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "syllabus lecture")
	}
	if err := guardDraft(actor, lecture.BranchID, lecture.Lifecycle); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, models.LifecycleDraft); err != nil {
		return draftWriteError(err, "delete syllabus lecture")
	}
	s.record(ctx, actor, id, models.AuditActionEntityDelete)
	return nil
}

// Commit locks a DRAFT lecture.
func (s *SyllabusService) Commit(ctx context.Context, actor models.Actor, id string) (*models.SyllabusLecture, error) {
	lecture, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "syllabus lecture")
	}
	if err := ensureBranch(actor, lecture.BranchID); err != nil {
		return nil, err
	}
	if lecture.Lifecycle == models.LifecycleCommitted {
		return nil, alreadyCommitted("syllabus lecture")
	}
	if err := s.repo.Commit(ctx, id); err != nil {
		if isNoRows(err) {
			return nil, alreadyCommitted("syllabus lecture")
		}
		return nil, internalError(err, "failed to commit syllabus lecture")
	}
	lecture.Lifecycle = models.LifecycleCommitted
	s.record(ctx, actor, id, models.AuditActionEntityCommit)
	return lecture, nil
}

// ListByCourse returns the lectures of a course visible to the actor.
func (s *SyllabusService) ListByCourse(ctx context.Context, actor models.Actor, courseID string) ([]models.SyllabusLecture, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}
	lectures, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, internalError(err, "failed to list syllabus lectures")
	}
	visible := make([]models.SyllabusLecture, 0, len(lectures))
	for _, l := range lectures {
		if actor.CanAccessBranch(l.BranchID) {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

// Get returns one lecture.
func (s *SyllabusService) Get(ctx context.Context, actor models.Actor, id string) (*models.SyllabusLecture, error) {
	lecture, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "syllabus lecture")
	}
	if err := ensureBranch(actor, lecture.BranchID); err != nil {
		return nil, err
	}
	return lecture, nil
}

// RequestUpdate proposes new values for a committed lecture.
func (s *SyllabusService) RequestUpdate(ctx context.Context, actor models.Actor, id, key string, req dto.EntityUpdateRequest) (*models.ChangeRequest, error) {
	return requestUpdate(ctx, s.requests, actor, models.EntitySyllabusLecture, id, key, req)
}

// RequestDeletion proposes removing a committed lecture.
func (s *SyllabusService) RequestDeletion(ctx context.Context, actor models.Actor, id, key string, req dto.EntityDeletionRequest) (*models.ChangeRequest, error) {
	return requestDeletion(ctx, s.requests, actor, models.EntitySyllabusLecture, id, key, req)
}

func (s *SyllabusService) record(ctx context.Context, actor models.Actor, id, action string) {
	writeAudit(ctx, s.audit, s.logger, actor, &models.AuditLog{Action: action, Resource: string(models.EntitySyllabusLecture), ResourceID: &id})
}

func validateLecture(l *models.SyllabusLecture) error {
	if strings.TrimSpace(l.Title) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	if strings.TrimSpace(l.CourseID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}
	if _, err := time.Parse("2006-01-02", l.ScheduledDate); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "scheduledDate must be YYYY-MM-DD")
	}
	return nil
}
