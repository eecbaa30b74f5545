package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/repository"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

type examMarkRepository interface {
	Create(ctx context.Context, mark *models.ExamMark) error
	GetByID(ctx context.Context, id string) (*models.ExamMark, error)
	ListByExam(ctx context.Context, examID string) ([]models.ExamMark, error)
	Update(ctx context.Context, mark *models.ExamMark, expected models.Lifecycle) error
	Delete(ctx context.Context, id string, expected models.Lifecycle) error
	CommitExam(ctx context.Context, examID string) (int64, error)
}

// ExamMarkService manages exam marks. Marks are committed per exam.
type ExamMarkService struct {
	repo      examMarkRepository
	requests  changeRequestSubmitter
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamMarkService constructs the service.
func NewExamMarkService(repo examMarkRepository, requests changeRequestSubmitter, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *ExamMarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamMarkService{repo: repo, requests: requests, audit: audit, validator: newValidator(validate), logger: logger}
}

// Create stores a DRAFT mark. One mark per student and exam.
func (s *ExamMarkService) Create(ctx context.Context, actor models.Actor, req dto.ExamMarkRequest) (*models.ExamMark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid exam mark")
	}
	if err := validateScore(req.Score, req.MaxScore); err != nil {
		return nil, err
	}
	branchID, err := resolveBranch(actor, req.BranchID)
	if err != nil {
		return nil, err
	}
	mark := &models.ExamMark{
		BranchID:  branchID,
		ExamID:    strings.TrimSpace(req.ExamID),
		CourseID:  strings.TrimSpace(req.CourseID),
		StudentID: strings.TrimSpace(req.StudentID),
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		Lifecycle: models.LifecycleDraft,
		EnteredBy: actor.ID,
	}
	if err := s.repo.Create(ctx, mark); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a mark for this student and exam already exists")
		}
		return nil, internalError(err, "failed to create exam mark")
	}
	s.record(ctx, actor, mark.ID, models.AuditActionEntityCreate)
	return mark, nil
}

// UpdateDraft changes the score of a DRAFT mark.
func (s *ExamMarkService) UpdateDraft(ctx context.Context, actor models.Actor, id string, req dto.ExamMarkRequest) (*models.ExamMark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid exam mark")
	}
	if err := validateScore(req.Score, req.MaxScore); err != nil {
		return nil, err
	}
	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "exam mark")
	}
	if err := guardDraft(actor, mark.BranchID, mark.Lifecycle); err != nil {
		return nil, err
	}
	mark.Score = req.Score
	mark.MaxScore = req.MaxScore
	if err := s.repo.Update(ctx, mark, models.LifecycleDraft); err != nil {
		return nil, draftWriteError(err, "update exam mark")
	}
	s.record(ctx, actor, mark.ID, models.AuditActionEntityUpdate)
	return mark, nil
}

// DeleteDraft removes a DRAFT mark.
func (s *ExamMarkService) DeleteDraft(ctx context.Context, actor models.Actor, id string) error {
	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "exam mark")
	}
	if err := guardDraft(actor, mark.BranchID, mark.Lifecycle); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, models.LifecycleDraft); err != nil {
		return draftWriteError(err, "delete exam mark")
	}
	s.record(ctx, actor, id, models.AuditActionEntityDelete)
	return nil
}

// CommitExam locks every draft mark of an exam and returns how many moved.
func (s *ExamMarkService) CommitExam(ctx context.Context, actor models.Actor, examID string) (*dto.CommitResult, error) {
	marks, err := s.ListByExam(ctx, actor, examID)
	if err != nil {
		return nil, err
	}
	if len(marks) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam has no marks")
	}
	n, err := s.repo.CommitExam(ctx, examID)
	if err != nil {
		return nil, internalError(err, "failed to commit exam marks")
	}
	s.record(ctx, actor, examID, models.AuditActionEntityCommit)
	return &dto.CommitResult{Committed: n}, nil
}

// ListByExam returns the marks of an exam. Marks from another branch are
// never mixed into one exam, so any foreign mark denies the whole list.
func (s *ExamMarkService) ListByExam(ctx context.Context, actor models.Actor, examID string) ([]models.ExamMark, error) {
	if strings.TrimSpace(examID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "examId is required")
	}
	marks, err := s.repo.ListByExam(ctx, examID)
	if err != nil {
		return nil, internalError(err, "failed to list exam marks")
	}
	for _, m := range marks {
		if err := ensureBranch(actor, m.BranchID); err != nil {
			return nil, err
		}
	}
	if marks == nil {
		marks = []models.ExamMark{}
	}
	return marks, nil
}

// Get returns one mark.
func (s *ExamMarkService) Get(ctx context.Context, actor models.Actor, id string) (*models.ExamMark, error) {
	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "exam mark")
	}
	if err := ensureBranch(actor, mark.BranchID); err != nil {
		return nil, err
	}
	return mark, nil
}

// RequestUpdate proposes a new score for a committed mark.
func (s *ExamMarkService) RequestUpdate(ctx context.Context, actor models.Actor, id, key string, req dto.EntityUpdateRequest) (*models.ChangeRequest, error) {
	return requestUpdate(ctx, s.requests, actor, models.EntityExamMark, id, key, req)
}

// RequestDeletion proposes removing a committed mark.
func (s *ExamMarkService) RequestDeletion(ctx context.Context, actor models.Actor, id, key string, req dto.EntityDeletionRequest) (*models.ChangeRequest, error) {
	return requestDeletion(ctx, s.requests, actor, models.EntityExamMark, id, key, req)
}

func (s *ExamMarkService) record(ctx context.Context, actor models.Actor, id, action string) {
	writeAudit(ctx, s.audit, s.logger, actor, &models.AuditLog{Action: action, Resource: string(models.EntityExamMark), ResourceID: &id})
}

func validateScore(score, maxScore float64) error {
	if maxScore <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "maxScore must be positive")
	}
	if score < 0 || score > maxScore {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("score must be between 0 and %g", maxScore))
	}
	return nil
}
