package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
	"github.com/noah-isme/verticx-api/pkg/export"
)

type feeTemplateRepository interface {
	Create(ctx context.Context, tpl *models.FeeTemplate) error
	GetByID(ctx context.Context, id string) (*models.FeeTemplate, error)
	ListByBranch(ctx context.Context, branchID string, lifecycle models.Lifecycle) ([]models.FeeTemplate, error)
	Update(ctx context.Context, tpl *models.FeeTemplate, expected models.Lifecycle) error
	Delete(ctx context.Context, id string, expected models.Lifecycle) error
	Commit(ctx context.Context, id string) error
}

// FeeTemplateService manages fee templates through their draft and
// committed lifecycle.
type FeeTemplateService struct {
	repo      feeTemplateRepository
	requests  changeRequestSubmitter
	bus       eventPublisher
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeTemplateService constructs the service.
func NewFeeTemplateService(repo feeTemplateRepository, requests changeRequestSubmitter, bus eventPublisher, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *FeeTemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeTemplateService{repo: repo, requests: requests, bus: bus, audit: audit, validator: newValidator(validate), logger: logger}
}

// Create stores a DRAFT template.
func (s *FeeTemplateService) Create(ctx context.Context, actor models.Actor, req dto.FeeTemplateRequest) (*models.FeeTemplate, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	branchID, err := resolveBranch(actor, req.BranchID)
	if err != nil {
		return nil, err
	}
	tpl := &models.FeeTemplate{
		BranchID:         branchID,
		Name:             req.Name,
		GradeLevel:       req.GradeLevel,
		MonthlyBreakdown: req.MonthlyBreakdown,
		Lifecycle:        models.LifecycleDraft,
		CreatedBy:        actor.ID,
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, internalError(err, "failed to create fee template")
	}
	s.changed(ctx, actor, tpl, models.AuditActionEntityCreate)
	return tpl, nil
}

// UpdateDraft rewrites a DRAFT template.
func (s *FeeTemplateService) UpdateDraft(ctx context.Context, actor models.Actor, id string, req dto.FeeTemplateRequest) (*models.FeeTemplate, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	tpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "fee template")
	}
	if err := guardDraft(actor, tpl.BranchID, tpl.Lifecycle); err != nil {
		return nil, err
	}
	tpl.Name = req.Name
	tpl.GradeLevel = req.GradeLevel
	tpl.MonthlyBreakdown = req.MonthlyBreakdown
	if err := s.repo.Update(ctx, tpl, models.LifecycleDraft); err != nil {
		return nil, draftWriteError(err, "update fee template")
	}
	s.changed(ctx, actor, tpl, models.AuditActionEntityUpdate)
	return tpl, nil
}

// DeleteDraft removes a DRAFT template.
func (s *FeeTemplateService) DeleteDraft(ctx context.Context, actor models.Actor, id string) error {
	tpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "fee template")
	}
	if err := guardDraft(actor, tpl.BranchID, tpl.Lifecycle); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, models.LifecycleDraft); err != nil {
		return draftWriteError(err, "delete fee template")
	}
	s.changed(ctx, actor, tpl, models.AuditActionEntityDelete)
	return nil
}

// Commit locks a DRAFT template. Further changes need a change request.
func (s *FeeTemplateService) Commit(ctx context.Context, actor models.Actor, id string) (*models.FeeTemplate, error) {
	tpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "fee template")
	}
	if err := ensureBranch(actor, tpl.BranchID); err != nil {
		return nil, err
	}
	if tpl.Lifecycle == models.LifecycleCommitted {
		return nil, alreadyCommitted("fee template")
	}
	if err := s.repo.Commit(ctx, id); err != nil {
		if isNoRows(err) {
			return nil, alreadyCommitted("fee template")
		}
		return nil, internalError(err, "failed to commit fee template")
	}
	tpl.Lifecycle = models.LifecycleCommitted
	s.changed(ctx, actor, tpl, models.AuditActionEntityCommit)
	return tpl, nil
}

// List returns a branch's templates. lifecycle may be empty for both.
func (s *FeeTemplateService) List(ctx context.Context, actor models.Actor, branchID, lifecycle string) ([]models.FeeTemplate, error) {
	branchID, err := resolveBranch(actor, branchID)
	if err != nil {
		return nil, err
	}
	lc := models.Lifecycle(strings.ToUpper(strings.TrimSpace(lifecycle)))
	if lc != "" && lc != models.LifecycleDraft && lc != models.LifecycleCommitted {
		return nil, appErrors.Clone(appErrors.ErrValidation, "lifecycle must be DRAFT or COMMITTED")
	}
	templates, err := s.repo.ListByBranch(ctx, branchID, lc)
	if err != nil {
		return nil, internalError(err, "failed to list fee templates")
	}
	if templates == nil {
		templates = []models.FeeTemplate{}
	}
	return templates, nil
}

// Get returns one template of the actor's branch.
func (s *FeeTemplateService) Get(ctx context.Context, actor models.Actor, id string) (*models.FeeTemplate, error) {
	tpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "fee template")
	}
	if err := ensureBranch(actor, tpl.BranchID); err != nil {
		return nil, err
	}
	return tpl, nil
}

// RequestUpdate proposes new values for a committed template.
func (s *FeeTemplateService) RequestUpdate(ctx context.Context, actor models.Actor, id, key string, req dto.EntityUpdateRequest) (*models.ChangeRequest, error) {
	return requestUpdate(ctx, s.requests, actor, models.EntityFeeTemplate, id, key, req)
}

// RequestDeletion proposes removing a committed template.
func (s *FeeTemplateService) RequestDeletion(ctx context.Context, actor models.Actor, id, key string, req dto.EntityDeletionRequest) (*models.ChangeRequest, error) {
	return requestDeletion(ctx, s.requests, actor, models.EntityFeeTemplate, id, key, req)
}

// ExportPDF renders the monthly breakdown of a template.
func (s *FeeTemplateService) ExportPDF(ctx context.Context, actor models.Actor, id string) ([]byte, string, error) {
	tpl, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	table := export.Table{
		Title:   "Fee template: " + tpl.Name,
		Meta:    []string{fmt.Sprintf("Grade level: %d", tpl.GradeLevel), "Status: " + string(tpl.Lifecycle)},
		Columns: []string{"Month", "Components", "Total"},
		Footer:  []string{"Annual", "", formatAmount(tpl.Amount())},
	}
	for _, month := range tpl.MonthlyBreakdown {
		parts := make([]string, 0, len(month.Breakdown))
		for _, c := range month.Breakdown {
			parts = append(parts, c.Component+" "+formatAmount(c.Amount))
		}
		table.Rows = append(table.Rows, []string{month.Month, strings.Join(parts, ", "), formatAmount(month.Total())})
	}
	data, err := export.Render(export.FormatPDF, table)
	if err != nil {
		return nil, "", internalError(err, "failed to render fee template")
	}
	return data, export.FormatPDF.Filename("fee-template-" + tpl.ID), nil
}

func (s *FeeTemplateService) validate(req *dto.FeeTemplateRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid fee template")
	}
	req.Name = strings.TrimSpace(req.Name)
	normalizeBreakdown(req.MonthlyBreakdown)
	return validateFeeTemplate(req.Name, req.MonthlyBreakdown)
}

func normalizeBreakdown(months []models.MonthlyFee) {
	for i := range months {
		months[i].Month = strings.ToUpper(strings.TrimSpace(months[i].Month))
		for j := range months[i].Breakdown {
			c := &months[i].Breakdown[j]
			c.Component = strings.TrimSpace(c.Component)
		}
	}
}

func (s *FeeTemplateService) changed(ctx context.Context, actor models.Actor, tpl *models.FeeTemplate, action string) {
	publish(s.bus, events.FeeTemplateChanged{TemplateID: tpl.ID, BranchID: tpl.BranchID})
	writeAudit(ctx, s.audit, s.logger, actor, &models.AuditLog{Action: action, Resource: string(models.EntityFeeTemplate), ResourceID: &tpl.ID})
}

// validateFeeTemplate checks the twelve academic months in order, named
// components and non-negative amounts.
func validateFeeTemplate(name string, months []models.MonthlyFee) error {
	if strings.TrimSpace(name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if len(months) != len(models.AcademicMonths) {
		return appErrors.Clone(appErrors.ErrValidation, "monthlyBreakdown must list 12 months")
	}
	for i, month := range months {
		if !strings.EqualFold(month.Month, models.AcademicMonths[i]) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("month %d must be %s", i+1, models.AcademicMonths[i]))
		}
		for _, c := range month.Breakdown {
			if strings.TrimSpace(c.Component) == "" {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s has a component without a name", models.AcademicMonths[i]))
			}
			if c.Amount < 0 || math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %s must be a non-negative amount", models.AcademicMonths[i], c.Component))
			}
		}
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
