package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/pkg/database"
)

const feeTemplateColumns = `id, branch_id, name, grade_level, monthly_breakdown, lifecycle, created_by, created_at, updated_at`

// FeeTemplateRepository persists fee templates. The annual amount is never
// stored; it is derived from monthly_breakdown on read.
type FeeTemplateRepository struct {
	db *sqlx.DB
}

// NewFeeTemplateRepository constructs the repository.
func NewFeeTemplateRepository(db *sqlx.DB) *FeeTemplateRepository {
	return &FeeTemplateRepository{db: db}
}

// Create inserts a template.
func (r *FeeTemplateRepository) Create(ctx context.Context, tpl *models.FeeTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.Lifecycle == "" {
		tpl.Lifecycle = models.LifecycleDraft
	}
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	const query = `INSERT INTO fee_templates (id, branch_id, name, grade_level, monthly_breakdown, lifecycle, created_by, created_at, updated_at)
	VALUES (:id, :branch_id, :name, :grade_level, :monthly_breakdown, :lifecycle, :created_by, :created_at, :updated_at)`
	if _, err := database.Conn(ctx, r.db).NamedExecContext(ctx, query, tpl); err != nil {
		return fmt.Errorf("create fee template: %w", err)
	}
	return nil
}

// GetByID fetches a template.
func (r *FeeTemplateRepository) GetByID(ctx context.Context, id string) (*models.FeeTemplate, error) {
	query := `SELECT ` + feeTemplateColumns + ` FROM fee_templates WHERE id = $1`
	var tpl models.FeeTemplate
	if err := database.Conn(ctx, r.db).GetContext(ctx, &tpl, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get fee template: %w", err)
	}
	return &tpl, nil
}

// ListByBranch returns a branch's templates ordered by grade then name.
// An empty lifecycle returns both drafts and committed templates.
func (r *FeeTemplateRepository) ListByBranch(ctx context.Context, branchID string, lifecycle models.Lifecycle) ([]models.FeeTemplate, error) {
	query := `SELECT ` + feeTemplateColumns + ` FROM fee_templates WHERE branch_id = $1`
	args := []interface{}{branchID}
	if lifecycle != "" {
		query += ` AND lifecycle = $2`
		args = append(args, lifecycle)
	}
	query += ` ORDER BY grade_level, name`
	var templates []models.FeeTemplate
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("list fee templates: %w", err)
	}
	return templates, nil
}

// Update rewrites the editable fields while the template still has the
// expected lifecycle; sql.ErrNoRows otherwise.
func (r *FeeTemplateRepository) Update(ctx context.Context, tpl *models.FeeTemplate, expected models.Lifecycle) error {
	tpl.UpdatedAt = time.Now().UTC()
	const query = `UPDATE fee_templates
	SET name = $2, grade_level = $3, monthly_breakdown = $4, updated_at = $5
	WHERE id = $1 AND lifecycle = $6`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, tpl.ID, tpl.Name, tpl.GradeLevel, tpl.MonthlyBreakdown, tpl.UpdatedAt, expected)
	if err != nil {
		return fmt.Errorf("update fee template: %w", err)
	}
	return requireAffected(result, "update fee template")
}

// Delete removes the template while it has the expected lifecycle.
func (r *FeeTemplateRepository) Delete(ctx context.Context, id string, expected models.Lifecycle) error {
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM fee_templates WHERE id = $1 AND lifecycle = $2`, id, expected)
	if err != nil {
		return fmt.Errorf("delete fee template: %w", err)
	}
	return requireAffected(result, "delete fee template")
}

// Commit promotes a DRAFT template to COMMITTED.
func (r *FeeTemplateRepository) Commit(ctx context.Context, id string) error {
	const query = `UPDATE fee_templates SET lifecycle = 'COMMITTED', updated_at = $2 WHERE id = $1 AND lifecycle = 'DRAFT'`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("commit fee template: %w", err)
	}
	return requireAffected(result, "commit fee template")
}
