package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/workflow"
	"github.com/noah-isme/verticx-api/pkg/database"
)

const leaveColumns = `id, person_id, branch_id, to_char(start_date, 'YYYY-MM-DD') AS start_date,
	to_char(end_date, 'YYYY-MM-DD') AS end_date, reason, status, requested_at, reviewed_by, reviewed_at, review_note`

// LeaveRepository persists leave applications.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create inserts a new application.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveApplication) error {
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	if leave.Status == "" {
		leave.Status = workflow.StatusPending
	}
	if leave.RequestedAt.IsZero() {
		leave.RequestedAt = time.Now().UTC()
	}
	const query = `INSERT INTO leave_applications
	(id, person_id, branch_id, start_date, end_date, reason, status, requested_at)
	VALUES (:id, :person_id, :branch_id, :start_date, :end_date, :reason, :status, :requested_at)`
	if _, err := database.Conn(ctx, r.db).NamedExecContext(ctx, query, leave); err != nil {
		return fmt.Errorf("create leave application: %w", err)
	}
	return nil
}

// GetByID fetches an application by identifier.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*models.LeaveApplication, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_applications WHERE id = $1`
	var leave models.LeaveApplication
	if err := database.Conn(ctx, r.db).GetContext(ctx, &leave, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get leave application: %w", err)
	}
	return &leave, nil
}

// List returns applications newest first. From/To select applications
// overlapping the inclusive range.
func (r *LeaveRepository) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.PersonID != "" {
		add("person_id = $%d", filter.PersonID)
	}
	if filter.BranchID != "" {
		add("branch_id = $%d", filter.BranchID)
	}
	if len(filter.Statuses) > 0 {
		add("status = ANY($%d)", pq.Array(statusStrings(filter.Statuses)))
	}
	if filter.From != "" {
		add("end_date >= $%d", filter.From)
	}
	if filter.To != "" {
		add("start_date <= $%d", filter.To)
	}

	query := `SELECT ` + leaveColumns + ` FROM leave_applications`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if workflow.ReviewedOnly(filter.Statuses) {
		query += " ORDER BY reviewed_at DESC NULLS LAST, id DESC"
	} else {
		query += " ORDER BY requested_at DESC, id DESC"
	}

	var leaves []models.LeaveApplication
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &leaves, query, args...); err != nil {
		return nil, fmt.Errorf("list leave applications: %w", err)
	}
	return leaves, nil
}

// ReviewParams carries a review outcome.
type ReviewParams struct {
	ID         string
	Status     workflow.Status
	ReviewedBy string
	ReviewedAt time.Time
	Note       *string
}

// MarkReviewed moves a PENDING application to its terminal status. It
// returns sql.ErrNoRows when the application is no longer pending.
func (r *LeaveRepository) MarkReviewed(ctx context.Context, params ReviewParams) error {
	const query = `UPDATE leave_applications
	SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5
	WHERE id = $1 AND status = 'PENDING'`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, params.ID, params.Status, params.ReviewedBy, params.ReviewedAt, params.Note)
	if err != nil {
		return fmt.Errorf("review leave application: %w", err)
	}
	return requireAffected(result, "review leave application")
}

// CountPending returns the number of PENDING applications in a branch.
func (r *LeaveRepository) CountPending(ctx context.Context, branchID string) (int, error) {
	var total int
	const query = `SELECT COUNT(*) FROM leave_applications WHERE branch_id = $1 AND status = 'PENDING'`
	if err := database.Conn(ctx, r.db).GetContext(ctx, &total, query, branchID); err != nil {
		return 0, fmt.Errorf("count pending leaves: %w", err)
	}
	return total, nil
}
