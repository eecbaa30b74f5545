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

const changeRequestColumns = `id, requester_id, requester_name, branch_id, entity_type, request_type, target_entity_id,
	original_data, new_data, reason, status, requested_at, reviewed_at, reviewed_by, review_note`

// ChangeRequestRepository persists change requests.
type ChangeRequestRepository struct {
	db *sqlx.DB
}

// NewChangeRequestRepository constructs the repository.
func NewChangeRequestRepository(db *sqlx.DB) *ChangeRequestRepository {
	return &ChangeRequestRepository{db: db}
}

// Create inserts a new request. The partial unique index on
// (entity_type, target_entity_id) WHERE status = 'PENDING' turns a second
// pending request for the same target into ErrAlreadyExists.
func (r *ChangeRequestRepository) Create(ctx context.Context, req *models.ChangeRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = workflow.StatusPending
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	const query = `INSERT INTO change_requests
	(id, requester_id, requester_name, branch_id, entity_type, request_type, target_entity_id, original_data, new_data, reason, status, requested_at)
	VALUES (:id, :requester_id, :requester_name, :branch_id, :entity_type, :request_type, :target_entity_id, :original_data, :new_data, :reason, :status, :requested_at)
	ON CONFLICT DO NOTHING`
	result, err := database.Conn(ctx, r.db).NamedExecContext(ctx, query, req)
	if err != nil {
		return fmt.Errorf("create change request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check change request rows: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// GetByID fetches a request by identifier.
func (r *ChangeRequestRepository) GetByID(ctx context.Context, id string) (*models.ChangeRequest, error) {
	query := `SELECT ` + changeRequestColumns + ` FROM change_requests WHERE id = $1`
	var req models.ChangeRequest
	if err := database.Conn(ctx, r.db).GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get change request: %w", err)
	}
	return &req, nil
}

// HasPending reports whether a PENDING request already targets the entity.
func (r *ChangeRequestRepository) HasPending(ctx context.Context, entityType models.EntityType, targetID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM change_requests WHERE entity_type = $1 AND target_entity_id = $2 AND status = 'PENDING')`
	var exists bool
	if err := database.Conn(ctx, r.db).GetContext(ctx, &exists, query, entityType, targetID); err != nil {
		return false, fmt.Errorf("check pending change request: %w", err)
	}
	return exists, nil
}

// List returns requests matching the filter. When the status filter selects
// reviewed requests only, rows come back by review time.
func (r *ChangeRequestRepository) List(ctx context.Context, filter models.ChangeRequestFilter) ([]models.ChangeRequest, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.BranchID != "" {
		add("branch_id = $%d", filter.BranchID)
	}
	if len(filter.Statuses) > 0 {
		add("status = ANY($%d)", pq.Array(statusStrings(filter.Statuses)))
	}
	if filter.EntityType != "" {
		add("entity_type = $%d", filter.EntityType)
	}
	if filter.RequesterID != "" && len(filter.EntityTypes) > 0 {
		args = append(args, filter.RequesterID, pq.Array(entityStrings(filter.EntityTypes)))
		conditions = append(conditions, fmt.Sprintf("(requester_id = $%d OR entity_type = ANY($%d))", len(args)-1, len(args)))
	} else if filter.RequesterID != "" {
		add("requester_id = $%d", filter.RequesterID)
	} else if len(filter.EntityTypes) > 0 {
		add("entity_type = ANY($%d)", pq.Array(entityStrings(filter.EntityTypes)))
	}
	if filter.TargetEntityID != "" {
		add("target_entity_id = $%d", filter.TargetEntityID)
	}

	query := `SELECT ` + changeRequestColumns + ` FROM change_requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if workflow.ReviewedOnly(filter.Statuses) {
		query += " ORDER BY reviewed_at DESC NULLS LAST, id DESC"
	} else {
		query += " ORDER BY requested_at DESC, id DESC"
	}

	var requests []models.ChangeRequest
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("list change requests: %w", err)
	}
	return requests, nil
}

// MarkReviewed flips a PENDING request to its terminal status. It returns
// sql.ErrNoRows when the request was already reviewed.
func (r *ChangeRequestRepository) MarkReviewed(ctx context.Context, params ReviewParams) error {
	const query = `UPDATE change_requests
	SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5
	WHERE id = $1 AND status = 'PENDING'`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, params.ID, params.Status, params.ReviewedBy, params.ReviewedAt, params.Note)
	if err != nil {
		return fmt.Errorf("review change request: %w", err)
	}
	return requireAffected(result, "review change request")
}

// CountPendingByEntity groups a branch's PENDING requests by entity type.
func (r *ChangeRequestRepository) CountPendingByEntity(ctx context.Context, branchID string) ([]models.PendingCount, error) {
	const query = `SELECT entity_type, COUNT(*) AS total FROM change_requests
	WHERE branch_id = $1 AND status = 'PENDING'
	GROUP BY entity_type ORDER BY entity_type`
	var counts []models.PendingCount
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &counts, query, branchID); err != nil {
		return nil, fmt.Errorf("count pending change requests: %w", err)
	}
	return counts, nil
}
