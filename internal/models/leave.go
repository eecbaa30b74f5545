package models

import (
	"time"

	"github.com/noah-isme/verticx-api/internal/workflow"
)

// LeaveApplication is a request to be absent over an inclusive date range.
type LeaveApplication struct {
	ID          string          `db:"id" json:"id"`
	PersonID    string          `db:"person_id" json:"personId"`
	BranchID    string          `db:"branch_id" json:"branchId"`
	StartDate   string          `db:"start_date" json:"startDate"`
	EndDate     string          `db:"end_date" json:"endDate"`
	Reason      string          `db:"reason" json:"reason"`
	Status      workflow.Status `db:"status" json:"status"`
	RequestedAt time.Time       `db:"requested_at" json:"requestedAt"`
	ReviewedBy  *string         `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time      `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewNote  *string         `db:"review_note" json:"reviewNote,omitempty"`
}

// SortKey exposes the ordering fields to workflow.SortNewestFirst.
func (l LeaveApplication) SortKey() workflow.SortKey {
	return workflow.SortKey{ID: l.ID, RequestedAt: l.RequestedAt, ReviewedAt: l.ReviewedAt}
}

// LeaveFilter narrows leave listings. From/To select leaves overlapping the range.
type LeaveFilter struct {
	PersonID string
	BranchID string
	Statuses []workflow.Status
	From     string
	To       string
}
