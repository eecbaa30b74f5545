package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/verticx-api/internal/workflow"
)

// EntityType names what a change request targets.
type EntityType string

const (
	EntityFeeTemplate     EntityType = "FEE_TEMPLATE"
	EntitySyllabusLecture EntityType = "SYLLABUS_LECTURE"
	EntityExamMark        EntityType = "EXAM_MARK"
	EntityAttendance      EntityType = "ATTENDANCE"
)

// Valid reports whether e is a supported target type.
func (e EntityType) Valid() bool {
	switch e {
	case EntityFeeTemplate, EntitySyllabusLecture, EntityExamMark, EntityAttendance:
		return true
	}
	return false
}

// ChangeRequest asks a reviewer to update or delete a committed record.
// OriginalData is the server-side snapshot taken at submission.
type ChangeRequest struct {
	ID             string               `db:"id" json:"id"`
	RequesterID    string               `db:"requester_id" json:"requesterId"`
	RequesterName  string               `db:"requester_name" json:"requesterName"`
	BranchID       string               `db:"branch_id" json:"branchId"`
	EntityType     EntityType           `db:"entity_type" json:"entityType"`
	RequestType    workflow.RequestType `db:"request_type" json:"requestType"`
	TargetEntityID string               `db:"target_entity_id" json:"targetEntityId"`
	OriginalData   datatypes.JSON       `db:"original_data" json:"originalData"`
	NewData        *datatypes.JSON      `db:"new_data" json:"newData,omitempty"`
	Reason         string               `db:"reason" json:"reason"`
	Status         workflow.Status      `db:"status" json:"status"`
	RequestedAt    time.Time            `db:"requested_at" json:"requestedAt"`
	ReviewedAt     *time.Time           `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewedBy     *string              `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewNote     *string              `db:"review_note" json:"reviewNote,omitempty"`
}

// SortKey exposes the ordering fields to workflow.SortNewestFirst.
func (c ChangeRequest) SortKey() workflow.SortKey {
	return workflow.SortKey{ID: c.ID, RequestedAt: c.RequestedAt, ReviewedAt: c.ReviewedAt}
}

// ChangeRequestFilter constrains listing queries.
type ChangeRequestFilter struct {
	BranchID       string
	Statuses       []workflow.Status
	EntityType     EntityType
	EntityTypes    []EntityType
	RequesterID    string
	TargetEntityID string
}

// PendingCount is the number of PENDING requests for one entity type.
type PendingCount struct {
	EntityType EntityType `db:"entity_type" json:"entityType"`
	Total      int        `db:"total" json:"total"`
}
