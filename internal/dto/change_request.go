package dto

import "encoding/json"

// SubmitChangeRequest proposes an update or deletion of a committed record.
// IdempotencyKey identifies the form instance and is taken from the
// Idempotency-Key header.
type SubmitChangeRequest struct {
	EntityType     string          `json:"entityType" validate:"required"`
	RequestType    string          `json:"requestType" validate:"required,oneof=UPDATE DELETE"`
	TargetEntityID string          `json:"targetEntityId" validate:"required"`
	NewData        json.RawMessage `json:"newData,omitempty" swaggertype:"object"`
	Reason         string          `json:"reason"`
	IdempotencyKey string          `json:"-"`
}

// EntityUpdateRequest proposes new field values for one record.
type EntityUpdateRequest struct {
	NewData json.RawMessage `json:"newData" swaggertype:"object"`
	Reason  string          `json:"reason"`
}

// EntityDeletionRequest asks for a record to be removed.
type EntityDeletionRequest struct {
	Reason string `json:"reason"`
}

// ChangeRequestQuery mirrors supported listing filters.
type ChangeRequestQuery struct {
	BranchID   string   `form:"branchId"`
	Statuses   []string `form:"status"`
	EntityType string   `form:"entityType"`
}
