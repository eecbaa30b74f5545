package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin                = "LOGIN"
	AuditActionUserCreate           = "USER_CREATE"
	AuditActionAttendanceSave       = "ATTENDANCE_SAVE"
	AuditActionLeaveApply           = "LEAVE_APPLY"
	AuditActionLeaveReview          = "LEAVE_REVIEW"
	AuditActionChangeRequestSubmit  = "CHANGE_REQUEST_SUBMIT"
	AuditActionChangeRequestApprove = "CHANGE_REQUEST_APPROVE"
	AuditActionChangeRequestReject  = "CHANGE_REQUEST_REJECT"
	AuditActionEntityCreate         = "ENTITY_CREATE"
	AuditActionEntityUpdate         = "ENTITY_UPDATE"
	AuditActionEntityDelete         = "ENTITY_DELETE"
	AuditActionEntityCommit         = "ENTITY_COMMIT"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"userId,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	OldValues  []byte    `db:"old_values" json:"-"`
	NewValues  []byte    `db:"new_values" json:"-"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
