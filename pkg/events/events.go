package events

// Event type names published by the services.
const (
	TypeAttendanceSaved        = "attendance.saved"
	TypeLeaveApplied           = "leave.applied"
	TypeLeaveReviewed          = "leave.reviewed"
	TypeChangeRequestSubmitted = "change_request.submitted"
	TypeChangeRequestReviewed  = "change_request.reviewed"
	TypeFeeTemplateChanged     = "fee_template.changed"
)

// Event is anything that can travel on the bus.
type Event interface {
	EventType() string
}

// AttendanceSaved is published once a sheet has been committed.
type AttendanceSaved struct {
	BranchID  string
	CourseID  *string
	Date      string
	PersonIDs []string
}

func (AttendanceSaved) EventType() string { return TypeAttendanceSaved }

// LeaveApplied is published when a PENDING leave application is filed.
type LeaveApplied struct {
	LeaveID  string
	BranchID string
	PersonID string
}

func (LeaveApplied) EventType() string { return TypeLeaveApplied }

// LeaveReviewed is published after a leave application reaches a terminal state.
type LeaveReviewed struct {
	LeaveID  string
	BranchID string
	PersonID string
	Status   string
}

func (LeaveReviewed) EventType() string { return TypeLeaveReviewed }

// ChangeRequestSubmitted is published when a new PENDING request is stored.
type ChangeRequestSubmitted struct {
	RequestID  string
	BranchID   string
	EntityType string
	TargetID   string
}

func (ChangeRequestSubmitted) EventType() string { return TypeChangeRequestSubmitted }

// ChangeRequestReviewed is published after approve or reject. PersonID is set
// for attendance targets so calendars can be refreshed.
type ChangeRequestReviewed struct {
	RequestID  string
	BranchID   string
	EntityType string
	TargetID   string
	Decision   string
	PersonID   string
}

func (ChangeRequestReviewed) EventType() string { return TypeChangeRequestReviewed }

// FeeTemplateChanged covers create, draft edits, commit and deletion.
type FeeTemplateChanged struct {
	TemplateID string
	BranchID   string
}

func (FeeTemplateChanged) EventType() string { return TypeFeeTemplateChanged }
