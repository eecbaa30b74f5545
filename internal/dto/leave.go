package dto

// ApplyLeaveRequest is a new leave application for the caller.
type ApplyLeaveRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required"`
}

// ReviewRequest carries a reviewer decision and optional note.
type ReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Note     string `json:"note"`
}

// LeaveQuery filters branch leave listings.
type LeaveQuery struct {
	BranchID string   `form:"branchId"`
	Statuses []string `form:"status"`
}
