package dto

import (
	"time"

	"github.com/noah-isme/verticx-api/internal/calendar"
	"github.com/noah-isme/verticx-api/internal/models"
)

// BranchSummary is the reviewer dashboard of one branch.
type BranchSummary struct {
	BranchID              string                          `json:"branchId"`
	PendingChangeRequests map[models.EntityType]int       `json:"pendingChangeRequests"`
	PendingRequestsTotal  int                             `json:"pendingRequestsTotal"`
	PendingLeaves         int                             `json:"pendingLeaves"`
	CommittedFeeTemplates int                             `json:"committedFeeTemplates"`
	AnnualFeeTotal        float64                         `json:"annualFeeTotal"`
	Today                 string                          `json:"today"`
	AttendanceToday       map[models.AttendanceStatus]int `json:"attendanceToday"`
	GeneratedAt           time.Time                       `json:"generatedAt"`
}

// PersonSummary is one person's month at a glance.
type PersonSummary struct {
	PersonID       string                     `json:"personId"`
	Month          string                     `json:"month"`
	Counts         map[calendar.DayStatus]int `json:"counts"`
	AttendanceRate float64                    `json:"attendanceRate"`
	GeneratedAt    time.Time                  `json:"generatedAt"`
}
