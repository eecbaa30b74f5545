package dto

import (
	"time"

	"github.com/noah-isme/verticx-api/internal/models"
)

// SheetEntry is one person's mark on a sheet.
type SheetEntry struct {
	PersonID string `json:"personId" validate:"required"`
	Status   string `json:"status" validate:"required,attendance_status"`
}

// SaveSheetRequest saves a course sheet, or a staff sheet when CourseID is nil.
type SaveSheetRequest struct {
	BranchID string       `json:"branchId"`
	CourseID *string      `json:"courseId"`
	Date     string       `json:"date" validate:"required,datetime=2006-01-02"`
	Records  []SheetEntry `json:"records" validate:"required,min=1,dive"`
}

// SheetResponse reports whether a sheet is saved and its records.
type SheetResponse struct {
	BranchID string                    `json:"branchId"`
	CourseID *string                   `json:"courseId,omitempty"`
	Date     string                    `json:"date"`
	IsSaved  bool                      `json:"isSaved"`
	SavedAt  *time.Time                `json:"savedAt,omitempty"`
	SavedBy  string                    `json:"savedBy,omitempty"`
	Records  []models.AttendanceRecord `json:"records"`
}

// AttendanceQuery filters a person's history.
type AttendanceQuery struct {
	BranchID string `form:"branchId"`
	From     string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}
