package models

import "time"

// AttendanceStatus is the mark recorded for one person on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceTardy   AttendanceStatus = "TARDY"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
)

// Valid reports whether s is a recordable status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceTardy, AttendanceHalfDay:
		return true
	}
	return false
}

// AttendanceRecord is one stored mark. Student records carry the course;
// staff records leave it nil.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	PersonID   string           `db:"person_id" json:"personId"`
	BranchID   string           `db:"branch_id" json:"branchId"`
	CourseID   *string          `db:"course_id" json:"courseId,omitempty"`
	Date       string           `db:"date" json:"date"`
	Status     AttendanceStatus `db:"status" json:"status"`
	RecordedBy string           `db:"recorded_by" json:"recordedBy"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}

// AttendanceSheet marks a (course, date) or staff date as saved. Its
// existence locks the records beneath it.
type AttendanceSheet struct {
	ID       string    `db:"id" json:"id"`
	BranchID string    `db:"branch_id" json:"branchId"`
	CourseID *string   `db:"course_id" json:"courseId,omitempty"`
	Date     string    `db:"date" json:"date"`
	SavedBy  string    `db:"saved_by" json:"savedBy"`
	SavedAt  time.Time `db:"saved_at" json:"savedAt"`
}

// AttendanceFilter narrows record listings. Dates are inclusive YYYY-MM-DD.
type AttendanceFilter struct {
	PersonID string
	BranchID string
	CourseID *string
	From     string
	To       string
}

// AttendanceCount is a per-status tally.
type AttendanceCount struct {
	Status AttendanceStatus `db:"status" json:"status"`
	Total  int              `db:"total" json:"total"`
}
