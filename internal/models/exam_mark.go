package models

import "time"

// ExamMark is a student's score in one exam of a course.
type ExamMark struct {
	ID        string    `db:"id" json:"id"`
	BranchID  string    `db:"branch_id" json:"branchId"`
	ExamID    string    `db:"exam_id" json:"examId"`
	CourseID  string    `db:"course_id" json:"courseId"`
	StudentID string    `db:"student_id" json:"studentId"`
	Score     float64   `db:"score" json:"score"`
	MaxScore  float64   `db:"max_score" json:"maxScore"`
	Lifecycle Lifecycle `db:"lifecycle" json:"lifecycle"`
	EnteredBy string    `db:"entered_by" json:"enteredBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
