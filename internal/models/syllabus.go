package models

import "time"

// SyllabusLecture is one planned lecture of a course.
type SyllabusLecture struct {
	ID            string    `db:"id" json:"id"`
	BranchID      string    `db:"branch_id" json:"branchId"`
	CourseID      string    `db:"course_id" json:"courseId"`
	TeacherID     string    `db:"teacher_id" json:"teacherId"`
	Title         string    `db:"title" json:"title"`
	Topics        string    `db:"topics" json:"topics"`
	ScheduledDate string    `db:"scheduled_date" json:"scheduledDate"`
	Lifecycle     Lifecycle `db:"lifecycle" json:"lifecycle"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
