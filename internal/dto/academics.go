package dto

// SyllabusLectureRequest creates or edits a draft lecture.
type SyllabusLectureRequest struct {
	BranchID      string `json:"branchId"`
	CourseID      string `json:"courseId" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Topics        string `json:"topics"`
	ScheduledDate string `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
}

// ExamMarkRequest creates or edits a draft exam mark.
type ExamMarkRequest struct {
	BranchID  string  `json:"branchId"`
	ExamID    string  `json:"examId" validate:"required"`
	CourseID  string  `json:"courseId" validate:"required"`
	StudentID string  `json:"studentId" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0"`
	MaxScore  float64 `json:"maxScore" validate:"gt=0"`
}

// CommitResult reports how many records a bulk commit promoted.
type CommitResult struct {
	Committed int64 `json:"committed"`
}
