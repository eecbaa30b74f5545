package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/pkg/database"
)

const examMarkColumns = `id, branch_id, exam_id, course_id, student_id, score, max_score, lifecycle, entered_by, created_at, updated_at`

// ExamMarkRepository persists exam marks.
type ExamMarkRepository struct {
	db *sqlx.DB
}

// NewExamMarkRepository constructs the repository.
func NewExamMarkRepository(db *sqlx.DB) *ExamMarkRepository {
	return &ExamMarkRepository{db: db}
}

// Create inserts a mark. One mark per (exam, student).
func (r *ExamMarkRepository) Create(ctx context.Context, mark *models.ExamMark) error {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	if mark.Lifecycle == "" {
		mark.Lifecycle = models.LifecycleDraft
	}
	now := time.Now().UTC()
	mark.CreatedAt = now
	mark.UpdatedAt = now
	const query = `INSERT INTO exam_marks (id, branch_id, exam_id, course_id, student_id, score, max_score, lifecycle, entered_by, created_at, updated_at)
	VALUES (:id, :branch_id, :exam_id, :course_id, :student_id, :score, :max_score, :lifecycle, :entered_by, :created_at, :updated_at)
	ON CONFLICT (exam_id, student_id) DO NOTHING`
	result, err := database.Conn(ctx, r.db).NamedExecContext(ctx, query, mark)
	if err != nil {
		return fmt.Errorf("create exam mark: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check exam mark rows: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// GetByID fetches a mark.
func (r *ExamMarkRepository) GetByID(ctx context.Context, id string) (*models.ExamMark, error) {
	query := `SELECT ` + examMarkColumns + ` FROM exam_marks WHERE id = $1`
	var mark models.ExamMark
	if err := database.Conn(ctx, r.db).GetContext(ctx, &mark, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get exam mark: %w", err)
	}
	return &mark, nil
}

// ListByExam returns the marks of an exam ordered by student.
func (r *ExamMarkRepository) ListByExam(ctx context.Context, examID string) ([]models.ExamMark, error) {
	query := `SELECT ` + examMarkColumns + ` FROM exam_marks WHERE exam_id = $1 ORDER BY student_id`
	var marks []models.ExamMark
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &marks, query, examID); err != nil {
		return nil, fmt.Errorf("list exam marks: %w", err)
	}
	return marks, nil
}

// Update rewrites score and max score while the mark has the expected lifecycle.
func (r *ExamMarkRepository) Update(ctx context.Context, mark *models.ExamMark, expected models.Lifecycle) error {
	mark.UpdatedAt = time.Now().UTC()
	const query = `UPDATE exam_marks SET score = $2, max_score = $3, updated_at = $4 WHERE id = $1 AND lifecycle = $5`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, mark.ID, mark.Score, mark.MaxScore, mark.UpdatedAt, expected)
	if err != nil {
		return fmt.Errorf("update exam mark: %w", err)
	}
	return requireAffected(result, "update exam mark")
}

// Delete removes the mark while it has the expected lifecycle.
func (r *ExamMarkRepository) Delete(ctx context.Context, id string, expected models.Lifecycle) error {
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM exam_marks WHERE id = $1 AND lifecycle = $2`, id, expected)
	if err != nil {
		return fmt.Errorf("delete exam mark: %w", err)
	}
	return requireAffected(result, "delete exam mark")
}

// CommitExam promotes every DRAFT mark of an exam and returns how many moved.
func (r *ExamMarkRepository) CommitExam(ctx context.Context, examID string) (int64, error) {
	const query = `UPDATE exam_marks SET lifecycle = 'COMMITTED', updated_at = $2 WHERE exam_id = $1 AND lifecycle = 'DRAFT'`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, examID, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("commit exam marks: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("commit exam marks rows: %w", err)
	}
	return rows, nil
}
