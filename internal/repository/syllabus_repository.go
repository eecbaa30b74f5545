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

const syllabusColumns = `id, branch_id, course_id, teacher_id, title, topics,
	to_char(scheduled_date, 'YYYY-MM-DD') AS scheduled_date, lifecycle, created_at, updated_at`

// SyllabusRepository persists syllabus lectures.
type SyllabusRepository struct {
	db *sqlx.DB
}

// NewSyllabusRepository constructs the repository.
func NewSyllabusRepository(db *sqlx.DB) *SyllabusRepository {
	return &SyllabusRepository{db: db}
}

// Create inserts a lecture.
func (r *SyllabusRepository) Create(ctx context.Context, lecture *models.SyllabusLecture) error {
	if lecture.ID == "" {
		lecture.ID = uuid.NewString()
	}
	if lecture.Lifecycle == "" {
		lecture.Lifecycle = models.LifecycleDraft
	}
	now := time.Now().UTC()
	lecture.CreatedAt = now
	lecture.UpdatedAt = now
	const query = `INSERT INTO syllabus_lectures (id, branch_id, course_id, teacher_id, title, topics, scheduled_date, lifecycle, created_at, updated_at)
	VALUES (:id, :branch_id, :course_id, :teacher_id, :title, :topics, :scheduled_date, :lifecycle, :created_at, :updated_at)`
	if _, err := database.Conn(ctx, r.db).NamedExecContext(ctx, query, lecture); err != nil {
		return fmt.Errorf("create syllabus lecture: %w", err)
	}
	return nil
}

// GetByID fetches a lecture.
func (r *SyllabusRepository) GetByID(ctx context.Context, id string) (*models.SyllabusLecture, error) {
	query := `SELECT ` + syllabusColumns + ` FROM syllabus_lectures WHERE id = $1`
	var lecture models.SyllabusLecture
	if err := database.Conn(ctx, r.db).GetContext(ctx, &lecture, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get syllabus lecture: %w", err)
	}
	return &lecture, nil
}

// ListByCourse returns a course's lectures in schedule order.
func (r *SyllabusRepository) ListByCourse(ctx context.Context, courseID string) ([]models.SyllabusLecture, error) {
	query := `SELECT ` + syllabusColumns + ` FROM syllabus_lectures WHERE course_id = $1 ORDER BY scheduled_date, id`
	var lectures []models.SyllabusLecture
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &lectures, query, courseID); err != nil {
		return nil, fmt.Errorf("list syllabus lectures: %w", err)
	}
	return lectures, nil
}

// Update rewrites the editable fields while the lecture has the expected lifecycle.
func (r *SyllabusRepository) Update(ctx context.Context, lecture *models.SyllabusLecture, expected models.Lifecycle) error {
	lecture.UpdatedAt = time.Now().UTC()
	const query = `UPDATE syllabus_lectures
	SET title = $2, topics = $3, scheduled_date = $4, updated_at = $5
	WHERE id = $1 AND lifecycle = $6`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, lecture.ID, lecture.Title, lecture.Topics, lecture.ScheduledDate, lecture.UpdatedAt, expected)
	if err != nil {
		return fmt.Errorf("update syllabus lecture: %w", err)
	}
	return requireAffected(result, "update syllabus lecture")
}

// Delete removes the lecture while it has the expected lifecycle.
func (r *SyllabusRepository) Delete(ctx context.Context, id string, expected models.Lifecycle) error {
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM syllabus_lectures WHERE id = $1 AND lifecycle = $2`, id, expected)
	if err != nil {
		return fmt.Errorf("delete syllabus lecture: %w", err)
	}
	return requireAffected(result, "delete syllabus lecture")
}

// Commit promotes a DRAFT lecture to COMMITTED.
func (r *SyllabusRepository) Commit(ctx context.Context, id string) error {
	const query = `UPDATE syllabus_lectures SET lifecycle = 'COMMITTED', updated_at = $2 WHERE id = $1 AND lifecycle = 'DRAFT'`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("commit syllabus lecture: %w", err)
	}
	return requireAffected(result, "commit syllabus lecture")
}
