package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/pkg/database"
)

const attendanceRecordColumns = `id, person_id, branch_id, course_id, to_char(date, 'YYYY-MM-DD') AS date, status, recorded_by, created_at, updated_at`

// AttendanceRepository persists attendance sheets and their records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetSheet returns the saved sheet for a course (nil for staff) and date.
func (r *AttendanceRepository) GetSheet(ctx context.Context, branchID string, courseID *string, date string) (*models.AttendanceSheet, error) {
	const query = `SELECT id, branch_id, course_id, to_char(date, 'YYYY-MM-DD') AS date, saved_by, saved_at
	FROM attendance_sheets
	WHERE branch_id = $1 AND course_id IS NOT DISTINCT FROM $2 AND date = $3`
	var sheet models.AttendanceSheet
	if err := database.Conn(ctx, r.db).GetContext(ctx, &sheet, query, branchID, courseID, date); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get attendance sheet: %w", err)
	}
	return &sheet, nil
}

// CreateSheet inserts the sheet that locks a (course, date). A concurrent
// save of the same sheet returns ErrAlreadyExists.
func (r *AttendanceRepository) CreateSheet(ctx context.Context, sheet *models.AttendanceSheet) error {
	if sheet.ID == "" {
		sheet.ID = uuid.NewString()
	}
	if sheet.SavedAt.IsZero() {
		sheet.SavedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance_sheets (id, branch_id, course_id, date, saved_by, saved_at)
	VALUES (:id, :branch_id, :course_id, :date, :saved_by, :saved_at)
	ON CONFLICT DO NOTHING`
	result, err := database.Conn(ctx, r.db).NamedExecContext(ctx, query, sheet)
	if err != nil {
		return fmt.Errorf("create attendance sheet: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check attendance sheet rows: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// InsertRecords stores every record of a sheet. Callers run it inside the
// same transaction as CreateSheet.
func (r *AttendanceRepository) InsertRecords(ctx context.Context, records []models.AttendanceRecord) error {
	const query = `INSERT INTO attendance_records (id, person_id, branch_id, course_id, date, status, recorded_by, created_at, updated_at)
	VALUES (:id, :person_id, :branch_id, :course_id, :date, :status, :recorded_by, :created_at, :updated_at)`
	conn := database.Conn(ctx, r.db)
	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if _, err := conn.NamedExecContext(ctx, query, rec); err != nil {
			return fmt.Errorf("insert attendance record %s: %w", rec.PersonID, err)
		}
	}
	return nil
}

// GetRecord loads one record.
func (r *AttendanceRepository) GetRecord(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceRecordColumns + ` FROM attendance_records WHERE id = $1`
	var rec models.AttendanceRecord
	if err := database.Conn(ctx, r.db).GetContext(ctx, &rec, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get attendance record: %w", err)
	}
	return &rec, nil
}

// ListRecords returns records newest first.
func (r *AttendanceRepository) ListRecords(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.PersonID != "" {
		add("person_id = $%d", filter.PersonID)
	}
	if filter.BranchID != "" {
		add("branch_id = $%d", filter.BranchID)
	}
	if filter.CourseID != nil {
		add("course_id = $%d", *filter.CourseID)
	}
	if filter.From != "" {
		add("date >= $%d", filter.From)
	}
	if filter.To != "" {
		add("date <= $%d", filter.To)
	}

	query := `SELECT ` + attendanceRecordColumns + ` FROM attendance_records`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	var records []models.AttendanceRecord
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// ListSheetRecords returns the records saved under one sheet.
func (r *AttendanceRepository) ListSheetRecords(ctx context.Context, branchID string, courseID *string, date string) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceRecordColumns + ` FROM attendance_records
	WHERE branch_id = $1 AND course_id IS NOT DISTINCT FROM $2 AND date = $3
	ORDER BY person_id`
	var records []models.AttendanceRecord
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &records, query, branchID, courseID, date); err != nil {
		return nil, fmt.Errorf("list sheet records: %w", err)
	}
	return records, nil
}

// UpdateRecordStatus rewrites the status of a saved record.
func (r *AttendanceRepository) UpdateRecordStatus(ctx context.Context, id string, status models.AttendanceStatus) error {
	const query = `UPDATE attendance_records SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	return requireAffected(result, "update attendance record")
}

// DeleteRecord removes a saved record.
func (r *AttendanceRepository) DeleteRecord(ctx context.Context, id string) error {
	result, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	return requireAffected(result, "delete attendance record")
}

// CountByStatus tallies records of a branch on one date.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, branchID, date string) ([]models.AttendanceCount, error) {
	const query = `SELECT status, COUNT(*) AS total FROM attendance_records
	WHERE branch_id = $1 AND date = $2
	GROUP BY status ORDER BY status`
	var counts []models.AttendanceCount
	if err := database.Conn(ctx, r.db).SelectContext(ctx, &counts, query, branchID, date); err != nil {
		return nil, fmt.Errorf("count attendance by status: %w", err)
	}
	return counts, nil
}

func requireAffected(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
