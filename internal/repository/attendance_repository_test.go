package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/models"
)

var attendanceRowColumns = []string{"id", "person_id", "branch_id", "course_id", "date", "status", "recorded_by", "created_at", "updated_at"}

func TestAttendanceCreateSheetConflict(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance_sheets")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	course := "course-1"
	err := repo.CreateSheet(context.Background(), &models.AttendanceSheet{BranchID: "b1", CourseID: &course, Date: "2024-04-11", SavedBy: "t1"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceInsertRecordsAssignsIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance_records")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance_records")).WillReturnResult(sqlmock.NewResult(1, 1))

	records := []models.AttendanceRecord{
		{PersonID: "s1", BranchID: "b1", Date: "2024-04-11", Status: models.AttendancePresent},
		{PersonID: "s2", BranchID: "b1", Date: "2024-04-11", Status: models.AttendanceAbsent},
	}
	require.NoError(t, repo.InsertRecords(context.Background(), records))
	assert.NotEmpty(t, records[0].ID)
	assert.NotEqual(t, records[0].ID, records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceListRecordsFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(attendanceRowColumns).
		AddRow("r2", "s1", "b1", "c1", "2024-04-12", "ABSENT", "t1", now, now).
		AddRow("r1", "s1", "b1", "c1", "2024-04-11", "PRESENT", "t1", now, now)
	mock.ExpectQuery(`FROM attendance_records WHERE person_id = \$1 AND date >= \$2 AND date <= \$3 ORDER BY date DESC, id DESC`).
		WithArgs("s1", "2024-04-01", "2024-04-30").
		WillReturnRows(rows)

	records, err := repo.ListRecords(context.Background(), models.AttendanceFilter{PersonID: "s1", From: "2024-04-01", To: "2024-04-30"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-04-12", records[0].Date)
	assert.Equal(t, models.AttendanceAbsent, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceGetSheetMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance_sheets")).
		WithArgs("b1", nil, "2024-04-11").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSheet(context.Background(), "b1", nil, "2024-04-11")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAttendanceUpdateRecordStatusMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE attendance_records SET status = $2")).
		WithArgs("r9", models.AttendanceTardy, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRecordStatus(context.Background(), "r9", models.AttendanceTardy)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAttendanceCountByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS total FROM attendance_records")).
		WithArgs("b1", "2024-04-11").
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).AddRow("ABSENT", 2).AddRow("PRESENT", 30))

	counts, err := repo.CountByStatus(context.Background(), "b1", "2024-04-11")
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceCount{{Status: models.AttendanceAbsent, Total: 2}, {Status: models.AttendancePresent, Total: 30}}, counts)
}
