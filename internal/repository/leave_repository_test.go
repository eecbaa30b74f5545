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
	"github.com/noah-isme/verticx-api/internal/workflow"
)

var leaveRowColumns = []string{"id", "person_id", "branch_id", "start_date", "end_date", "reason", "status", "requested_at", "reviewed_by", "reviewed_at", "review_note"}

func TestLeaveCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leave_applications")).WillReturnResult(sqlmock.NewResult(1, 1))

	leave := &models.LeaveApplication{PersonID: "p1", BranchID: "b1", StartDate: "2024-04-10", EndDate: "2024-04-12", Reason: "family"}
	require.NoError(t, repo.Create(context.Background(), leave))
	assert.Equal(t, workflow.StatusPending, leave.Status)
	assert.NotEmpty(t, leave.ID)
	assert.False(t, leave.RequestedAt.IsZero())
}

func TestLeaveListOverlappingApproved(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	rows := sqlmock.NewRows(leaveRowColumns).
		AddRow("l1", "p1", "b1", "2024-03-30", "2024-04-02", "trip", "APPROVED", time.Now(), "r1", time.Now(), nil)
	mock.ExpectQuery(`FROM leave_applications WHERE person_id = \$1 AND status = ANY\(\$2\) AND end_date >= \$3 AND start_date <= \$4 ORDER BY reviewed_at DESC NULLS LAST, id DESC`).
		WithArgs("p1", sqlmock.AnyArg(), "2024-04-01", "2024-04-30").
		WillReturnRows(rows)

	leaves, err := repo.List(context.Background(), models.LeaveFilter{
		PersonID: "p1",
		Statuses: []workflow.Status{workflow.StatusApproved},
		From:     "2024-04-01",
		To:       "2024-04-30",
	})
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "2024-03-30", leaves[0].StartDate)
	assert.Equal(t, workflow.StatusApproved, leaves[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveMarkReviewedGuardsPending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND status = 'PENDING'")).
		WithArgs("l1", workflow.StatusApproved, "r1", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkReviewed(context.Background(), ReviewParams{ID: "l1", Status: workflow.StatusApproved, ReviewedBy: "r1", ReviewedAt: time.Now()})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveCountPending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leave_applications")).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountPending(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}
