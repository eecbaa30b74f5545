package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, Migration{Version: 1, Name: "0001_init.sql"}, migrations[0])
	assert.Equal(t, int64(2), migrations[1].Version)
	assert.Equal(t, "0003_records_workflow.sql", migrations[2].Name)
}

func TestMigrationFilesCarryGuards(t *testing.T) {
	read := func(name string) string {
		body, err := fs.ReadFile(migrationFS, migrationsDir+"/"+name)
		require.NoError(t, err)
		return string(body)
	}
	for _, name := range []string{"0001_init.sql", "0002_attendance_leave.sql", "0003_records_workflow.sql"} {
		body := read(name)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up\n"), name)
		assert.Contains(t, body, "-- +goose Down", name)
	}

	attendance := read("0002_attendance_leave.sql")
	assert.Contains(t, attendance, "uq_attendance_sheets_course")
	assert.Contains(t, attendance, "uq_attendance_sheets_staff")
	assert.Contains(t, attendance, "CHECK (end_date >= start_date)")

	records := read("0003_records_workflow.sql")
	assert.Contains(t, records, "ON change_requests (entity_type, target_entity_id) WHERE status = 'PENDING'")
	assert.Contains(t, records, "ON exam_marks (exam_id, student_id)")
}

func TestAppliedBetween(t *testing.T) {
	all := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}

	assert.Equal(t, all[1:], appliedBetween(all, 1, 3))
	assert.Empty(t, appliedBetween(all, 3, 3))
	assert.Equal(t, all, appliedBetween(all, 0, 3))
}
