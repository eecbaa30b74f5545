package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/pkg/config"
	"github.com/noah-isme/verticx-api/pkg/database"
)

func mockEnv(t *testing.T) (*env, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	db := sqlx.NewDb(raw, "sqlmock")
	return &env{
		loadConfig: func() (*config.Config, error) {
			return &config.Config{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "error", Format: "console"}}, nil
		},
		openDB:  func(config.DatabaseConfig) (*sqlx.DB, error) { return db, nil },
		migrate: func(context.Context, *sqlx.DB, *zap.Logger) ([]database.Migration, error) { return nil, nil },
	}, mock
}

func run(e *env, args ...string) (string, error) {
	root := newRootCmd(e)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMigrateListDoesNotConnect(t *testing.T) {
	e := &env{
		loadConfig: func() (*config.Config, error) { return nil, errors.New("unreachable") },
	}
	out, err := run(e, "migrate", "--list")
	require.NoError(t, err)
	assert.Equal(t, "1 0001_init.sql\n2 0002_attendance_leave.sql\n3 0003_records_workflow.sql\n", out)
}

func TestMigrateUpToDate(t *testing.T) {
	e, _ := mockEnv(t)

	out, err := run(e, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema is up to date\n", out)
}

func TestMigrateReportsAppliedBeforeFailure(t *testing.T) {
	e, _ := mockEnv(t)
	e.migrate = func(context.Context, *sqlx.DB, *zap.Logger) ([]database.Migration, error) {
		return []database.Migration{{Version: 2, Name: "0002_attendance_leave.sql"}}, errors.New("migrate: syntax error")
	}

	out, err := run(e, "migrate")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "applied 0002_attendance_leave.sql\n"))
}

func TestAddUserCreatesAccount(t *testing.T) {
	e, mock := mockEnv(t)
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(0, 1))

	out, err := run(e, "add-user",
		"--email", "Head@School.test",
		"--password", "correct-horse",
		"--name", "Head Teacher",
		"--role", "principal",
		"--branch", "branch-1",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "created user ")
	assert.Contains(t, out, "(head@school.test, PRINCIPAL)")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUserRequiresBranchForScopedRoles(t *testing.T) {
	e, mock := mockEnv(t)

	_, err := run(e, "add-user", "--email", "t@school.test", "--password", "correct-horse", "--name", "T", "--role", "TEACHER")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "branch is required")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUserRequiredFlags(t *testing.T) {
	e, _ := mockEnv(t)
	_, err := run(e, "add-user", "--email", "x@school.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
