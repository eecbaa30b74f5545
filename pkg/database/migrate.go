package database

import (
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationsDir = "migrations"

// goose keeps its filesystem, dialect and logger in package globals.
var gooseMu sync.Mutex

// Migration is one embedded schema file.
type Migration struct {
	Version int64
	Name    string
}

// Migrations lists the embedded schema files in version order.
func Migrations() ([]Migration, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationFS)
	return collect()
}

func collect() ([]Migration, error) {
	found, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("collect migrations: %w", err)
	}
	out := make([]Migration, 0, len(found))
	for _, m := range found {
		out = append(out, Migration{Version: m.Version, Name: filepath.Base(m.Source)})
	}
	return out, nil
}

// Migrate brings the schema up to the newest embedded version and returns
// the migrations it applied.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) ([]Migration, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(gooseLogger{logger.Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	all, err := collect()
	if err != nil {
		return nil, err
	}

	before, err := goose.GetDBVersionContext(ctx, db.DB)
	if err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	upErr := goose.UpContext(ctx, db.DB, migrationsDir)
	after, err := goose.GetDBVersionContext(ctx, db.DB)
	if err != nil && upErr == nil {
		upErr = fmt.Errorf("read schema version: %w", err)
	}

	ran := appliedBetween(all, before, after)
	for _, m := range ran {
		logger.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
	}
	if upErr != nil {
		return ran, fmt.Errorf("migrate: %w", upErr)
	}
	return ran, nil
}

func appliedBetween(all []Migration, before, after int64) []Migration {
	var out []Migration
	for _, m := range all {
		if m.Version > before && m.Version <= after {
			out = append(out, m)
		}
	}
	return out
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Debugf(format, v...) }

// Fatalf is reported as an error; goose only calls it from its CLI paths.
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Errorf(format, v...) }
