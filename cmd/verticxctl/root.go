package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/pkg/config"
	"github.com/noah-isme/verticx-api/pkg/database"
	"github.com/noah-isme/verticx-api/pkg/logger"
)

// env holds the process-level dependencies so commands can be exercised
// against a mock database.
type env struct {
	loadConfig func() (*config.Config, error)
	openDB     func(cfg config.DatabaseConfig) (*sqlx.DB, error)
	migrate    func(ctx context.Context, db *sqlx.DB, logger *zap.Logger) ([]database.Migration, error)
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "verticxctl",
		Short: "Verticx administration tool",
		Long: `verticxctl manages a Verticx deployment: it applies the database schema
and provisions accounts. Connection settings come from the same environment
variables and .env file as the API server.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(e), newAddUserCmd(e))
	return root
}

func (e *env) connect() (*sqlx.DB, *zap.Logger, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	db, err := e.openDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, logr, nil
}
