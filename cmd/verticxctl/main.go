package main

import (
	"os"

	"github.com/noah-isme/verticx-api/pkg/config"
	"github.com/noah-isme/verticx-api/pkg/database"
)

func main() {
	deps := &env{loadConfig: config.Load, openDB: database.NewPostgres, migrate: database.Migrate}
	if err := newRootCmd(deps).Execute(); err != nil {
		os.Exit(1)
	}
}
