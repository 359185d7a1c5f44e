package app

import (
	"context"
	"database/sql"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/storage/sqlite"
)

var globalSQLiteDB *sql.DB

func MustOpenSQLite() {
	cfg := config.Global().SQLite

	var err error
	globalSQLiteDB, err = sqlite.Open(context.Background(), cfg.DSN)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to open sqlite")
		panic(err)
	}
	globalLogger.Info().Msg("opened sqlite")
}

func CloseSQLite() {
	if globalSQLiteDB == nil {
		return
	}
	err := globalSQLiteDB.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close sqlite")
		return
	}
	globalLogger.Info().Msg("closed sqlite")
}
