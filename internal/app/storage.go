package app

import (
	"fmt"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
	"github.com/adanyl0v/go-task-tracker/internal/storage/memory"
	"github.com/adanyl0v/go-task-tracker/internal/storage/postgres"
	"github.com/adanyl0v/go-task-tracker/internal/storage/sqlite"
)

type storages struct {
	users storage.UserStorage
	tasks storage.TaskStorage
}

// newStorages selects the storage implementation for the configured
// driver. The postgres and sqlite drivers need MustConnectPostgres and
// MustOpenSQLite to run first.
func newStorages(driver string) (*storages, error) {
	switch driver {
	case config.StorageDriverPostgres:
		if globalPostgresPool == nil {
			return nil, fmt.Errorf("postgres is not connected")
		}
		return &storages{
			users: postgres.NewUserStorage(globalPostgresPool),
			tasks: postgres.NewTaskStorage(globalPostgresPool),
		}, nil
	case config.StorageDriverSQLite:
		if globalSQLiteDB == nil {
			return nil, fmt.Errorf("sqlite is not open")
		}
		return &storages{
			users: sqlite.NewUserStorage(globalSQLiteDB),
			tasks: sqlite.NewTaskStorage(globalSQLiteDB),
		}, nil
	case config.StorageDriverMemory:
		store := memory.New()
		return &storages{
			users: store,
			tasks: store,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}
