package main

import (
	"github.com/adanyl0v/go-task-tracker/internal/app"
	"github.com/adanyl0v/go-task-tracker/internal/config"
)

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	switch config.Global().StorageDriver {
	case config.StorageDriverPostgres:
		app.MustConnectPostgres()
		defer app.DisconnectPostgres()
	case config.StorageDriverSQLite:
		app.MustOpenSQLite()
		defer app.CloseSQLite()
	}

	app.MustListenAndServeHTTP()
}
