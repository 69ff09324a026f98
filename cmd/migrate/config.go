package main

import (
	"errors"
	"os"

	"portalapi/internal/config"
)

func loadEnvFiles() {
	config.LoadEnvFiles()
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// databaseDSN returns DB_DSN. The drift store is optional for the API, so
// there is no local default to migrate against by accident.
func databaseDSN() (string, error) {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v, nil
	}
	return "", errors.New("DB_DSN is required to run migrations")
}
