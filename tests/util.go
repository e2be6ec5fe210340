package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/timetable"
	"github.com/rohitfewfer/attendance/storage/database"
)

// NewConfig returns a config suitable for tests: test mode, UTC, sqlite in a temp dir.
func NewConfig(t *testing.T) *core.Config {
	t.Helper()
	return &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Attendance",
		SecretKey:        "test-secret",
		Timezone:         "UTC",
		DefaultFromEmail: "noreply@attendance.test",
		Admin:            core.AdminConfig{User: "admin"},
		Database: core.DatabaseConfig{
			Engine: database.EngineSQLite,
			Path:   filepath.Join(t.TempDir(), "attendance.db"),
		},
	}
}

// PrepareDB opens a migrated sqlite database that is removed with the test's temp dir.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := NewConfig(t)
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateEntry(t *testing.T, repo timetable.Repository, day string, position int, subject string) timetable.Entry {
	t.Helper()
	created, err := repo.CreateEntries(context.Background(), timetable.Entry{Day: day, Position: position, Subject: subject})
	if err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}
	return created[0]
}
