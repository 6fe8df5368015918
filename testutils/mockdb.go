package testutils

import (
	"testing"

	"taskboard-app/taskboard/database"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

// SetupMockDB returns a postgres-dialect database backed by sqlmock
func SetupMockDB() (*database.Database, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	mockDB, err := database.Open(dialector, database.GormConfig(logger.Silent))
	if err != nil {
		panic(err)
	}

	close := func() {
		db.Close()
	}

	return mockDB, mock, close
}

// SetupTestDB returns a migrated in-memory sqlite database. A single
// connection keeps every statement on the same in-memory schema.
func SetupTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrations(db.DB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
