package database

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

//go:embed sql/create_indexes.sql
var indexSQL string

// RunMigrations applies all pending table migrations. A failure here is
// fatal for the relational load: no data is written without the schema.
func RunMigrations(db *DB) (uint, bool, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return 0, false, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return 0, false, fmt.Errorf("failed to create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return 0, false, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}

	return version, dirty, nil
}

// EnsureIndexes runs the embedded index DDL statement by statement. Index
// failures are logged and skipped: a pre-existing index must not abort the
// load after the data is already in place.
func EnsureIndexes(db *DB) {
	for _, statement := range splitStatements(indexSQL) {
		if _, err := db.Exec(statement); err != nil {
			slog.Warn("Index creation warning", "error", err)
		}
	}
}

// PGSchemaManager provisions the relational schema: migrations are fatal,
// index DDL is warn-and-continue.
type PGSchemaManager struct {
	db *DB
}

func NewSchemaManager(db *DB) *PGSchemaManager {
	return &PGSchemaManager{db: db}
}

func (m *PGSchemaManager) Migrate() error {
	_, _, err := RunMigrations(m.db)
	return err
}

func (m *PGSchemaManager) EnsureIndexes() {
	EnsureIndexes(m.db)
}

func splitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}
