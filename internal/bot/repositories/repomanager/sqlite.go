package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/teambot/internal/bot/migrations"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/contacts"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/digests"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/events"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/qa"
	"github.com/dmitrijs2005/teambot/internal/dbx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
// This is the default embedded backend.
type SQLiteRepositoryManager struct{}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

// QA returns a qa.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) QA(db dbx.DBTX) qa.Repository {
	return qa.NewSQLiteRepository(db)
}

// Contacts returns a contacts.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Contacts(db dbx.DBTX) contacts.Repository {
	return contacts.NewSQLiteRepository(db)
}

// Events returns an events.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLiteRepository(db)
}

// Digests returns a digests.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Digests(db dbx.DBTX) digests.Repository {
	return digests.NewSQLiteRepository(db)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
