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
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations for deployments sharing a networked database.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// QA returns a qa.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) QA(db dbx.DBTX) qa.Repository {
	return qa.NewPostgresRepository(db)
}

// Contacts returns a contacts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Contacts(db dbx.DBTX) contacts.Repository {
	return contacts.NewPostgresRepository(db)
}

// Events returns an events.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewPostgresRepository(db)
}

// Digests returns a digests.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Digests(db dbx.DBTX) digests.Repository {
	return digests.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
