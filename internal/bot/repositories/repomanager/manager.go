// Package repomanager wires the per-collection repositories to a concrete
// database backend and exposes a schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/teambot/internal/bot/repositories/contacts"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/digests"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/events"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/qa"
	"github.com/dmitrijs2005/teambot/internal/dbx"
)

// RepositoryManager vends backend-specific repository implementations bound
// to the provided DBTX, so a caller can run a group of repository operations
// on a shared transaction.
type RepositoryManager interface {
	QA(db dbx.DBTX) qa.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Events(db dbx.DBTX) events.Repository
	Digests(db dbx.DBTX) digests.Repository

	// RunMigrations brings the schema up to date on the given connection.
	RunMigrations(ctx context.Context, db *sql.DB) error
}
