// Package migrations embeds the goose SQL migrations for the bot schema.
// The DDL is kept portable between SQLite and PostgreSQL: text uuid primary
// keys generated by the application, timestamps assigned from the injected
// clock rather than database defaults.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
