package contacts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/teambot/internal/bot/models"
	"github.com/dmitrijs2005/teambot/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(`^INSERT\s+INTO\s+contacts\s*\(id,\s*name,\s*info,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`).
		WithArgs("c-1", "Alice", "ext. 42", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := &models.Contact{ID: "c-1", Name: "Alice", Info: "ext. 42", CreatedAt: now}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestGetAll_OrdersByName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "info", "created_at"}).
		AddRow("c-1", "Alice", "", now).
		AddRow("c-2", "Bob", "dev", now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*info,\s*created_at\s+FROM\s+contacts\s+ORDER\s+BY\s+name\s*$`).
		WillReturnRows(rows)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Fatalf("unexpected contacts: %+v", got)
	}
}

func TestFindFirst_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "info", "created_at"}).
		AddRow("c-1", "Alice Smith", "dev", now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*info,\s*created_at\s+FROM\s+contacts\s+WHERE\s+position\(\$1\s+in\s+name\)\s*>\s*0\s+ORDER\s+BY\s+created_at\s+LIMIT\s+1\s*$`).
		WithArgs("Ali").
		WillReturnRows(rows)

	got, err := repo.FindFirst(context.Background(), "Ali")
	if err != nil {
		t.Fatalf("FindFirst error: %v", err)
	}
	if got.Name != "Alice Smith" {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestFindFirst_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*info,\s*created_at\s+FROM\s+contacts`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindFirst(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
