package qa

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
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

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+qa_entries\s*\(id,\s*question,\s*answer,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*ON\s+CONFLICT\(question\)\s+DO\s+UPDATE\s+SET\s+answer\s*=\s*excluded\.answer\s*$`

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(q).
		WithArgs("qa-1", "what is x", "it is y", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := &models.QAEntry{ID: "qa-1", Question: "what is x", Answer: "it is y", CreatedAt: now}
	if err := repo.Upsert(context.Background(), e); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+qa_entries`).
		WillReturnError(errors.New("db down"))

	err := repo.Upsert(context.Background(), &models.QAEntry{ID: "qa-1", Question: "q", Answer: "a"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByQuestion_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*question,\s*answer,\s*created_at\s+FROM\s+qa_entries\s+WHERE\s+question\s*=\s*\$1\s*$`

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "question", "answer", "created_at"}).
		AddRow("qa-1", "what is x", "it is y", now)
	mock.ExpectQuery(q).WithArgs("what is x").WillReturnRows(rows)

	got, err := repo.GetByQuestion(context.Background(), "what is x")
	if err != nil {
		t.Fatalf("GetByQuestion error: %v", err)
	}
	if got.ID != "qa-1" || got.Answer != "it is y" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestGetByQuestion_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*question,\s*answer,\s*created_at\s+FROM\s+qa_entries`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByQuestion(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
