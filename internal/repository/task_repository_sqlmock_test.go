package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// newMockRepository wires the repository to sqlmock through the postgres dialector.
func newMockRepository(t *testing.T) (*GormTaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestGormTaskRepository_ListStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tasks"`)).WillReturnError(errConnectionRefused)

	tasks, err := repo.List(context.Background(), TaskFilter{Assignee: "mira"})

	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, errConnectionRefused)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindByIDStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tasks" WHERE id = $1`)).WillReturnError(errConnectionRefused)

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, errConnectionRefused)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_DeleteRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tasks" WHERE id = $1`)).WillReturnError(errConnectionRefused)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, errConnectionRefused)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_DeleteNoRows(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tasks" WHERE id = $1`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_UpdateBeginError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin().WillReturnError(errConnectionRefused)

	_, err := repo.Update(context.Background(), uuid.New(), TaskPatch{Status: Some("done")})

	assert.ErrorIs(t, err, errConnectionRefused)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_UpdateRollsBackWhenMissing(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tasks" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), uuid.New(), TaskPatch{Status: Some("done")})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CountStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "tasks" WHERE status = $1`)).
		WithArgs("done").
		WillReturnError(errConnectionRefused)

	_, err := repo.Count(context.Background(), FieldStatus, "done")

	assert.ErrorIs(t, err, errConnectionRefused)
	assert.NoError(t, mock.ExpectationsWereMet())
}
