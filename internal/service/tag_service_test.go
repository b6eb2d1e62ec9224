package service_test

import (
	"context"
	"miniblog/internal/database"
	"miniblog/internal/repository"
	"miniblog/internal/service"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTagService(t *testing.T) (service.TagService, sqlmock.Sqlmock) {
	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(rawDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	db := &database.DB{DB: sqlxDB}
	svc := service.NewTagService(db, repository.NewTagRepository(sqlxDB))

	return svc, mock
}

func TestTagService_SetPostTags(t *testing.T) {
	t.Run("replace-all runs inside a transaction", func(t *testing.T) {
		svc, mock := setupTagService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT tag_id FROM post_tag WHERE post_id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"tag_id"}).
				AddRow(int64(1)).AddRow(int64(2)).AddRow(int64(3)))
		mock.ExpectExec(`DELETE FROM post_tag WHERE post_id = \$1 AND tag_id = \$2`).
			WithArgs(int64(42), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO post_tag`).
			WithArgs(int64(42), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.SetPostTags(context.Background(), 42, []int64{2, 3, 4})
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clearing all tags commits the deletes", func(t *testing.T) {
		svc, mock := setupTagService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT tag_id FROM post_tag WHERE post_id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"tag_id"}).AddRow(int64(2)))
		mock.ExpectExec(`DELETE FROM post_tag WHERE post_id = \$1 AND tag_id = \$2`).
			WithArgs(int64(42), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.SetPostTags(context.Background(), 42, nil)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
