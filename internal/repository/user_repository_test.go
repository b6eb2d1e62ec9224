package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "email_verified_at", "created_at"}
}

func TestUserRepository_CreateUser(t *testing.T) {
	tests := []struct {
		name        string
		user        *models.User
		setupMock   func(mock sqlmock.Sqlmock)
		expectError bool
		expectIs    error
	}{
		{
			name: "stores the user with a hashed credential",
			user: &models.User{Name: "Alice Walker", Email: "alice@example.net"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(
						"Alice Walker",
						"alice@example.net",
						sqlmock.AnyArg(),
						sqlmock.AnyArg(),
						sqlmock.AnyArg(),
					).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
		},
		{
			name: "duplicate email is ErrValidation",
			user: &models.User{Name: "Alice Walker", Email: "alice@example.net"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(fmt.Errorf("pq: duplicate key value violates unique constraint \"users_email_key\""))
			},
			expectError: true,
			expectIs:    repository.ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tc.setupMock(mock)

			repo := repository.NewUserRepository(db)

			err := repo.CreateUser(context.Background(), tc.user, "secret-password")

			if tc.expectError {
				assert.Error(t, err)
				if tc.expectIs != nil {
					assert.ErrorIs(t, err, tc.expectIs)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), tc.user.ID)
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(tc.user.PasswordHash), []byte("secret-password")))
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetUserByID(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow(int64(7), "Alice Walker", "alice@example.net", "hash", time.Now(), time.Now()))

		repo := repository.NewUserRepository(db)

		user, err := repo.GetUserByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.net", user.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user is ErrNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		repo := repository.NewUserRepository(db)

		user, err := repo.GetUserByID(context.Background(), 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(userColumns()).
			AddRow(int64(7), "Alice Walker", "alice@example.net", string(hash), time.Now(), time.Now())
	}

	t.Run("accepts the right password", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email = \$1`).
			WithArgs("alice@example.net").
			WillReturnRows(rows())

		repo := repository.NewUserRepository(db)

		user, err := repo.VerifyPassword(context.Background(), "alice@example.net", "right-password")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email = \$1`).
			WithArgs("alice@example.net").
			WillReturnRows(rows())

		repo := repository.NewUserRepository(db)

		user, err := repo.VerifyPassword(context.Background(), "alice@example.net", "wrong-password")
		assert.Error(t, err)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email is ErrNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email = \$1`).
			WithArgs("nobody@example.net").
			WillReturnError(sql.ErrNoRows)

		repo := repository.NewUserRepository(db)

		user, err := repo.VerifyPassword(context.Background(), "nobody@example.net", "whatever")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
