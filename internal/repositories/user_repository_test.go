package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	assert.NotNil(t, repo, "NewUserRepo should return a non-nil repository")
}

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("Success - Create User", func(t *testing.T) {
		user := &models.User{
			ID:       uuid.New(),
			Email:    "ada@example.com",
			Password: "$2a$10$hash",
			Name:     "Ada",
			IsStaff:  true,
		}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users(id, email, password, name, is_staff, created_at, updated_at)`)).
			WithArgs(user.ID, user.Email, user.Password, user.Name, user.IsStaff).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.CreateUser(ctx, user)

		require.NoError(t, err)
		assert.WithinDuration(t, now, user.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Get User By Email", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`FROM users\s+WHERE email = \$1`).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "is_staff", "created_at", "updated_at"}).
				AddRow(id.String(), "ada@example.com", "$2a$10$hash", "Ada", false, now, now))

		user, err := repo.GetUserByEmail(ctx, "ada@example.com")

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "$2a$10$hash", user.Password)
		assert.False(t, user.IsStaff)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Get User By Email Not Found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users\s+WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetUserByEmail(ctx, "nobody@example.com")

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Get User By ID", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "is_staff", "created_at", "updated_at"}).
				AddRow(id.String(), "ada@example.com", "Ada", true, now, now))

		user, err := repo.GetUserByID(ctx, id)

		require.NoError(t, err)
		assert.True(t, user.IsStaff)
		assert.Empty(t, user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Get User By ID Database Error", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).WillReturnError(dbErr)

		user, err := repo.GetUserByID(ctx, uuid.New())

		require.ErrorIs(t, err, dbErr)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
