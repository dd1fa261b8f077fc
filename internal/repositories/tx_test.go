package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactorTest(t *testing.T) (repository.Transactor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewTransactor(db), mock
}

func TestWithinTx(t *testing.T) {
	ctx := t.Context()
	cartID := uuid.New()

	deleteSQL := regexp.QuoteMeta(`DELETE FROM carts WHERE id = $1`)

	t.Run("Success - Commits When Callback Succeeds", func(t *testing.T) {
		// Arrange
		tr, mock := setupTransactorTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(cartID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := tr.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
			return uow.Carts().DeleteCart(ctx, cartID)
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Rolls Back When Callback Fails", func(t *testing.T) {
		// Arrange
		tr, mock := setupTransactorTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(cartID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		err := tr.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
			return uow.Carts().DeleteCart(ctx, cartID)
		})

		// Assert
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Rolls Back And Re-panics", func(t *testing.T) {
		// Arrange
		tr, mock := setupTransactorTest(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		// Act & Assert
		assert.PanicsWithValue(t, "boom", func() {
			_ = tr.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin Error", func(t *testing.T) {
		// Arrange
		tr, mock := setupTransactorTest(t)
		beginErr := errors.New("connection refused")
		mock.ExpectBegin().WillReturnError(beginErr)
		called := false

		// Act
		err := tr.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
			called = true
			return nil
		})

		// Assert
		require.ErrorIs(t, err, beginErr)
		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Commit Error", func(t *testing.T) {
		// Arrange
		tr, mock := setupTransactorTest(t)
		commitErr := errors.New("serialization failure")
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(commitErr)

		// Act
		err := tr.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
			return nil
		})

		// Assert
		require.ErrorIs(t, err, commitErr)
		assert.ErrorContains(t, err, "failed to commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
