package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

func TestPostgreSQLNullifierRepository_Insert(t *testing.T) {
	ctx := context.Background()
	hash := ledgerDomain.Nullifier("n1").Hash()
	spentAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`INSERT INTO spent_nullifiers (nullifier_hash, spent_at)`)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(query).WithArgs(hash[:], spentAt).WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewPostgreSQLNullifierRepository(db).Insert(ctx, hash, spentAt)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_AlreadySpent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(query).WithArgs(hash[:], spentAt).WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewPostgreSQLNullifierRepository(db).Insert(ctx, hash, spentAt)
		assert.ErrorIs(t, err, ledgerDomain.ErrNullifierSpent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbErr := errors.New("connection reset")
		mock.ExpectExec(query).WillReturnError(dbErr)

		err = NewPostgreSQLNullifierRepository(db).Insert(ctx, hash, spentAt)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ledgerDomain.ErrNullifierSpent)
	})
}

func TestPostgreSQLNullifierRepository_Exists(t *testing.T) {
	ctx := context.Background()
	hash := ledgerDomain.Nullifier("n1").Hash()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs(hash[:]).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewPostgreSQLNullifierRepository(db).Exists(ctx, hash)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLNullifierRepository_Insert(t *testing.T) {
	ctx := context.Background()
	hash := ledgerDomain.Nullifier("n1").Hash()
	spentAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`INSERT IGNORE INTO spent_nullifiers (nullifier_hash, spent_at) VALUES (?, ?)`)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(query).WithArgs(hash[:], spentAt).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLNullifierRepository(db).Insert(ctx, hash, spentAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_AlreadySpent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(query).WithArgs(hash[:], spentAt).WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewMySQLNullifierRepository(db).Insert(ctx, hash, spentAt)
		assert.ErrorIs(t, err, ledgerDomain.ErrNullifierSpent)
	})
}

func TestMySQLNullifierRepository_Exists(t *testing.T) {
	ctx := context.Background()
	hash := ledgerDomain.Nullifier("n2").Hash()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs(hash[:]).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := NewMySQLNullifierRepository(db).Exists(ctx, hash)
	require.NoError(t, err)
	assert.False(t, exists)
}
