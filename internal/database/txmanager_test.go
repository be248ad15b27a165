package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTxManager(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	txManager := NewTxManager(db)
	assert.NotNil(t, txManager)
	assert.IsType(t, &sqlTxManager{}, txManager)
}

func TestWithTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit()

	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		tx := ctx.Value(txKey{})
		assert.NotNil(t, tx)
		assert.IsType(t, &sql.Tx{}, tx)
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.Equal(t, assert.AnError, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackErrorKeepsOriginalError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(errors.New("begin failed"))

	called := false
	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.EqualError(t, err, "begin failed")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.EqualError(t, err, "commit failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_NestedReusesOuterTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit()

	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		outer := ctx.Value(txKey{})
		return txManager.WithTx(ctx, func(inner context.Context) error {
			assert.Same(t, outer, inner.Value(txKey{}))
			return nil
		})
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTx_WithTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit()

	txManager := NewTxManager(db)
	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		querier := GetTx(ctx, db)
		assert.IsType(t, &sql.Tx{}, querier)
		return nil
	})

	assert.NoError(t, err)
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	querier := GetTx(context.Background(), db)
	assert.Equal(t, db, querier)
}
