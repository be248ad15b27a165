package repository

import (
	"context"
	"database/sql"
	"time"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MySQLPoolRepository implements custody pool balances for MySQL databases.
type MySQLPoolRepository struct {
	db *sql.DB
}

// Credit adds amount to the balance of asset, creating the balance row on first use.
// It returns ErrInvalidAmount when the new balance would exceed MaxAmount.
//
// updated_at is assigned before balance because MySQL evaluates the assignments left to
// right against the already updated row. An overflowing credit changes nothing and
// reports zero affected rows.
func (m *MySQLPoolRepository) Credit(
	ctx context.Context,
	asset ledgerDomain.AssetType,
	amount uint64,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO custody_pools (asset_type, balance, updated_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  updated_at = IF(balance <= 9223372036854775807 - VALUES(balance), VALUES(updated_at), updated_at),
			  balance = IF(balance <= 9223372036854775807 - VALUES(balance), balance + VALUES(balance), balance)`

	result, err := querier.ExecContext(ctx, query, string(asset), int64(amount), updatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to credit pool")
	}

	return requireRow(result, ledgerDomain.ErrInvalidAmount)
}

// Debit subtracts amount from the balance of asset in one conditional statement.
// It returns ErrInsufficientBalance when the balance is lower than amount.
func (m *MySQLPoolRepository) Debit(
	ctx context.Context,
	asset ledgerDomain.AssetType,
	amount uint64,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE custody_pools
			  SET balance = balance - ?, updated_at = ?
			  WHERE asset_type = ? AND balance >= ?`

	result, err := querier.ExecContext(ctx, query, int64(amount), updatedAt, string(asset), int64(amount))
	if err != nil {
		return apperrors.Wrap(err, "failed to debit pool")
	}

	return requireRow(result, ledgerDomain.ErrInsufficientBalance)
}

// List returns every asset balance ordered by asset type.
func (m *MySQLPoolRepository) List(ctx context.Context) ([]*custodyDomain.PoolBalance, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT asset_type, balance, updated_at FROM custody_pools ORDER BY asset_type`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pool balances")
	}

	return scanPoolBalances(rows)
}

// NewMySQLPoolRepository creates a new MySQL pool repository instance.
func NewMySQLPoolRepository(db *sql.DB) *MySQLPoolRepository {
	return &MySQLPoolRepository{db: db}
}
