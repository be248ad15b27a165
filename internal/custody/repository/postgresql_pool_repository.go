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

// PostgreSQLPoolRepository implements custody pool balances for PostgreSQL databases.
// Balances are BIGINT and never exceed ledgerDomain.MaxAmount.
type PostgreSQLPoolRepository struct {
	db *sql.DB
}

// Credit adds amount to the balance of asset, creating the balance row on first use.
// It returns ErrInvalidAmount when the new balance would exceed MaxAmount.
func (p *PostgreSQLPoolRepository) Credit(
	ctx context.Context,
	asset ledgerDomain.AssetType,
	amount uint64,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO custody_pools (asset_type, balance, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (asset_type) DO UPDATE
			  SET balance = custody_pools.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
			  WHERE custody_pools.balance <= 9223372036854775807 - EXCLUDED.balance`

	result, err := querier.ExecContext(ctx, query, string(asset), int64(amount), updatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to credit pool")
	}

	return requireRow(result, ledgerDomain.ErrInvalidAmount)
}

// Debit subtracts amount from the balance of asset in one conditional statement.
// It returns ErrInsufficientBalance when the balance is lower than amount.
func (p *PostgreSQLPoolRepository) Debit(
	ctx context.Context,
	asset ledgerDomain.AssetType,
	amount uint64,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE custody_pools
			  SET balance = balance - $1, updated_at = $2
			  WHERE asset_type = $3 AND balance >= $1`

	result, err := querier.ExecContext(ctx, query, int64(amount), updatedAt, string(asset))
	if err != nil {
		return apperrors.Wrap(err, "failed to debit pool")
	}

	return requireRow(result, ledgerDomain.ErrInsufficientBalance)
}

// List returns every asset balance ordered by asset type.
func (p *PostgreSQLPoolRepository) List(ctx context.Context) ([]*custodyDomain.PoolBalance, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT asset_type, balance, updated_at FROM custody_pools ORDER BY asset_type`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pool balances")
	}

	return scanPoolBalances(rows)
}

// NewPostgreSQLPoolRepository creates a new PostgreSQL pool repository instance.
func NewPostgreSQLPoolRepository(db *sql.DB) *PostgreSQLPoolRepository {
	return &PostgreSQLPoolRepository{db: db}
}

func scanPoolBalances(rows *sql.Rows) ([]*custodyDomain.PoolBalance, error) {
	defer func() {
		_ = rows.Close()
	}()

	balances := make([]*custodyDomain.PoolBalance, 0)
	for rows.Next() {
		var balance custodyDomain.PoolBalance
		var asset string
		var amount int64

		if err := rows.Scan(&asset, &amount, &balance.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan pool balance")
		}

		balance.AssetType = ledgerDomain.AssetType(asset)
		balance.Balance = uint64(amount)
		balances = append(balances, &balance)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate pool balances")
	}

	return balances, nil
}
