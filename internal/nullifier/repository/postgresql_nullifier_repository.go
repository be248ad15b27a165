// Package repository implements the nullifier registry for PostgreSQL and MySQL.
//
// The registry is insert-only. Insert is a single conditional statement on the
// nullifier_hash primary key, so the spent check and the insert cannot be separated by
// a concurrent settlement.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// PostgreSQLNullifierRepository implements the nullifier registry for PostgreSQL databases.
type PostgreSQLNullifierRepository struct {
	db *sql.DB
}

// Insert records the nullifier hash as spent. It returns ErrNullifierSpent when the hash
// is already present.
func (p *PostgreSQLNullifierRepository) Insert(
	ctx context.Context,
	hash ledgerDomain.NullifierHash,
	spentAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO spent_nullifiers (nullifier_hash, spent_at)
			  VALUES ($1, $2)
			  ON CONFLICT (nullifier_hash) DO NOTHING`

	result, err := querier.ExecContext(ctx, query, hash[:], spentAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to insert nullifier")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return ledgerDomain.ErrNullifierSpent
	}

	return nil
}

// Exists reports whether the nullifier hash is in the registry.
func (p *PostgreSQLNullifierRepository) Exists(ctx context.Context, hash ledgerDomain.NullifierHash) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM spent_nullifiers WHERE nullifier_hash = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, hash[:]).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check nullifier")
	}

	return exists, nil
}

// NewPostgreSQLNullifierRepository creates a new PostgreSQL nullifier repository instance.
func NewPostgreSQLNullifierRepository(db *sql.DB) *PostgreSQLNullifierRepository {
	return &PostgreSQLNullifierRepository{db: db}
}
