package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MySQLNullifierRepository implements the nullifier registry for MySQL databases.
type MySQLNullifierRepository struct {
	db *sql.DB
}

// Insert records the nullifier hash as spent. It returns ErrNullifierSpent when the hash
// is already present.
func (m *MySQLNullifierRepository) Insert(
	ctx context.Context,
	hash ledgerDomain.NullifierHash,
	spentAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO spent_nullifiers (nullifier_hash, spent_at) VALUES (?, ?)`

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
func (m *MySQLNullifierRepository) Exists(ctx context.Context, hash ledgerDomain.NullifierHash) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM spent_nullifiers WHERE nullifier_hash = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, hash[:]).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check nullifier")
	}

	return exists, nil
}

// NewMySQLNullifierRepository creates a new MySQL nullifier repository instance.
func NewMySQLNullifierRepository(db *sql.DB) *MySQLNullifierRepository {
	return &MySQLNullifierRepository{db: db}
}
