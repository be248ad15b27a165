package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	intentDomain "github.com/allisson/mist/internal/intent/domain"
)

// MySQLDisbursementRepository implements disbursement persistence for MySQL databases.
type MySQLDisbursementRepository struct {
	db *sql.DB
}

// Create inserts a disbursement credited to its destination.
func (m *MySQLDisbursementRepository) Create(ctx context.Context, disbursement *intentDomain.Disbursement) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO disbursements (id, destination, asset_type, amount, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := disbursement.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal disbursement id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		disbursement.Destination[:],
		string(disbursement.AssetType),
		int64(disbursement.Amount),
		disbursement.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create disbursement")
	}
	return nil
}

// NewMySQLDisbursementRepository creates a new MySQL disbursement repository instance.
func NewMySQLDisbursementRepository(db *sql.DB) *MySQLDisbursementRepository {
	return &MySQLDisbursementRepository{db: db}
}
