package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	intentDomain "github.com/allisson/mist/internal/intent/domain"
)

// PostgreSQLDisbursementRepository implements disbursement persistence for PostgreSQL databases.
type PostgreSQLDisbursementRepository struct {
	db *sql.DB
}

// Create inserts a disbursement credited to its destination.
func (p *PostgreSQLDisbursementRepository) Create(ctx context.Context, disbursement *intentDomain.Disbursement) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO disbursements (id, destination, asset_type, amount, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		disbursement.ID,
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

// NewPostgreSQLDisbursementRepository creates a new PostgreSQL disbursement repository instance.
func NewPostgreSQLDisbursementRepository(db *sql.DB) *PostgreSQLDisbursementRepository {
	return &PostgreSQLDisbursementRepository{db: db}
}
