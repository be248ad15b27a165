package repository

import (
	"context"
	"database/sql"
	"errors"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// PostgreSQLCapabilityRepository implements admin capability persistence for PostgreSQL databases.
type PostgreSQLCapabilityRepository struct {
	db *sql.DB
}

// Create stores the capability hash. It returns ErrCapabilityAlreadyMinted when one exists.
func (p *PostgreSQLCapabilityRepository) Create(
	ctx context.Context,
	capability *custodyDomain.AdminCapability,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO admin_capabilities (id, secret_hash, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (id) DO NOTHING`

	result, err := querier.ExecContext(ctx, query, settingsRowID, capability.SecretHash, capability.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create admin capability")
	}

	return requireRow(result, custodyDomain.ErrCapabilityAlreadyMinted)
}

// Get returns the minted capability.
func (p *PostgreSQLCapabilityRepository) Get(ctx context.Context) (*custodyDomain.AdminCapability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT secret_hash, created_at FROM admin_capabilities WHERE id = $1`

	var capability custodyDomain.AdminCapability
	err := querier.QueryRowContext(ctx, query, settingsRowID).Scan(&capability.SecretHash, &capability.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerDomain.ErrLedgerNotInitialized
		}
		return nil, apperrors.Wrap(err, "failed to get admin capability")
	}

	return &capability, nil
}

// NewPostgreSQLCapabilityRepository creates a new PostgreSQL capability repository instance.
func NewPostgreSQLCapabilityRepository(db *sql.DB) *PostgreSQLCapabilityRepository {
	return &PostgreSQLCapabilityRepository{db: db}
}
