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

// MySQLCapabilityRepository implements admin capability persistence for MySQL databases.
type MySQLCapabilityRepository struct {
	db *sql.DB
}

// Create stores the capability hash. It returns ErrCapabilityAlreadyMinted when one exists.
func (m *MySQLCapabilityRepository) Create(
	ctx context.Context,
	capability *custodyDomain.AdminCapability,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO admin_capabilities (id, secret_hash, created_at) VALUES (?, ?, ?)`

	result, err := querier.ExecContext(ctx, query, settingsRowID, capability.SecretHash, capability.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create admin capability")
	}

	return requireRow(result, custodyDomain.ErrCapabilityAlreadyMinted)
}

// Get returns the minted capability.
func (m *MySQLCapabilityRepository) Get(ctx context.Context) (*custodyDomain.AdminCapability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT secret_hash, created_at FROM admin_capabilities WHERE id = ?`

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

// NewMySQLCapabilityRepository creates a new MySQL capability repository instance.
func NewMySQLCapabilityRepository(db *sql.DB) *MySQLCapabilityRepository {
	return &MySQLCapabilityRepository{db: db}
}
