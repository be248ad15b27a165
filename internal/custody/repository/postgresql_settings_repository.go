// Package repository implements custody persistence for PostgreSQL and MySQL: the ledger
// settings singleton, the admin capability, per-asset pool balances and deposit records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// settingsRowID is the primary key of the only ledger_settings and admin_capabilities row.
const settingsRowID = 1

// PostgreSQLSettingsRepository implements ledger settings persistence for PostgreSQL databases.
// It is also the ledger's IdentityProvider.
type PostgreSQLSettingsRepository struct {
	db *sql.DB
}

// Create inserts the settings row. It returns ErrLedgerAlreadyInitialized when it exists.
func (p *PostgreSQLSettingsRepository) Create(ctx context.Context, settings *custodyDomain.Settings) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO ledger_settings (id, authority, paused, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (id) DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		settingsRowID,
		settings.Authority[:],
		settings.Paused,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create ledger settings")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return custodyDomain.ErrLedgerAlreadyInitialized
	}

	return nil
}

// Get returns the settings row.
func (p *PostgreSQLSettingsRepository) Get(ctx context.Context) (*custodyDomain.Settings, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT authority, paused, created_at, updated_at FROM ledger_settings WHERE id = $1`

	var settings custodyDomain.Settings
	var authority []byte

	err := querier.QueryRowContext(ctx, query, settingsRowID).Scan(
		&authority,
		&settings.Paused,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerDomain.ErrLedgerNotInitialized
		}
		return nil, apperrors.Wrap(err, "failed to get ledger settings")
	}

	if settings.Authority, err = ledgerDomain.IdentityFromBytes(authority); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode authority")
	}

	return &settings, nil
}

// SetPaused updates the pause flag.
func (p *PostgreSQLSettingsRepository) SetPaused(ctx context.Context, paused bool, updatedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE ledger_settings SET paused = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, paused, updatedAt, settingsRowID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update pause flag")
	}

	return requireRow(result, ledgerDomain.ErrLedgerNotInitialized)
}

// SetAuthority registers a new Authority identity.
func (p *PostgreSQLSettingsRepository) SetAuthority(
	ctx context.Context,
	authority ledgerDomain.Identity,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE ledger_settings SET authority = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, authority[:], updatedAt, settingsRowID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update authority")
	}

	return requireRow(result, ledgerDomain.ErrLedgerNotInitialized)
}

// CurrentAuthorityIdentity implements ledgerDomain.IdentityProvider.
func (p *PostgreSQLSettingsRepository) CurrentAuthorityIdentity(ctx context.Context) (ledgerDomain.Identity, error) {
	settings, err := p.Get(ctx)
	if err != nil {
		return ledgerDomain.Identity{}, err
	}
	return settings.Authority, nil
}

// NewPostgreSQLSettingsRepository creates a new PostgreSQL settings repository instance.
func NewPostgreSQLSettingsRepository(db *sql.DB) *PostgreSQLSettingsRepository {
	return &PostgreSQLSettingsRepository{db: db}
}

// requireRow returns notFound when the statement matched no row.
func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
