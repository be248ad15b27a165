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

// MySQLSettingsRepository implements ledger settings persistence for MySQL databases.
// It is also the ledger's IdentityProvider.
type MySQLSettingsRepository struct {
	db *sql.DB
}

// Create inserts the settings row. It returns ErrLedgerAlreadyInitialized when it exists.
func (m *MySQLSettingsRepository) Create(ctx context.Context, settings *custodyDomain.Settings) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO ledger_settings (id, authority, paused, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

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

	return requireRow(result, custodyDomain.ErrLedgerAlreadyInitialized)
}

// Get returns the settings row.
func (m *MySQLSettingsRepository) Get(ctx context.Context) (*custodyDomain.Settings, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT authority, paused, created_at, updated_at FROM ledger_settings WHERE id = ?`

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
func (m *MySQLSettingsRepository) SetPaused(ctx context.Context, paused bool, updatedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE ledger_settings SET paused = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, paused, updatedAt, settingsRowID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update pause flag")
	}

	return m.requireSettings(ctx, result)
}

// SetAuthority registers a new Authority identity.
func (m *MySQLSettingsRepository) SetAuthority(
	ctx context.Context,
	authority ledgerDomain.Identity,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE ledger_settings SET authority = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, authority[:], updatedAt, settingsRowID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update authority")
	}

	return m.requireSettings(ctx, result)
}

// requireSettings distinguishes a missing row from an update that changed nothing, since
// MySQL reports changed rows rather than matched rows.
func (m *MySQLSettingsRepository) requireSettings(ctx context.Context, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows > 0 {
		return nil
	}

	_, err = m.Get(ctx)
	return err
}

// CurrentAuthorityIdentity implements ledgerDomain.IdentityProvider.
func (m *MySQLSettingsRepository) CurrentAuthorityIdentity(ctx context.Context) (ledgerDomain.Identity, error) {
	settings, err := m.Get(ctx)
	if err != nil {
		return ledgerDomain.Identity{}, err
	}
	return settings.Authority, nil
}

// NewMySQLSettingsRepository creates a new MySQL settings repository instance.
func NewMySQLSettingsRepository(db *sql.DB) *MySQLSettingsRepository {
	return &MySQLSettingsRepository{db: db}
}
