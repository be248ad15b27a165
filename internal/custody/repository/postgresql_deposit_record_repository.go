package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// PostgreSQLDepositRecordRepository implements deposit record persistence for PostgreSQL databases.
type PostgreSQLDepositRecordRepository struct {
	db *sql.DB
}

// Create inserts a new deposit record.
func (p *PostgreSQLDepositRecordRepository) Create(ctx context.Context, record *custodyDomain.DepositRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO deposit_records (id, asset_type, amount, encrypted_payload, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		string(record.AssetType),
		int64(record.Amount),
		record.EncryptedPayload,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create deposit record")
	}
	return nil
}

// Get retrieves a deposit record by ID.
func (p *PostgreSQLDepositRecordRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*custodyDomain.DepositRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, asset_type, amount, encrypted_payload, created_at FROM deposit_records WHERE id = $1`

	var record custodyDomain.DepositRecord
	var asset string
	var amount int64

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&asset,
		&amount,
		&record.EncryptedPayload,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, custodyDomain.ErrDepositRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get deposit record")
	}

	record.AssetType = ledgerDomain.AssetType(asset)
	record.Amount = uint64(amount)
	return &record, nil
}

// List retrieves deposit records ordered by ID (creation order) with pagination.
func (p *PostgreSQLDepositRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*custodyDomain.DepositRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, asset_type, amount, encrypted_payload, created_at
			  FROM deposit_records
			  ORDER BY id
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list deposit records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*custodyDomain.DepositRecord, 0)
	for rows.Next() {
		var record custodyDomain.DepositRecord
		var asset string
		var amount int64

		if err := rows.Scan(&record.ID, &asset, &amount, &record.EncryptedPayload, &record.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan deposit record")
		}

		record.AssetType = ledgerDomain.AssetType(asset)
		record.Amount = uint64(amount)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate deposit records")
	}

	return records, nil
}

// Delete removes a deposit record. It returns ErrDepositRecordNotFound when nothing was deleted.
func (p *PostgreSQLDepositRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM deposit_records WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete deposit record")
	}

	return requireRow(result, custodyDomain.ErrDepositRecordNotFound)
}

// NewPostgreSQLDepositRecordRepository creates a new PostgreSQL deposit record repository instance.
func NewPostgreSQLDepositRecordRepository(db *sql.DB) *PostgreSQLDepositRecordRepository {
	return &PostgreSQLDepositRecordRepository{db: db}
}
