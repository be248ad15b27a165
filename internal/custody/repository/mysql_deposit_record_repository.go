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

// MySQLDepositRecordRepository implements deposit record persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLDepositRecordRepository struct {
	db *sql.DB
}

// Create inserts a new deposit record.
func (m *MySQLDepositRecordRepository) Create(ctx context.Context, record *custodyDomain.DepositRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO deposit_records (id, asset_type, amount, encrypted_payload, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal deposit record id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLDepositRecordRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*custodyDomain.DepositRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, asset_type, amount, encrypted_payload, created_at FROM deposit_records WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal deposit record id")
	}

	record, err := scanMySQLDepositRecord(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, custodyDomain.ErrDepositRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get deposit record")
	}

	return record, nil
}

// List retrieves deposit records ordered by ID (creation order) with pagination.
func (m *MySQLDepositRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*custodyDomain.DepositRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, asset_type, amount, encrypted_payload, created_at
			  FROM deposit_records
			  ORDER BY id
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list deposit records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*custodyDomain.DepositRecord, 0)
	for rows.Next() {
		record, err := scanMySQLDepositRecord(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan deposit record")
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate deposit records")
	}

	return records, nil
}

// Delete removes a deposit record. It returns ErrDepositRecordNotFound when nothing was deleted.
func (m *MySQLDepositRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal deposit record id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM deposit_records WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete deposit record")
	}

	return requireRow(result, custodyDomain.ErrDepositRecordNotFound)
}

// NewMySQLDepositRecordRepository creates a new MySQL deposit record repository instance.
func NewMySQLDepositRecordRepository(db *sql.DB) *MySQLDepositRecordRepository {
	return &MySQLDepositRecordRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLDepositRecord(row rowScanner) (*custodyDomain.DepositRecord, error) {
	var record custodyDomain.DepositRecord
	var id []byte
	var asset string
	var amount int64

	if err := row.Scan(&id, &asset, &amount, &record.EncryptedPayload, &record.CreatedAt); err != nil {
		return nil, err
	}

	if err := record.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal deposit record id")
	}

	record.AssetType = ledgerDomain.AssetType(asset)
	record.Amount = uint64(amount)
	return &record, nil
}
