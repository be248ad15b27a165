package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MySQLIntentRepository implements SwapIntent persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLIntentRepository struct {
	db *sql.DB
}

// Create inserts a new swap intent.
func (m *MySQLIntentRepository) Create(ctx context.Context, intent *intentDomain.SwapIntent) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO swap_intents (id, encrypted_payload, asset_in, asset_out, deadline, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := intent.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal swap intent id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		intent.EncryptedPayload,
		string(intent.AssetIn),
		string(intent.AssetOut),
		intent.Deadline,
		intent.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create swap intent")
	}
	return nil
}

// Get retrieves a swap intent by ID.
func (m *MySQLIntentRepository) Get(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, encrypted_payload, asset_in, asset_out, deadline, created_at
			  FROM swap_intents WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal swap intent id")
	}

	intent, err := scanMySQLIntent(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, intentDomain.ErrIntentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get swap intent")
	}

	return intent, nil
}

// List retrieves open swap intents ordered by ID (creation order) with pagination.
func (m *MySQLIntentRepository) List(ctx context.Context, offset, limit int) ([]*intentDomain.SwapIntent, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, encrypted_payload, asset_in, asset_out, deadline, created_at
			  FROM swap_intents
			  ORDER BY id
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list swap intents")
	}
	defer func() {
		_ = rows.Close()
	}()

	intents := make([]*intentDomain.SwapIntent, 0)
	for rows.Next() {
		intent, err := scanMySQLIntent(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan swap intent")
		}
		intents = append(intents, intent)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate swap intents")
	}

	return intents, nil
}

// Delete destroys a swap intent. It returns ErrIntentNotFound when nothing was deleted.
func (m *MySQLIntentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal swap intent id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM swap_intents WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete swap intent")
	}

	return requireRow(result, intentDomain.ErrIntentNotFound)
}

// NewMySQLIntentRepository creates a new MySQL intent repository instance.
func NewMySQLIntentRepository(db *sql.DB) *MySQLIntentRepository {
	return &MySQLIntentRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLIntent(row rowScanner) (*intentDomain.SwapIntent, error) {
	var intent intentDomain.SwapIntent
	var id []byte
	var assetIn, assetOut string

	err := row.Scan(&id, &intent.EncryptedPayload, &assetIn, &assetOut, &intent.Deadline, &intent.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := intent.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal swap intent id")
	}

	intent.AssetIn = ledgerDomain.AssetType(assetIn)
	intent.AssetOut = ledgerDomain.AssetType(assetOut)
	return &intent, nil
}
