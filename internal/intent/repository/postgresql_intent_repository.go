// Package repository implements swap intent and disbursement persistence for PostgreSQL
// and MySQL.
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

// PostgreSQLIntentRepository implements SwapIntent persistence for PostgreSQL databases.
type PostgreSQLIntentRepository struct {
	db *sql.DB
}

// Create inserts a new swap intent.
func (p *PostgreSQLIntentRepository) Create(ctx context.Context, intent *intentDomain.SwapIntent) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO swap_intents (id, encrypted_payload, asset_in, asset_out, deadline, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		intent.ID,
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
func (p *PostgreSQLIntentRepository) Get(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, encrypted_payload, asset_in, asset_out, deadline, created_at
			  FROM swap_intents WHERE id = $1`

	var intent intentDomain.SwapIntent
	var assetIn, assetOut string

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&intent.ID,
		&intent.EncryptedPayload,
		&assetIn,
		&assetOut,
		&intent.Deadline,
		&intent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, intentDomain.ErrIntentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get swap intent")
	}

	intent.AssetIn = ledgerDomain.AssetType(assetIn)
	intent.AssetOut = ledgerDomain.AssetType(assetOut)
	return &intent, nil
}

// List retrieves open swap intents ordered by ID (creation order) with pagination.
func (p *PostgreSQLIntentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*intentDomain.SwapIntent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, encrypted_payload, asset_in, asset_out, deadline, created_at
			  FROM swap_intents
			  ORDER BY id
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list swap intents")
	}
	defer func() {
		_ = rows.Close()
	}()

	intents := make([]*intentDomain.SwapIntent, 0)
	for rows.Next() {
		var intent intentDomain.SwapIntent
		var assetIn, assetOut string

		err := rows.Scan(
			&intent.ID,
			&intent.EncryptedPayload,
			&assetIn,
			&assetOut,
			&intent.Deadline,
			&intent.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan swap intent")
		}

		intent.AssetIn = ledgerDomain.AssetType(assetIn)
		intent.AssetOut = ledgerDomain.AssetType(assetOut)
		intents = append(intents, &intent)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate swap intents")
	}

	return intents, nil
}

// Delete destroys a swap intent. It returns ErrIntentNotFound when nothing was deleted,
// which is also how a concurrent settlement of the same intent loses the race.
func (p *PostgreSQLIntentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM swap_intents WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete swap intent")
	}

	return requireRow(result, intentDomain.ErrIntentNotFound)
}

// NewPostgreSQLIntentRepository creates a new PostgreSQL intent repository instance.
func NewPostgreSQLIntentRepository(db *sql.DB) *PostgreSQLIntentRepository {
	return &PostgreSQLIntentRepository{db: db}
}

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
