package dto

import (
	"time"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
)

// PoolBalanceResponse is one asset balance of the pool.
type PoolBalanceResponse struct {
	AssetType string    `json:"asset_type"`
	Balance   uint64    `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PoolResponse is the public view of the custody pool.
type PoolResponse struct {
	Authority string                `json:"authority"`
	Paused    bool                  `json:"paused"`
	Balances  []PoolBalanceResponse `json:"balances"`
}

// MapPoolToResponse converts the pool view to its API response.
func MapPoolToResponse(pool *custodyDomain.Pool) PoolResponse {
	balances := make([]PoolBalanceResponse, 0, len(pool.Balances))
	for _, b := range pool.Balances {
		balances = append(balances, PoolBalanceResponse{
			AssetType: b.AssetType.String(),
			Balance:   b.Balance,
			UpdatedAt: b.UpdatedAt,
		})
	}

	return PoolResponse{
		Authority: pool.Authority.String(),
		Paused:    pool.Paused,
		Balances:  balances,
	}
}

// DepositRecordResponse represents a deposit record in API responses.
type DepositRecordResponse struct {
	ID               string    `json:"id"`
	AssetType        string    `json:"asset_type"`
	Amount           uint64    `json:"amount"`
	EncryptedPayload []byte    `json:"encrypted_payload"`
	CreatedAt        time.Time `json:"created_at"`
}

// MapDepositRecordToResponse converts a deposit record to its API response.
func MapDepositRecordToResponse(record *custodyDomain.DepositRecord) DepositRecordResponse {
	return DepositRecordResponse{
		ID:               record.ID.String(),
		AssetType:        record.AssetType.String(),
		Amount:           record.Amount,
		EncryptedPayload: record.EncryptedPayload,
		CreatedAt:        record.CreatedAt,
	}
}

// ListDepositRecordsResponse is a page of deposit records.
type ListDepositRecordsResponse struct {
	Data []DepositRecordResponse `json:"data"`
}

// MapDepositRecordsToListResponse converts deposit records to a list response.
func MapDepositRecordsToListResponse(records []*custodyDomain.DepositRecord) ListDepositRecordsResponse {
	data := make([]DepositRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapDepositRecordToResponse(record))
	}
	return ListDepositRecordsResponse{Data: data}
}
