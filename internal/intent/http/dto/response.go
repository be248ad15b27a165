package dto

import (
	"time"

	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// IntentResponse represents a swap intent in API responses.
type IntentResponse struct {
	ID               string    `json:"id"`
	EncryptedPayload []byte    `json:"encrypted_payload"`
	AssetIn          string    `json:"asset_in"`
	AssetOut         string    `json:"asset_out"`
	Deadline         time.Time `json:"deadline"`
	CreatedAt        time.Time `json:"created_at"`
}

// MapIntentToResponse converts a swap intent to its API response.
func MapIntentToResponse(intent *intentDomain.SwapIntent) IntentResponse {
	return IntentResponse{
		ID:               intent.ID.String(),
		EncryptedPayload: intent.EncryptedPayload,
		AssetIn:          intent.AssetIn.String(),
		AssetOut:         intent.AssetOut.String(),
		Deadline:         intent.Deadline,
		CreatedAt:        intent.CreatedAt,
	}
}

// ListIntentsResponse is a page of swap intents.
type ListIntentsResponse struct {
	Data []IntentResponse `json:"data"`
}

// MapIntentsToListResponse converts swap intents to a list response.
func MapIntentsToListResponse(intents []*intentDomain.SwapIntent) ListIntentsResponse {
	data := make([]IntentResponse, 0, len(intents))
	for _, intent := range intents {
		data = append(data, MapIntentToResponse(intent))
	}
	return ListIntentsResponse{Data: data}
}

// DisbursementResponse is one executed leg of a direct settlement.
type DisbursementResponse struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

// SettlementResponse describes a completed direct settlement. Only the nullifier hash is
// returned.
type SettlementResponse struct {
	NullifierHash string                 `json:"nullifier_hash"`
	AssetType     string                 `json:"asset_type"`
	Total         uint64                 `json:"total"`
	Disbursements []DisbursementResponse `json:"disbursements"`
}

// MapSettlementToResponse converts a settlement to its API response.
func MapSettlementToResponse(settlement *intentDomain.Settlement) SettlementResponse {
	disbursements := make([]DisbursementResponse, 0, len(settlement.Disbursements))
	for _, d := range settlement.Disbursements {
		disbursements = append(disbursements, DisbursementResponse{
			ID:          d.ID.String(),
			Destination: d.Destination.String(),
			Amount:      d.Amount,
		})
	}

	return SettlementResponse{
		NullifierHash: settlement.NullifierHash.String(),
		AssetType:     settlement.AssetType.String(),
		Total:         settlement.Total,
		Disbursements: disbursements,
	}
}

// WithdrawResponse is the value handed to the Authority for external routing.
type WithdrawResponse struct {
	AssetType string `json:"asset_type"`
	Amount    uint64 `json:"amount"`
}

// MapFundsToWithdrawResponse converts withdrawn funds to their API response.
func MapFundsToWithdrawResponse(funds ledgerDomain.Funds) WithdrawResponse {
	return WithdrawResponse{
		AssetType: funds.Asset.String(),
		Amount:    funds.Amount,
	}
}
