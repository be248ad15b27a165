// Package http exposes the spent-nullifier lookup.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/allisson/mist/internal/httputil"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	nullifierUseCase "github.com/allisson/mist/internal/nullifier/usecase"
	customValidation "github.com/allisson/mist/internal/validation"
)

// CheckNullifierRequest carries the nullifier to look up, hex encoded. It is hashed before
// the lookup and never stored.
type CheckNullifierRequest struct {
	Nullifier string `json:"nullifier"`
}

// Validate checks if the request is valid.
func (r *CheckNullifierRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nullifier, validation.Required, customValidation.Nullifier),
	)
}

// CheckNullifierResponse reports whether the nullifier was spent.
type CheckNullifierResponse struct {
	NullifierHash string `json:"nullifier_hash"`
	Spent         bool   `json:"spent"`
}

// NullifierHandler serves the nullifier registry lookup.
type NullifierHandler struct {
	nullifierUseCase nullifierUseCase.NullifierUseCase
	logger           *slog.Logger
}

// NewNullifierHandler creates a new NullifierHandler.
func NewNullifierHandler(nullifierUseCase nullifierUseCase.NullifierUseCase, logger *slog.Logger) *NullifierHandler {
	return &NullifierHandler{
		nullifierUseCase: nullifierUseCase,
		logger:           logger,
	}
}

// CheckHandler reports whether a nullifier is spent.
// POST /v1/nullifiers/check - Public. POST keeps the nullifier out of access logs.
func (h *NullifierHandler) CheckHandler(c *gin.Context) {
	var req CheckNullifierRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	nullifier, err := ledgerDomain.ParseNullifier(req.Nullifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	spent, err := h.nullifierUseCase.IsSpent(c.Request.Context(), nullifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, CheckNullifierResponse{
		NullifierHash: nullifier.Hash().String(),
		Spent:         spent,
	})
}
