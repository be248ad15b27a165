// Package http provides HTTP handlers for swap intents and their settlement.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/mist/internal/errors"
	"github.com/allisson/mist/internal/httputil"
	"github.com/allisson/mist/internal/intent/http/dto"
	intentUseCase "github.com/allisson/mist/internal/intent/usecase"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	customValidation "github.com/allisson/mist/internal/validation"
)

// IntentHandler serves swap intent creation, lookup and the Authority settlement routes.
type IntentHandler struct {
	intentUseCase intentUseCase.IntentUseCase
	logger        *slog.Logger
}

// NewIntentHandler creates a new IntentHandler.
func NewIntentHandler(intentUseCase intentUseCase.IntentUseCase, logger *slog.Logger) *IntentHandler {
	return &IntentHandler{
		intentUseCase: intentUseCase,
		logger:        logger,
	}
}

// CreateHandler publishes a swap intent.
// POST /v1/intents - Public, rate limited.
func (h *IntentHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateIntentRequest
	if !h.bind(c, &req, req.Validate) {
		return
	}

	intent, err := h.intentUseCase.CreateIntent(
		c.Request.Context(),
		req.EncryptedPayload,
		ledgerDomain.AssetType(req.AssetIn),
		ledgerDomain.AssetType(req.AssetOut),
		req.Deadline,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIntentToResponse(intent))
}

// GetHandler returns a live swap intent.
// GET /v1/intents/:id - Public.
func (h *IntentHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	intent, err := h.intentUseCase.GetIntent(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIntentToResponse(intent))
}

// ListHandler lists live swap intents.
// GET /v1/intents?offset=0&limit=50 - Public.
func (h *IntentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	intents, err := h.intentUseCase.ListIntents(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIntentsToListResponse(intents))
}

// SettleDirectHandler settles an intent to destinations on this ledger.
// POST /v1/intents/:id/settle - Authority only.
func (h *IntentHandler) SettleDirectHandler(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SettleDirectRequest
	if !h.bind(c, &req, req.Validate) {
		return
	}

	nullifier, err := ledgerDomain.ParseNullifier(req.Nullifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	legs, err := req.DomainLegs()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	settlement, err := h.intentUseCase.SettleDirect(c.Request.Context(), caller, id, nullifier, legs)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettlementToResponse(settlement))
}

// SettleViaExternalVenueHandler debits the pool for routing through an external venue.
// POST /v1/intents/:id/withdraw - Authority only.
func (h *IntentHandler) SettleViaExternalVenueHandler(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if !h.bind(c, &req, req.Validate) {
		return
	}

	nullifier, err := ledgerDomain.ParseNullifier(req.Nullifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	funds, err := h.intentUseCase.SettleViaExternalVenue(c.Request.Context(), caller, id, nullifier, req.Amount)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFundsToWithdrawResponse(funds))
}

// CancelExpiredHandler deletes an intent past its deadline.
// POST /v1/intents/:id/cancel - Authority only.
func (h *IntentHandler) CancelExpiredHandler(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.intentUseCase.CancelExpired(c.Request.Context(), caller, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *IntentHandler) caller(c *gin.Context) (ledgerDomain.Identity, bool) {
	caller, ok := httputil.GetCaller(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return ledgerDomain.Identity{}, false
	}
	return caller, true
}

func (h *IntentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid intent id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

func (h *IntentHandler) bind(c *gin.Context, req any, validate func() error) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}
