// Package http provides HTTP handlers for the custody pool, deposit records and the admin
// control surface.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/mist/internal/custody/http/dto"
	custodyUseCase "github.com/allisson/mist/internal/custody/usecase"
	apperrors "github.com/allisson/mist/internal/errors"
	"github.com/allisson/mist/internal/httputil"
	customValidation "github.com/allisson/mist/internal/validation"
)

// CustodyHandler serves deposits, deposit records and the pool view.
type CustodyHandler struct {
	custodyUseCase custodyUseCase.CustodyUseCase
	logger         *slog.Logger
}

// NewCustodyHandler creates a new CustodyHandler.
func NewCustodyHandler(custodyUseCase custodyUseCase.CustodyUseCase, logger *slog.Logger) *CustodyHandler {
	return &CustodyHandler{
		custodyUseCase: custodyUseCase,
		logger:         logger,
	}
}

// DepositHandler credits a payment to the pool.
// POST /v1/deposits - Public, rate limited.
// Returns 201 Created with the deposit record. The record carries no depositor identity.
func (h *CustodyHandler) DepositHandler(c *gin.Context) {
	var req dto.DepositRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.custodyUseCase.Deposit(c.Request.Context(), req.Funds(), req.EncryptedPayload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDepositRecordToResponse(record))
}

// GetPoolHandler returns the pool balances, the pause flag and the Authority.
// GET /v1/pool - Public.
func (h *CustodyHandler) GetPoolHandler(c *gin.Context) {
	pool, err := h.custodyUseCase.GetPool(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPoolToResponse(pool))
}

// GetDepositRecordHandler returns a deposit record.
// GET /v1/deposits/:id - Public.
func (h *CustodyHandler) GetDepositRecordHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	record, err := h.custodyUseCase.GetDepositRecord(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDepositRecordToResponse(record))
}

// ListDepositRecordsHandler lists deposit records with offset/limit pagination.
// GET /v1/deposits?offset=0&limit=50 - Public.
func (h *CustodyHandler) ListDepositRecordsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	records, err := h.custodyUseCase.ListDepositRecords(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDepositRecordsToListResponse(records))
}

// ConsumeDepositRecordHandler deletes a deposit record after settlement.
// DELETE /v1/deposits/:id - Authority only.
// Returns 204 No Content.
func (h *CustodyHandler) ConsumeDepositRecordHandler(c *gin.Context) {
	caller, ok := httputil.GetCaller(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.custodyUseCase.ConsumeDepositRecord(c.Request.Context(), caller, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CustodyHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid deposit record id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
