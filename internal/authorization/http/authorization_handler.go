// Package http exposes the authorization gate consulted by key-share holders before they
// release a share.
package http

import (
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	authorizationUseCase "github.com/allisson/mist/internal/authorization/usecase"
	apperrors "github.com/allisson/mist/internal/errors"
	"github.com/allisson/mist/internal/httputil"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	customValidation "github.com/allisson/mist/internal/validation"
)

// CheckRequest asks whether requester may obtain key shares for the payload identifier ID.
type CheckRequest struct {
	ID        string `json:"id"`
	Requester string `json:"requester"`
}

// Validate checks if the request is valid.
func (r *CheckRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.Hex),
		validation.Field(&r.Requester, validation.Required, customValidation.Identity),
	)
}

// CheckResponse is the gate decision. Reason is the error code of a denial.
type CheckResponse struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`
}

// AuthorizationHandler serves authorization checks.
type AuthorizationHandler struct {
	authorizationUseCase authorizationUseCase.AuthorizationUseCase
	logger               *slog.Logger
}

// NewAuthorizationHandler creates a new AuthorizationHandler.
func NewAuthorizationHandler(
	authorizationUseCase authorizationUseCase.AuthorizationUseCase,
	logger *slog.Logger,
) *AuthorizationHandler {
	return &AuthorizationHandler{
		authorizationUseCase: authorizationUseCase,
		logger:               logger,
	}
}

// CheckHandler evaluates the gate.
// POST /v1/authorization/check - Public, rate limited.
// Returns 200 when authorized, 403 when denied and 422 when the identifier is malformed.
func (h *AuthorizationHandler) CheckHandler(c *gin.Context) {
	var req CheckRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := hex.DecodeString(strings.TrimPrefix(req.ID, "0x"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	requester, err := ledgerDomain.ParseIdentity(req.Requester)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	decision, err := h.authorizationUseCase.Authorize(c.Request.Context(), id, requester)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if decision.Authorized {
		c.JSON(http.StatusOK, CheckResponse{Authorized: true})
		return
	}

	status := http.StatusForbidden
	if apperrors.Is(decision.Reason, apperrors.ErrInvalidInput) {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, CheckResponse{Authorized: false, Reason: httputil.ErrorCode(decision.Reason)})
}
