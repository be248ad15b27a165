// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	apperrors "github.com/allisson/mist/internal/errors"
	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ledgerErrorCodes gives every ledger error a stable machine readable code. Order matters:
// the first match wins.
var ledgerErrorCodes = []struct {
	err  error
	code string
}{
	{ledgerDomain.ErrNullifierSpent, "nullifier_spent"},
	{ledgerDomain.ErrNotAuthority, "not_authority"},
	{ledgerDomain.ErrInsufficientBalance, "insufficient_balance"},
	{ledgerDomain.ErrPaused, "paused"},
	{ledgerDomain.ErrNotAuthorized, "not_authorized"},
	{ledgerDomain.ErrDeadlinePassed, "deadline_passed"},
	{ledgerDomain.ErrDeadlineNotPassed, "deadline_not_passed"},
	{ledgerDomain.ErrInvalidIdentity, "invalid_identity"},
	{ledgerDomain.ErrInvalidNullifier, "invalid_nullifier"},
	{ledgerDomain.ErrInvalidAssetType, "invalid_asset_type"},
	{ledgerDomain.ErrInvalidAmount, "invalid_amount"},
	{ledgerDomain.ErrPayloadTooLarge, "payload_too_large"},
	{ledgerDomain.ErrLedgerNotInitialized, "ledger_not_initialized"},
	{custodyDomain.ErrDepositRecordNotFound, "deposit_record_not_found"},
	{custodyDomain.ErrLedgerAlreadyInitialized, "ledger_already_initialized"},
	{custodyDomain.ErrCapabilityAlreadyMinted, "capability_already_minted"},
	{intentDomain.ErrIntentNotFound, "intent_not_found"},
	{intentDomain.ErrInvalidLegs, "invalid_legs"},
	{intentDomain.ErrNothingToDisburse, "nothing_to_disburse"},
	{intentDomain.ErrInvalidDeadline, "invalid_deadline"},
	{authorizationDomain.ErrInvalidNamespace, "invalid_namespace"},
	{authorizationDomain.ErrInvalidIDLength, "invalid_id_length"},
	{authorizationDomain.ErrAccessDenied, "access_denied"},
}

// ErrorCode returns the ledger error code for err, or an empty string.
func ErrorCode(err error) string {
	for _, entry := range ledgerErrorCodes {
		if apperrors.Is(err, entry.err) {
			return entry.code
		}
	}
	return ""
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorResponse = ErrorResponse{
			Error:   "unavailable",
			Message: err.Error(),
		}

	default:
		// Internal details stay in the log
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}
	errorResponse.Code = ErrorCode(err)

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
