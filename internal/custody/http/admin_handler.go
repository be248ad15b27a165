package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/mist/internal/custody/http/dto"
	custodyUseCase "github.com/allisson/mist/internal/custody/usecase"
	"github.com/allisson/mist/internal/httputil"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	customValidation "github.com/allisson/mist/internal/validation"
)

type capabilityKey struct{}

// WithCapability stores the presented admin capability in the context.
func WithCapability(ctx context.Context, capability string) context.Context {
	return context.WithValue(ctx, capabilityKey{}, capability)
}

// GetCapability retrieves the presented admin capability from the context.
func GetCapability(ctx context.Context) (string, bool) {
	capability, ok := ctx.Value(capabilityKey{}).(string)
	return capability, ok && capability != ""
}

// AdminCapabilityMiddleware extracts the admin capability from "Authorization: Bearer <secret>"
// (case-insensitive scheme). A missing or malformed header yields 401. The secret itself is
// verified by the admin use case on every call.
func AdminCapabilityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerPrefix = "bearer "

		authHeader := c.GetHeader("Authorization")
		if len(authHeader) <= len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("admin request without bearer capability")
			httputil.HandleErrorGin(c, ledgerDomain.ErrNotAuthorized, logger)
			c.Abort()
			return
		}

		ctx := WithCapability(c.Request.Context(), authHeader[len(bearerPrefix):])
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminHandler serves the admin control surface.
type AdminHandler struct {
	adminUseCase custodyUseCase.AdminUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminUseCase custodyUseCase.AdminUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// SetPauseHandler sets the pause flag.
// POST /v1/admin/pause - Admin capability.
func (h *AdminHandler) SetPauseHandler(c *gin.Context) {
	capability, ok := h.capability(c)
	if !ok {
		return
	}

	var req dto.SetPauseRequest
	if !h.bind(c, &req, req.Validate) {
		return
	}

	if err := h.adminUseCase.SetPause(c.Request.Context(), capability, *req.Paused); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paused": *req.Paused})
}

// RotateAuthorityHandler registers a new Authority identity.
// POST /v1/admin/authority - Admin capability.
func (h *AdminHandler) RotateAuthorityHandler(c *gin.Context) {
	capability, ok := h.capability(c)
	if !ok {
		return
	}

	var req dto.RotateAuthorityRequest
	if !h.bind(c, &req, req.Validate) {
		return
	}

	authority, err := ledgerDomain.ParseIdentity(req.Authority)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.adminUseCase.RotateAuthority(c.Request.Context(), capability, authority); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authority": authority.String()})
}

// TopUpHandler adds admin funds to the pool.
// POST /v1/admin/top-up - Admin capability.
func (h *AdminHandler) TopUpHandler(c *gin.Context) {
	capability, ok := h.capability(c)
	if !ok {
		return
	}

	var req dto.TopUpRequest
	if !h.bind(c, &req, req.Validate) {
		return
	}

	if err := h.adminUseCase.TopUp(c.Request.Context(), capability, req.Funds()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) capability(c *gin.Context) (string, bool) {
	capability, ok := GetCapability(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, ledgerDomain.ErrNotAuthorized, h.logger)
		return "", false
	}
	return capability, true
}

// bind decodes the JSON body into req and runs validate.
func (h *AdminHandler) bind(c *gin.Context, req any, validate func() error) bool {
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
