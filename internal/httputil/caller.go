package httputil

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// CallerIdentityHeader carries the caller identity attested by the gateway in front of the
// service.
const CallerIdentityHeader = "X-Caller-Identity"

type callerKey struct{}

// WithCaller stores the caller identity in the context.
func WithCaller(ctx context.Context, caller ledgerDomain.Identity) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller retrieves the caller identity from the context.
func GetCaller(ctx context.Context) (ledgerDomain.Identity, bool) {
	caller, ok := ctx.Value(callerKey{}).(ledgerDomain.Identity)
	return caller, ok
}

// CallerIdentityMiddleware reads the caller identity header and stores it in the request
// context. Requests without a well-formed identity are rejected with 401. Whether the caller
// is the Authority is decided by the use case, not here.
func CallerIdentityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(CallerIdentityHeader)
		if header == "" {
			HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		caller, err := ledgerDomain.ParseIdentity(header)
		if err != nil {
			HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "malformed caller identity"), logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}
