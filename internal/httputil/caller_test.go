package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

func TestCallerIdentityMiddleware(t *testing.T) {
	newRouter := func(seen *ledgerDomain.Identity) *gin.Engine {
		router := gin.New()
		router.Use(CallerIdentityMiddleware(nil))
		router.GET("/", func(c *gin.Context) {
			caller, ok := GetCaller(c.Request.Context())
			require.True(t, ok)
			*seen = caller
			c.Status(http.StatusNoContent)
		})
		return router
	}

	t.Run("Success", func(t *testing.T) {
		var seen ledgerDomain.Identity
		router := newRouter(&seen)
		identity := "0x" + strings.Repeat("a0", 32)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CallerIdentityHeader, identity)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, identity, seen.String())
	})

	t.Run("MissingHeader", func(t *testing.T) {
		var seen ledgerDomain.Identity
		router := newRouter(&seen)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, seen.IsZero())
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		var seen ledgerDomain.Identity
		router := newRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CallerIdentityHeader, "0x1234")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetCaller_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetCaller(req.Context())
	assert.False(t, ok)
}
