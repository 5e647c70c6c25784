package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/middleware"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestContextLoggerPropagatesMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seenCtx context.Context

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id_validated", "user-42")
		c.Next()
	})
	router.Use(middleware.ContextLogger(zap.NewNop()))
	router.GET("/ping", func(c *gin.Context) {
		seenCtx = c.Request.Context()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	meta := contextutil.ExtractMetadata(seenCtx)
	assert.Equal(t, "req-123", meta.RequestID)
	assert.Equal(t, "user-42", meta.UserID)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.NotNil(t, contextutil.GetLogger(seenCtx, nil))
}

func TestContextLoggerGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var rid string

	router := gin.New()
	router.Use(middleware.ContextLogger(zap.NewNop()))
	router.GET("/ping", func(c *gin.Context) {
		rid = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, w.Header().Get("X-Request-ID"))
}
