package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) {
		*seen = logger.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	engine := newTestEngine(&seen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(w, req)

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsGatewayAssignedID(t *testing.T) {
	var seen string
	engine := newTestEngine(&seen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "gw-7c1f2a")
	engine.ServeHTTP(w, req)

	assert.Equal(t, "gw-7c1f2a", seen)
	assert.Equal(t, "gw-7c1f2a", w.Header().Get(RequestIDHeader))
}
