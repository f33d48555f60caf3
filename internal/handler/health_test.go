package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHealthSinBaseDeDatos(t *testing.T) {
	// A gorm.DB without a connection pool fails the ping: that alone is a
	// 503. The absent cache client is reported as degraded, not as an error.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health(&gorm.DB{Config: &gorm.Config{}}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok": false, "db": "error", "cache": "degraded"}`, w.Body.String())
}
