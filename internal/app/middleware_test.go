package app

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront/internal/auth"
	dom "storefront/internal/domain"
	"storefront/internal/logger"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.FromSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetSession(c, auth.Session{UserID: 7, Role: dom.RoleCustomer})
		c.Next()
	}, requestLogger(log))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/3", nil))
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "path=/items/:id")
	assert.Contains(t, out, "status=204")
	assert.Contains(t, out, "user_id=7")

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))
	out = buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "db down")

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), "path=/missing")
	assert.Contains(t, buf.String(), "status=404")
}
