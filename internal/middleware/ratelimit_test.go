package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string, int, time.Duration) bool { return false }

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string, int, time.Duration) bool { return true }

func TestRateLimitScopedToGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := router.Group("/auth")
	auth.Use(RateLimit(denyAllLimiter{}, 5, time.Minute))
	auth.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.GET("/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")

	// Routes outside the limited group are unaffected
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(allowAllLimiter{}, 5, time.Minute))
	router.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitNilLimiterAllows(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit((*RedisLimiter)(nil), 5, time.Minute))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
