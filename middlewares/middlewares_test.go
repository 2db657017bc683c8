package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/utils"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	admin := router.Group("/admin", AuthMiddleware())
	admin.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	admin.GET("/clean", RequireRoles("cleaner"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/ws", WebSocketAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func request(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := setupAuthRouter()
	token, err := utils.GenerateToken(7, "staff")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, request(router, "/admin/whoami", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "/admin/whoami", "garbage").Code)

	w := request(router, "/admin/whoami", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff")

	utils.BlacklistToken(token)
	assert.Equal(t, http.StatusUnauthorized, request(router, "/admin/whoami", token).Code)
}

func TestRequireRoles(t *testing.T) {
	router := setupAuthRouter()
	staff, _ := utils.GenerateToken(1, "staff")
	cleaner, _ := utils.GenerateToken(2, "cleaner")
	admin, _ := utils.GenerateToken(3, "admin")

	assert.Equal(t, http.StatusForbidden, request(router, "/admin/clean", staff).Code)
	assert.Equal(t, http.StatusNoContent, request(router, "/admin/clean", cleaner).Code)
	assert.Equal(t, http.StatusNoContent, request(router, "/admin/clean", admin).Code)
}

func TestWebSocketAuthUsesQueryToken(t *testing.T) {
	router := setupAuthRouter()
	token, _ := utils.GenerateToken(9, "staff")

	assert.Equal(t, http.StatusUnauthorized, request(router, "/ws", "").Code)
	assert.Equal(t, http.StatusOK, request(router, "/ws?token="+token, "").Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRateLimiter(0.001, 2).RateLimit())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, request(router, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, request(router, "/ping", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(router, "/ping", "").Code)
}
