package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/eval-survey-server/utils"
)

func serve(t *testing.T, r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	admin, err := utils.GenerateToken("hr", utils.RoleAdmin, time.Hour)
	require.NoError(t, err)
	editor, err := utils.GenerateToken("lead", utils.RoleEditor, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		chain  []gin.HandlerFunc
		auth   string
		status int
	}{
		{"jwt missing header", []gin.HandlerFunc{AuthJWT()}, "", http.StatusUnauthorized},
		{"jwt garbage", []gin.HandlerFunc{AuthJWT()}, "Bearer nope", http.StatusUnauthorized},
		{"jwt ok", []gin.HandlerFunc{AuthJWT()}, "Bearer " + editor, http.StatusOK},
		{"optional without token", []gin.HandlerFunc{OptionalAuth()}, "", http.StatusOK},
		{"optional with garbage", []gin.HandlerFunc{OptionalAuth()}, "Bearer nope", http.StatusOK},
		{"admin without claims", []gin.HandlerFunc{OptionalAuth(), RequireAdmin()}, "", http.StatusUnauthorized},
		{"admin with editor role", []gin.HandlerFunc{AuthJWT(), RequireAdmin()}, "Bearer " + editor, http.StatusForbidden},
		{"admin ok", []gin.HandlerFunc{AuthJWT(), RequireAdmin()}, "bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			handlers := append(tt.chain, func(c *gin.Context) { c.Status(http.StatusOK) })
			r.GET("/x", handlers...)
			w := serve(t, r, map[string]string{"Authorization": tt.auth})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewIPRateLimiter(1, 2, time.Minute)
	defer rl.Close()

	r := gin.New()
	r.GET("/x", RateLimitByIP(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(t, r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(t, r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(t, r, nil).Code)

	// each IP has its own bucket
	assert.True(t, rl.Allow("10.0.0.9"))
}
