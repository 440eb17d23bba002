package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:3000", "https://whispr1.vercel.app"}))
	router.POST("/api/friends/add", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("should echo an allow-listed origin with credentials", func(t *testing.T) {
		req := require.New(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/friends/add", nil)
		r.Header.Set("Origin", "https://whispr1.vercel.app")
		corsRouter().ServeHTTP(w, r)

		req.Equal(http.StatusOK, w.Code)
		req.Equal("https://whispr1.vercel.app", w.Header().Get("Access-Control-Allow-Origin"))
		req.Equal("true", w.Header().Get("Access-Control-Allow-Credentials"))
		req.Equal("GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("should not echo an unknown origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/friends/add", nil)
		r.Header.Set("Origin", "https://evil.example.com")
		corsRouter().ServeHTTP(w, r)

		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should short-circuit preflight with 204", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/api/friends/add", nil)
		r.Header.Set("Origin", "http://localhost:3000")
		corsRouter().ServeHTTP(w, r)

		require.Equal(t, http.StatusNoContent, w.Code)
	})
}
