//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"appointment-engine/internal/domain/owner"
	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/infra/redisstore"
	"appointment-engine/internal/pkg/jwt"
	"appointment-engine/internal/usecase"
	"appointment-engine/tests/common/httptest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	svc := jwt.NewService("test-secret", "")
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))

	r := gin.New()
	g := r.Group("/api", auth.RequireAuth())
	g.GET("/me", func(c *gin.Context) {
		id, _ := middleware.GetOwnerID(c)
		role, _ := middleware.GetOwnerRole(c)
		c.JSON(http.StatusOK, gin.H{"owner_id": id.String(), "role": string(role)})
	})
	g.POST("/write", auth.RequireRoleAtLeast(owner.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, svc
}

func TestRequireAuth(t *testing.T) {
	router, svc := newAuthRouter(t)
	ownerID := uuid.New()

	t.Run("success: claims land in the context", func(t *testing.T) {
		token, err := svc.GenerateToken(ownerID, owner.RoleViewer, time.Hour)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/api/me", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, ownerID.String(), body["owner_id"])
		assert.Equal(t, "viewer", body["role"])
	})

	t.Run("error: missing token", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/api/me", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("error: expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(ownerID, owner.RoleAdmin, -time.Minute)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/api/me", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("error: token signed with another secret", func(t *testing.T) {
		token, err := jwt.NewService("other-secret", "").GenerateToken(ownerID, owner.RoleAdmin, time.Hour)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/api/me", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	router, svc := newAuthRouter(t)

	tests := []struct {
		role owner.Role
		want int
	}{
		{owner.RoleViewer, http.StatusForbidden},
		{owner.RoleOperator, http.StatusNoContent},
		{owner.RoleAdmin, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, err := svc.GenerateToken(uuid.New(), tt.role, time.Hour)
			require.NoError(t, err)

			w := httptest.PerformRequest(t, router, http.MethodPost, "/api/write", nil, token)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))
		r := gin.New()
		r.GET("/x", auth.RequireRoleAtLeast(owner.RoleViewer), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := nethttptest.NewRecorder()
		r.ServeHTTP(w, nethttptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func newRateLimitedRouter(t *testing.T, limit int, failOpen bool) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := redisstore.NewRateLimiter(rdb, limit, time.Minute, "rl:agent")
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/agents/:agent_id/ping", middleware.RateLimit(rl, "agent_id", failOpen), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r, mr
}

func TestRateLimit(t *testing.T) {
	t.Run("counts per path parameter", func(t *testing.T) {
		router, _ := newRateLimitedRouter(t, 2, true)

		var last *nethttptest.ResponseRecorder
		for i := 0; i < 2; i++ {
			last = httptest.PerformRequest(t, router, http.MethodGet, "/agents/a1/ping", nil, "")
			require.Equal(t, http.StatusOK, last.Code)
		}
		assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))

		w := httptest.PerformRequest(t, router, http.MethodGet, "/agents/a1/ping", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusTooManyRequests, "Rate limit exceeded")
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

		other := httptest.PerformRequest(t, router, http.MethodGet, "/agents/a2/ping", nil, "")
		assert.Equal(t, http.StatusOK, other.Code)
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		router, mr := newRateLimitedRouter(t, 1, true)
		mr.Close()

		w := httptest.PerformRequest(t, router, http.MethodGet, "/agents/a1/ping", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("fails closed when configured", func(t *testing.T) {
		router, mr := newRateLimitedRouter(t, 1, false)
		mr.Close()

		w := httptest.PerformRequest(t, router, http.MethodGet, "/agents/a1/ping", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "Rate limiter unavailable")
	})
}
