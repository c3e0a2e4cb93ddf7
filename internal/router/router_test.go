package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-community-events/config"
	"github.com/oksasatya/go-community-events/internal/container"
	"github.com/oksasatya/go-community-events/pkg/helpers"
)

func newTestEngine(t *testing.T, debug bool) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	jwt := helpers.NewJWTManager("secret", time.Hour, "community-events")
	c := container.New(container.Infra{
		Config: &config.Config{RateLimitPerMinute: 60, DebugMetricsEnabled: debug},
		DB:     pool,
		JWT:    jwt,
	})

	engine := gin.New()
	reg := NewRegistry(engine)
	InitModules(reg, c)
	reg.RegisterAll()
	return engine, jwt
}

func TestRoutes_Registered(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t, true)

	have := map[string]bool{}
	for _, r := range engine.Routes() {
		have[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/events",
		"GET /api/events",
		"GET /api/events/search",
		"GET /api/events/:id",
		"PATCH /api/events/:id",
		"DELETE /api/events/:id",
		"POST /api/events/:id/banner",
		"POST /api/events/:id/join",
		"POST /api/events/:id/leave",
		"GET /api/events/:id/donations",
		"POST /api/donations",
		"GET /api/users/:id/donations",
		"GET /api/users/:id/events",
		"GET /api/users/:id/profile",
		"GET /api/users/me",
		"PATCH /api/users/me",
		"POST /api/users/me/avatar",
		"POST /api/blog-posts",
		"GET /api/blog-posts",
		"GET /api/blog-posts/:id",
		"PATCH /api/blog-posts/:id",
		"DELETE /api/blog-posts/:id",
		"GET /api/debug/vars",
	} {
		assert.True(t, have[want], want)
	}
}

func TestRoutes_DebugDisabled(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t, false)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_AuthBoundary(t *testing.T) {
	t.Parallel()

	engine, jwt := newTestEngine(t, true)
	token, _, err := jwt.GenerateAccessToken("8f14e45f-ceea-4672-a5f2-3c0b1f5a6e21")
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "create needs token", method: http.MethodPost, path: "/api/events", want: http.StatusUnauthorized},
		{name: "join needs token", method: http.MethodPost, path: "/api/events/x/join", want: http.StatusUnauthorized},
		{name: "donate needs token", method: http.MethodPost, path: "/api/donations", want: http.StatusUnauthorized},
		{name: "profile needs token", method: http.MethodGet, path: "/api/users/me", want: http.StatusUnauthorized},
		{name: "public read reaches service", method: http.MethodGet, path: "/api/events/not-a-uuid", want: http.StatusNotFound},
		{name: "authed join reaches service", method: http.MethodPost, path: "/api/events/not-a-uuid/join", token: token, want: http.StatusNotFound},
		{name: "debug vars", method: http.MethodGet, path: "/api/debug/vars", want: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
