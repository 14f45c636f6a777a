package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"refurb-tracker/config"
	"refurb-tracker/internal/repositories"
	appconfig "refurb-tracker/pkg/config"
	"refurb-tracker/pkg/eventbus"
	"refurb-tracker/pkg/filestorage"
	"refurb-tracker/pkg/metrics"
	"refurb-tracker/pkg/service"
	"refurb-tracker/pkg/validation"
	appwebsocket "refurb-tracker/pkg/websocket"
)

// RouterTestSuite поднимает роутер без базы: проверяются только маршруты,
// авторизация и ответы, которые не доходят до репозиториев.
type RouterTestSuite struct {
	suite.Suite
	Echo            *echo.Echo
	AdminToken      string
	TechnicianToken string
}

func (s *RouterTestSuite) SetupSuite() {
	logger := zap.NewNop()
	storage, err := filestorage.NewLocalFileStorage(s.T().TempDir(), config.Buckets)
	require.NoError(s.T(), err)

	registry := prometheus.NewRegistry()
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	require.NoError(s.T(), err)

	jwtSvc := service.NewJWTService("router-test", time.Hour)
	cfg := &appconfig.Config{Cache: appconfig.CacheConfig{Driver: "memory", DefaultTTL: time.Minute}}

	e := echo.New()
	e.Validator = validation.New()
	InitRouter(e, Dependencies{
		Cache:    repositories.NewMemoryCacheRepository(time.Minute, time.Minute),
		Bus:      eventbus.New(logger),
		Hub:      appwebsocket.NewHub(logger),
		JWT:      jwtSvc,
		Storage:  storage,
		Metrics:  httpMetrics,
		Registry: registry,
		Config:   cfg,
		Logger:   logger,
	})
	s.Echo = e

	s.AdminToken, err = jwtSvc.GenerateToken(1, service.RoleAdmin)
	require.NoError(s.T(), err)
	s.TechnicianToken, err = jwtSvc.GenerateToken(2, service.RoleTechnician)
	require.NoError(s.T(), err)
}

func (s *RouterTestSuite) request(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestRoutesRegistered() {
	registered := map[string]bool{}
	for _, r := range s.Echo.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, expected := range []string{
		"GET /api/devices", "POST /api/devices", "GET /api/devices/:id", "PUT /api/devices/:id",
		"DELETE /api/devices/:id", "GET /api/devices/:id/detail", "GET /api/devices/export",
		"POST /api/devices/import", "GET /api/devices/:id/interventions",
		"GET /api/interventions", "POST /api/interventions", "PUT /api/interventions/:id",
		"GET /api/clients", "DELETE /api/clients/:id", "GET /api/clients/:id/devices",
		"GET /api/operators", "POST /api/operators", "GET /api/operators/:id/devices",
		"GET /api/quotes-invoices", "DELETE /api/quotes-invoices/:id", "GET /api/quotes-invoices/:id/document",
		"GET /api/client-orders", "PUT /api/client-orders/:id",
		"GET /api/devices/:id/files", "POST /api/interventions/:id/files",
		"GET /api/files/:kind/:id/download", "DELETE /api/files/:kind/:id",
		"GET /api/categories", "GET /api/categories/code", "GET /api/dashboard", "GET /api/ws",
		"GET /metrics", "GET /health",
	} {
		assert.True(s.T(), registered[expected], expected)
	}
}

func (s *RouterTestSuite) TestAuthRequired() {
	assert.Equal(s.T(), http.StatusUnauthorized, s.request(http.MethodGet, "/api/devices", "").Code)
	assert.Equal(s.T(), http.StatusUnauthorized, s.request(http.MethodGet, "/api/ws", "").Code)
	assert.Equal(s.T(), http.StatusOK, s.request(http.MethodGet, "/api/categories?search=tv", s.TechnicianToken).Code)
}

func (s *RouterTestSuite) TestAdminOnlyRoutes() {
	for _, target := range []string{"/api/clients/1", "/api/operators/1", "/api/quotes-invoices/1"} {
		assert.Equal(s.T(), http.StatusForbidden, s.request(http.MethodDelete, target, s.TechnicianToken).Code, target)
	}
	assert.Equal(s.T(), http.StatusForbidden, s.request(http.MethodPost, "/api/operators", s.TechnicianToken).Code)
}

func (s *RouterTestSuite) TestServiceRoutes() {
	assert.Equal(s.T(), http.StatusOK, s.request(http.MethodGet, "/health", "").Code)

	rec := s.request(http.MethodGet, "/metrics", "")
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
