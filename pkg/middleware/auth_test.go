package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refurb-tracker/pkg/metrics"
	"refurb-tracker/pkg/service"
	"refurb-tracker/pkg/utils"
)

func newTestServer(t *testing.T) (*echo.Echo, service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	auth := NewAuthMiddleware(jwtSvc, zap.NewNop())

	e := echo.New()
	whoami := func(c echo.Context) error {
		id, err := utils.GetOperatorIDFromCtx(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"operator_id": id,
			"role":        utils.GetRoleFromCtx(c.Request().Context()),
		})
	}
	api := e.Group("/api", auth.Auth)
	api.GET("/me", whoami)
	api.DELETE("/clients/:id", whoami, auth.RequireRole(service.RoleAdmin))
	return e, jwtSvc
}

func TestAuth(t *testing.T) {
	e, jwtSvc := newTestServer(t)
	technicianToken, err := jwtSvc.GenerateToken(7, service.RoleTechnician)
	require.NoError(t, err)
	foreignToken, err := service.NewJWTService("other-secret", time.Hour).GenerateToken(7, service.RoleAdmin)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
		code   int
	}{
		{name: "без заголовка", header: "", code: http.StatusUnauthorized},
		{name: "не bearer", header: "Basic abc", code: http.StatusUnauthorized},
		{name: "чужая подпись", header: "Bearer " + foreignToken, code: http.StatusUnauthorized},
		{name: "валидный токен", header: "Bearer " + technicianToken, code: http.StatusOK},
		{name: "схема без учёта регистра", header: "bearer " + technicianToken, code: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	e, jwtSvc := newTestServer(t)

	for role, code := range map[string]int{
		service.RoleTechnician: http.StatusForbidden,
		service.RoleAdmin:      http.StatusOK,
	} {
		token, err := jwtSvc.GenerateToken(1, role)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodDelete, "/api/clients/5", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, role)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m, err := metrics.NewHTTPMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	e := echo.New()
	e.Use(Metrics(m))
	e.GET("/api/devices/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/devices/1", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/devices/:id", "204")))
}
