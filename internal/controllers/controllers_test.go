package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/services"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/service"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/validation"
	appwebsocket "refurb-tracker/pkg/websocket"
)

type stubDeviceService struct {
	devices     map[uint64]dto.DeviceDTO
	lastFilter  types.Filter
	lastSent    map[string]bool
	lastCreated *dto.CreateDeviceDTO
}

func newStubDeviceService() *stubDeviceService {
	return &stubDeviceService{devices: map[uint64]dto.DeviceDTO{
		1: {ID: 1, Category: "Smartphone", ItemCode: "0001", ProductCode: "SP-0001", Brand: "Apple", Model: "iPhone 11", Condition: "used", StockStatus: "in_stock"},
	}}
}

func (s *stubDeviceService) GetDevices(_ context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	s.lastFilter = filter
	var out []dto.DeviceDTO
	for _, d := range s.devices {
		out = append(out, d)
	}
	return out, uint64(len(out)), nil
}

func (s *stubDeviceService) GetDevicesByClient(ctx context.Context, _ uint64, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	return s.GetDevices(ctx, filter)
}

func (s *stubDeviceService) GetDevicesByOperator(ctx context.Context, _ uint64, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	return s.GetDevices(ctx, filter)
}

func (s *stubDeviceService) FindDevice(_ context.Context, id uint64) (*dto.DeviceDTO, error) {
	d, ok := s.devices[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (s *stubDeviceService) GetDeviceDetail(ctx context.Context, id uint64) (*dto.DeviceDetailDTO, error) {
	d, err := s.FindDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DeviceDetailDTO{Device: *d}, nil
}

func (s *stubDeviceService) CreateDevice(_ context.Context, payload dto.CreateDeviceDTO) (*dto.DeviceDTO, error) {
	s.lastCreated = &payload
	if payload.ItemCode == "dup" {
		return nil, apperrors.ErrConflict
	}
	d := dto.DeviceDTO{ID: 2, Category: payload.Category, ItemCode: payload.ItemCode}
	return &d, nil
}

func (s *stubDeviceService) UpdateDevice(ctx context.Context, id uint64, _ dto.UpdateDeviceDTO, sent map[string]bool) (*dto.DeviceDTO, error) {
	s.lastSent = sent
	return s.FindDevice(ctx, id)
}

func (s *stubDeviceService) DeleteDevice(_ context.Context, id uint64) error {
	if _, ok := s.devices[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.devices, id)
	return nil
}

type testServer struct {
	echo    *echo.Echo
	devices *stubDeviceService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	logger := zap.NewNop()

	devices := newStubDeviceService()
	excel := services.NewDeviceExcelService(devices, nil, validation.New(), logger)
	dc := NewDeviceController(devices, excel, nil, logger)
	cc := NewCategoryController(services.NewCategoryService(), logger)
	fc := NewFileController(nil, logger)

	api := e.Group("/api")
	api.GET("/devices", dc.GetDevices)
	api.POST("/devices", dc.CreateDevice)
	api.GET("/devices/export", dc.ExportDevices)
	api.POST("/devices/import", dc.ImportDevices)
	api.GET("/devices/:id", dc.FindDevice)
	api.PUT("/devices/:id", dc.UpdateDevice)
	api.DELETE("/devices/:id", dc.DeleteDevice)
	api.GET("/categories", cc.Search)
	api.GET("/categories/code", cc.ProductCode)
	api.GET("/files/:kind/:id/download", fc.Download)

	return testServer{echo: e, devices: devices}
}

func (s testServer) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDeviceController_List(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/devices?search=iphone&filter[stock_status]=in_stock,reserved&sort[brand]=asc&limit=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["status"])
	list := body["body"].(map[string]interface{})["list"].([]interface{})
	assert.Len(t, list, 1)
	assert.Equal(t, "SP-0001", list[0].(map[string]interface{})["product_code"])

	assert.Equal(t, "iphone", s.devices.lastFilter.Search)
	assert.Equal(t, "in_stock,reserved", s.devices.lastFilter.Filter["stock_status"])
	assert.Equal(t, "asc", s.devices.lastFilter.Sort["brand"])
	assert.Equal(t, []string{"brand"}, s.devices.lastFilter.SortOrder)
	assert.Equal(t, 10, s.devices.lastFilter.Limit)
}

func TestDeviceController_Find(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/devices/1", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/devices/42", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/devices/abc", nil, "").Code)
}

func TestDeviceController_Create(t *testing.T) {
	s := newTestServer(t)

	valid := `{"category":"Notebook","item_code":"N-1","brand":"Dell","model":"XPS","condition":"used"}`
	rec := s.do(http.MethodPost, "/api/devices", strings.NewReader(valid), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, s.devices.lastCreated)
	assert.Equal(t, "N-1", s.devices.lastCreated.ItemCode)

	unknownCategory := `{"category":"Astronave","item_code":"N-2","brand":"ACME","model":"X","condition":"used"}`
	rec = s.do(http.MethodPost, "/api/devices", strings.NewReader(unknownCategory), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "device_category")

	duplicate := `{"category":"Notebook","item_code":"dup","brand":"Dell","model":"XPS","condition":"used"}`
	rec = s.do(http.MethodPost, "/api/devices", strings.NewReader(duplicate), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeviceController_UpdatePassesSentFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPut, "/api/devices/1", strings.NewReader(`{"notes":null,"grade":"A"}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"notes": true, "grade": true}, s.devices.lastSent)

	rec = s.do(http.MethodPut, "/api/devices/1", strings.NewReader(`{"grade":"Z"}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/devices/1", strings.NewReader(``), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeviceController_Delete(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/devices/1", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/devices/1", nil, "").Code)
}

func TestDeviceController_Export(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/devices/export", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "devices_")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	assert.False(t, s.devices.lastFilter.WithPagination)
}

func TestDeviceController_ImportWithoutFile(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("comment", "no file"))
	require.NoError(t, w.Close())

	rec := s.do(http.MethodPost, "/api/devices/import", &buf, w.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryController(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/categories?search=note", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)["body"].(map[string]interface{})["list"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "NB", list[0].(map[string]interface{})["abbreviation"])

	rec = s.do(http.MethodGet, "/api/categories/code?category=Smartphone&item_code=0042", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SP-0042", decode(t, rec)["body"].(map[string]interface{})["product_code"])

	rec = s.do(http.MethodGet, "/api/categories/code?category=Smartphone", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFileController_RejectsUnknownKind(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/files/invoice/1/download", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebSocketController_RequiresToken(t *testing.T) {
	hub := appwebsocket.NewHub(zap.NewNop())
	jwtSvc := service.NewJWTService("secret", time.Hour)
	wc := NewWebSocketController(hub, jwtSvc, zap.NewNop())

	e := echo.New()
	e.GET("/ws", wc.ServeWs)

	for target, code := range map[string]int{
		"/ws":             http.StatusUnauthorized,
		"/ws?token=bogus": http.StatusUnauthorized,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, code, rec.Code, target)
	}
}
