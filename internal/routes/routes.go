package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"refurb-tracker/config"
	"refurb-tracker/internal/controllers"
	"refurb-tracker/internal/listeners"
	"refurb-tracker/internal/repositories"
	"refurb-tracker/internal/services"
	appconfig "refurb-tracker/pkg/config"
	"refurb-tracker/pkg/eventbus"
	"refurb-tracker/pkg/filestorage"
	"refurb-tracker/pkg/metrics"
	"refurb-tracker/pkg/middleware"
	"refurb-tracker/pkg/service"
	"refurb-tracker/pkg/validation"
	appwebsocket "refurb-tracker/pkg/websocket"
)

// Dependencies - то, что создаётся в main и живёт дольше роутера.
type Dependencies struct {
	DB       *pgxpool.Pool
	Cache    repositories.CacheRepositoryInterface
	Bus      *eventbus.Bus
	Hub      *appwebsocket.Hub
	JWT      service.JWTService
	Storage  filestorage.FileStorageInterface
	Metrics  *metrics.HTTPMetrics
	Registry prometheus.Gatherer
	Config   *appconfig.Config
	Logger   *zap.Logger
}

func InitRouter(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	authMW := middleware.NewAuthMiddleware(deps.JWT, logger.Named("auth"))
	txManager := repositories.NewTxManager(deps.DB)
	var onFallback repositories.ViewFallbackHook
	if deps.Metrics != nil {
		onFallback = deps.Metrics.ViewFallback
	}

	// --- 1. РЕПОЗИТОРИИ ---
	deviceRepo := repositories.NewDeviceRepository(deps.DB, logger, onFallback)
	interventionRepo := repositories.NewInterventionRepository(deps.DB, logger, onFallback)
	clientRepo := repositories.NewClientRepository(deps.DB, logger)
	operatorRepo := repositories.NewOperatorRepository(deps.DB, logger)
	quoteRepo := repositories.NewQuoteInvoiceRepository(deps.DB, logger, onFallback)
	orderRepo := repositories.NewClientOrderRepository(deps.DB, logger, onFallback)
	fileRepo := repositories.NewFileRepository(deps.DB, logger)
	dashboardRepo := repositories.NewDashboardRepository(deps.DB, logger)

	// --- 2. СЕРВИСЫ ---
	deviceService := services.NewDeviceService(deviceRepo, interventionRepo, fileRepo, txManager, deps.Bus, logger)
	excelService := services.NewDeviceExcelService(deviceService, deviceRepo, validation.New(), logger)
	interventionService := services.NewInterventionService(interventionRepo, deviceRepo, deps.Bus, logger)
	clientService := services.NewClientService(clientRepo, deps.Bus, logger)
	operatorService := services.NewOperatorService(operatorRepo, deps.Bus, logger)
	quoteService := services.NewQuoteInvoiceService(quoteRepo, deps.Bus, logger)
	orderService := services.NewClientOrderService(orderRepo, deps.Bus, logger)
	fileService := services.NewFileService(deps.Storage, fileRepo, deviceRepo, interventionRepo, quoteRepo, txManager, deps.Bus, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, deps.Cache, deps.Config.Cache.DefaultTTL, logger)
	if deps.Bus != nil && deps.Cache != nil {
		listeners.NewCacheInvalidator(deps.Cache, logger, services.DashboardCacheKey).
			OnInvalidate(dashboardService.Invalidate).
			Register(deps.Bus)
	}

	// --- 3. КОНТРОЛЛЕРЫ ---
	deviceCtrl := controllers.NewDeviceController(deviceService, excelService, fileService, logger)
	interventionCtrl := controllers.NewInterventionController(interventionService, logger)
	clientCtrl := controllers.NewClientController(clientService, logger)
	operatorCtrl := controllers.NewOperatorController(operatorService, logger)
	quoteCtrl := controllers.NewQuoteInvoiceController(quoteService, fileService, logger)
	orderCtrl := controllers.NewClientOrderController(orderService, logger)
	fileCtrl := controllers.NewFileController(fileService, logger)
	categoryCtrl := controllers.NewCategoryController(services.NewCategoryService(), logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	wsCtrl := controllers.NewWebSocketController(deps.Hub, deps.JWT, logger.Named("ws"))

	// --- 4. РОУТЕРЫ ---
	runServiceRouter(e, deps)
	e.Static("/public/device-photos", deps.Storage.BucketDir(config.BucketDevicePhotos))

	api := e.Group("/api")
	api.GET("/ws", wsCtrl.ServeWs)

	secureGroup := api.Group("", authMW.Auth)
	runDeviceRouter(secureGroup, deviceCtrl, interventionCtrl, fileCtrl)
	runInterventionRouter(secureGroup, interventionCtrl, fileCtrl)
	runDirectoryRouter(secureGroup, clientCtrl, operatorCtrl, deviceCtrl, authMW)
	runDocumentRouter(secureGroup, quoteCtrl, orderCtrl, authMW)
	runFileRouter(secureGroup, fileCtrl)
	runLookupRouter(secureGroup, categoryCtrl, dashboardCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено", zap.Int("routes", len(e.Routes())))
}

// runServiceRouter - служебные маршруты без авторизации.
func runServiceRouter(e *echo.Echo, deps Dependencies) {
	if deps.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}
	e.GET("/health", func(c echo.Context) error {
		status := map[string]interface{}{"status": "ok"}
		if deps.Hub != nil {
			status["websocket_clients"] = deps.Hub.ClientCount()
		}
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := deps.DB.Ping(ctx); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
				return c.JSON(http.StatusServiceUnavailable, status)
			}
		}
		return c.JSON(http.StatusOK, status)
	})
}
