package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"refurb-tracker/config"
	"refurb-tracker/internal/listeners"
	"refurb-tracker/internal/repositories"
	"refurb-tracker/internal/routes"
	appconfig "refurb-tracker/pkg/config"
	"refurb-tracker/pkg/database/postgresql"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/eventbus"
	"refurb-tracker/pkg/filestorage"
	applogger "refurb-tracker/pkg/logger"
	"refurb-tracker/pkg/metrics"
	"refurb-tracker/pkg/middleware"
	"refurb-tracker/pkg/service"
	"refurb-tracker/pkg/utils"
	"refurb-tracker/pkg/validation"
	appwebsocket "refurb-tracker/pkg/websocket"
)

func main() {
	cfg := appconfig.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		logger.Fatal("не удалось зарегистрировать метрики", zap.Error(err))
	}

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(middleware.Metrics(httpMetrics))

	// 2. База, кэш, хранилище
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	cacheRepo := newCache(ctx, cfg, logger)

	storage, err := filestorage.NewLocalFileStorage(cfg.Storage.Root, config.Buckets)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}

	// 3. События: LISTEN -> шина -> websocket; сброс кэша подписывается в роутере
	bus := eventbus.New(logger.Named("bus"))
	hub := appwebsocket.NewHub(logger.Named("ws"))
	hub.OnClientCountChange(func(n int) { httpMetrics.WebsocketClients.Set(float64(n)) })
	go hub.Run(ctx)

	listeners.NewChangeBroadcaster(hub, httpMetrics, logger.Named("broadcaster")).Register(bus)
	go listeners.NewChangeListener(dbConn, bus, logger.Named("listener")).Run(ctx)

	// 4. Маршруты
	routes.InitRouter(e, routes.Dependencies{
		DB:       dbConn,
		Cache:    cacheRepo,
		Bus:      bus,
		Hub:      hub,
		JWT:      service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL),
		Storage:  storage,
		Metrics:  httpMetrics,
		Registry: registry,
		Config:   cfg,
		Logger:   logger,
	})

	// 5. Запуск и остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке HTTP-сервера", zap.Error(err))
	}
	bus.Wait()
	logger.Info("Сервер остановлен")
}

// newCache выбирает драйвер кэша; если Redis недоступен, работаем с кэшем в памяти.
func newCache(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) repositories.CacheRepositoryInterface {
	if cfg.Cache.Driver == "memory" {
		logger.Info("Кэш: в памяти процесса")
		return repositories.NewMemoryCacheRepository(cfg.Cache.DefaultTTL, 2*cfg.Cache.DefaultTTL)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis недоступен, используется кэш в памяти", zap.String("address", cfg.Redis.Address), zap.Error(err))
		_ = redisClient.Close()
		return repositories.NewMemoryCacheRepository(cfg.Cache.DefaultTTL, 2*cfg.Cache.DefaultTTL)
	}
	logger.Info("Кэш: Redis", zap.String("address", cfg.Redis.Address))
	return repositories.NewRedisCacheRepository(redisClient)
}
