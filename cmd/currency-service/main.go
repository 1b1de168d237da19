package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/config"
	"github.com/mkartashov/currency-rates-service/internal/delivery/httpapi"
	"github.com/mkartashov/currency-rates-service/internal/delivery/ws"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/cbr"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/metrics"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/migrate"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/postgres"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/postgres/repository"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/redisbus"
	"github.com/mkartashov/currency-rates-service/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	logger := mustInitLogger(cfg.Env)
	defer logger.Sync()

	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.CurrencyDB.MigrationsPath, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Init metrics
	currencyMetrics := metrics.NewCurrencyMetrics(prometheus.DefaultRegisterer)

	// Init event bus
	bus := redisbus.NewRedisEventBus(fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port), logger)

	// Init currency repo
	currencyRepo := repository.NewDefaultCurrencyRepository(db)

	// Init rate provider
	provider := cbr.NewCBRProvider(cfg.CBRProvider.URL, cfg.CBRProvider.RequestTimeout, logger)

	// Init usecases
	currencyUsecase := usecase.NewDefaultCurrencyUsecase(currencyRepo, bus, logger)
	syncUsecase := usecase.NewDefaultSyncUsecase(currencyRepo, provider, bus, currencyMetrics, cfg.Sync.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())

	// Init websocket broadcaster and bus listener
	broadcaster := ws.NewBroadcaster(logger, currencyMetrics)
	listener := ws.NewBusListener(bus, broadcaster, currencyMetrics, logger)
	go listener.Run(ctx)

	// Start background sync worker
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		syncUsecase.StartWorker(ctx)
	}()

	// Init HTTP server
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	httpapi.NewCurrencyHandler(currencyUsecase, syncUsecase, logger).RegisterRoutes(router)

	wsHandler := ws.NewHandler(broadcaster, logger)
	router.GET("/ws/currencies", wsHandler.Handle)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting currency rates service", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	cancel()
	<-workerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	if err := bus.Close(); err != nil {
		logger.Error("bus close failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("stopped")
}

func mustInitLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	return logger
}
