package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/grocery/backend/internal/application/catalog"
	partnerapp "github.com/grocery/backend/internal/application/partner"
	reportapp "github.com/grocery/backend/internal/application/report"
	salesapp "github.com/grocery/backend/internal/application/sales"
	settingsapp "github.com/grocery/backend/internal/application/settings"
	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/grocery/backend/internal/infrastructure/logger"
	"github.com/grocery/backend/internal/infrastructure/persistence"
	"github.com/grocery/backend/internal/interfaces/http/handler"
	"github.com/grocery/backend/internal/interfaces/http/middleware"
	"github.com/grocery/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting grocery backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 0)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	distributorRepo := persistence.NewGormDistributorRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Application services
	settlementService := salesapp.NewSettlementService(persistence.NewGormSaleTransactionScope(db.DB))
	historyService := salesapp.NewHistoryService(saleRepo, productRepo, customerRepo)
	analyticsService := reportapp.NewAnalyticsService(saleRepo, cfg.Analytics.IncludeTrashed)
	productService := catalogapp.NewProductService(productRepo, distributorRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	distributorService := partnerapp.NewDistributorService(distributorRepo, productRepo)
	settingsService := settingsapp.NewSettingsService(settingsRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))

	router.NewRouter(engine).
		Register(handler.NewSaleHandler(settlementService, historyService, analyticsService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewDistributorHandler(distributorService)).
		Register(handler.NewSettingsHandler(settingsService)).
		Register(handler.NewSystemHandler(db, version)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
