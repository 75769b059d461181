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

	billingapp "github.com/distribops/backend/internal/application/billing"
	catalogapp "github.com/distribops/backend/internal/application/catalog"
	inventoryapp "github.com/distribops/backend/internal/application/inventory"
	partnerapp "github.com/distribops/backend/internal/application/partner"
	tradeapp "github.com/distribops/backend/internal/application/trade"
	"github.com/distribops/backend/internal/domain/trade"
	"github.com/distribops/backend/internal/infrastructure/auth"
	"github.com/distribops/backend/internal/infrastructure/cache"
	"github.com/distribops/backend/internal/infrastructure/config"
	"github.com/distribops/backend/internal/infrastructure/event"
	"github.com/distribops/backend/internal/infrastructure/logger"
	"github.com/distribops/backend/internal/infrastructure/persistence"
	"github.com/distribops/backend/internal/interfaces/http/handler"
	"github.com/distribops/backend/internal/interfaces/http/middleware"
	"github.com/distribops/backend/internal/interfaces/http/router"
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

	log.Info("Starting distributor backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis is optional: without it, order numbers fall back to the DB
	// counter and token revocation is disabled.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, running without it", zap.Error(err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	retailerRepo := persistence.NewGormRetailerRepository(db.DB)
	stockRepo := persistence.NewGormStockItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	var orderRepo trade.OrderRepository = persistence.NewGormOrderRepository(db.DB)
	if redisClient != nil {
		orderRepo = cache.NewSequencedOrderRepository(orderRepo, redisClient, log)
	}

	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)

	// Domain event bus, for logging and integration only
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	orderService := tradeapp.NewOrderService(tradeScope, orderRepo, productRepo, retailerRepo)
	orderService.SetEventPublisher(eventBus)
	paymentService := billingapp.NewPaymentService(billingScope, invoiceRepo, paymentRepo)
	paymentService.SetEventPublisher(eventBus)
	productService := catalogapp.NewProductService(productRepo, stockRepo, cfg.Business.DefaultGSTPercent)
	stockService := inventoryapp.NewStockService(stockRepo, cfg.Business.LowStockThreshold)
	stockService.SetEventPublisher(eventBus)
	retailerService := partnerapp.NewRetailerService(retailerRepo)

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	authCfg := middleware.AuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		SkipPaths:  []string{"/api/v1/health", "/api/v1/ready"},
		Logger:     log,
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(
			middleware.RequestID(),
			logger.GinMiddleware(log),
			logger.Recovery(log),
			middleware.Secure(),
			middleware.CORS(corsCfg),
			middleware.Auth(authCfg),
		),
	)
	r.Register(handler.NewSystemHandler(db, cfg.App.Name, version))
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewBillingHandler(paymentService))
	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewStockHandler(stockService))
	r.Register(handler.NewRetailerHandler(retailerService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
