package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "stocktracker/api/swagger" // swagger docs
	"stocktracker/internal/cache"
	"stocktracker/internal/config"
	"stocktracker/internal/database"
	"stocktracker/internal/handler"
	"stocktracker/internal/metrics"
	"stocktracker/internal/middleware"
	"stocktracker/internal/model"
	"stocktracker/internal/repository"
	"stocktracker/internal/service"
	"stocktracker/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Department Inventory Tracker API
// @version         1.0
// @description     Stock, usage, suppliers, audit trail and reorder forecasting for a department inventory.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DSN(), cfg.Debug)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dashboardCache := newCache(ctx, cfg.Redis)
	m := metrics.New()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	itemRepo := repository.NewItemRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	auditRepo := repository.NewAuditRepository(db, cfg.AuditLogCap)

	inventoryService := service.NewInventoryService(itemRepo, usageRepo, movementRepo, auditRepo, txManager, dashboardCache, m, wsHub)
	supplierService := service.NewSupplierService(supplierRepo, auditRepo, txManager, dashboardCache)
	auditService := service.NewAuditService(auditRepo)
	dashboardService := service.NewDashboardService(itemRepo, usageRepo, supplierRepo, dashboardCache, cfg.CacheTTL, m, cfg.LeadTimeDays)
	reportService := service.NewReportService(dashboardService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.UserHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.ActingUser())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "ws_clients": wsHub.ClientCount()})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	api := router.Group("")
	handler.NewItemHandler(inventoryService).RegisterRoutes(api)
	handler.NewUsageHandler(inventoryService).RegisterRoutes(api)
	handler.NewSupplierHandler(supplierService).RegisterRoutes(api)
	handler.NewAuditHandler(auditService).RegisterRoutes(api)
	handler.NewDashboardHandler(dashboardService, reportService).RegisterRoutes(api)

	if err := auditService.Record(ctx, model.ActionSystem, "Server started", model.DefaultAuditUser); err != nil {
		log.Printf("Failed to record startup: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("Force close failed: %v", closeErr)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newCache prefers redis and falls back to process memory when redis is
// unset or unreachable.
func newCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if cfg.Addr == "" {
		log.Println("REDIS_ADDR not set, caching dashboards in memory")
		return cache.NewMemory()
	}
	client, err := cache.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Printf("Redis unavailable (%v), caching dashboards in memory", err)
		return cache.NewMemory()
	}
	log.Printf("Caching dashboards in redis at %s", cfg.Addr)
	return cache.NewRedis(client)
}
