package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/woodnest/woodnest-backend/config"
	"github.com/woodnest/woodnest-backend/internal/app/controller"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/internal/db"
	"github.com/woodnest/woodnest-backend/internal/middleware"
	"github.com/woodnest/woodnest-backend/internal/router"
	"github.com/woodnest/woodnest-backend/internal/scheduler"
	"github.com/woodnest/woodnest-backend/internal/storage"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"github.com/woodnest/woodnest-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting WOODNEST Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// The catalog cache is optional; the storefront works without it.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	s3Store := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	colorRepo := repository.NewPolishColorRepository(db.GetDB())
	discountRepo := repository.NewDiscountRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	productService := service.NewProductService(
		productRepo,
		s3Store,
		cfg.Catalog.CascadeOnColorRemoval,
		time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	colorService := service.NewPolishColorService(colorRepo)
	discountService := service.NewDiscountService(discountRepo)
	cartService := service.NewCartService(cartRepo, productRepo, discountRepo)
	orderService := service.NewOrderService(
		orderRepo,
		cartRepo,
		productRepo,
		discountRepo,
		discountService,
		cfg.Catalog.ShippingFee,
	)
	exportService := service.NewExportService(productRepo, discountRepo)

	// Initialize controllers
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryService)
	colorController := controller.NewPolishColorController(colorService)
	discountController := controller.NewDiscountController(discountService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	exportController := controller.NewExportController(exportService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Daily discount expiry sweep
	discountScheduler := scheduler.NewDiscountScheduler(discountService)
	if err := discountScheduler.Start(); err != nil {
		logger.Error("Failed to start discount scheduler", err)
	}
	defer discountScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		productController,
		categoryController,
		colorController,
		discountController,
		cartController,
		orderController,
		exportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
