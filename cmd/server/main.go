package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stackos/catalog-backend/config"
	"github.com/stackos/catalog-backend/internal/app/controller"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/app/service"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/internal/router"
	"github.com/stackos/catalog-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	logger.Info("Starting Catalog Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	optionRepo := repository.NewOptionRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	imageRepo := repository.NewImageRepository(db.GetDB())
	priceRepo := repository.NewPriceRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	materialRepo := repository.NewMaterialRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	shippingRepo := repository.NewShippingOptionRepository(db.GetDB())

	// Initialize services
	pricingService := service.NewPricingService(db.GetDB(), priceRepo)
	productService := service.NewProductService(
		db.GetDB(),
		productRepo,
		optionRepo,
		variantRepo,
		imageRepo,
		tagRepo,
		materialRepo,
		categoryRepo,
		shippingRepo,
		pricingService,
		service.NewLogEvents(),
	)
	tagService := service.NewTagService(db.GetDB(), tagRepo)
	materialService := service.NewMaterialService(db.GetDB(), materialRepo)
	categoryService := service.NewCategoryService(db.GetDB(), categoryRepo)
	shippingService := service.NewShippingOptionService(db.GetDB(), shippingRepo)

	// Initialize controllers
	productController := controller.NewProductController(productService)
	tagController := controller.NewTagController(tagService)
	materialController := controller.NewMaterialController(materialService)
	categoryController := controller.NewCategoryController(categoryService)
	shippingController := controller.NewShippingOptionController(shippingService)

	// Setup router
	r := router.NewRouter(
		productController,
		tagController,
		materialController,
		categoryController,
		shippingController,
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
