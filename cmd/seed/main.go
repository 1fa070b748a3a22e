package main

import (
	"context"
	"log"

	"github.com/stackos/catalog-backend/config"
	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/app/service"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
)

// Seeds the lookup tables (tags, materials, categories) and one sample
// product aggregate. Safe to run more than once: tables that already hold
// rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	if err := seedSampleProduct(); err != nil {
		log.Fatal("Failed to seed sample product:", err)
	}

	logger.Info("Seed completed")
}

// seedSampleProduct creates one full aggregate through the product service,
// so the seed goes through the same transactional write path as the API.
func seedSampleProduct() error {
	database := db.GetDB()

	var count int64
	if err := database.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	productService := service.NewProductService(
		database,
		repository.NewProductRepository(database),
		repository.NewOptionRepository(database),
		repository.NewVariantRepository(database),
		repository.NewImageRepository(database),
		repository.NewTagRepository(database),
		repository.NewMaterialRepository(database),
		repository.NewCategoryRepository(database),
		repository.NewShippingOptionRepository(database),
		service.NewPricingService(database, repository.NewPriceRepository(database)),
		service.NewLogEvents(),
	)

	id, err := productService.Create(context.Background(), service.CreateProductInput{
		Title:       "Classic Crewneck T-Shirt",
		Description: "Plain crewneck tee in heavyweight cotton.",
		Status:      model.StatusPublished,
		Options: []service.OptionInput{
			{Name: "Color", Values: []string{"Black", "White"}},
			{Name: "Size", Values: []string{"S", "M", "L"}},
		},
		Images: []string{
			"https://images.example.com/crewneck-front.png",
			"https://images.example.com/crewneck-back.png",
		},
		Variants: []service.VariantInput{
			{
				Title:    "Black / M",
				SKU:      "CREW-BLK-M",
				Quantity: 25,
				Options:  map[string]string{"Color": "Black", "Size": "M"},
				Prices: []service.PriceInput{
					{Amount: 1900, Currency: "usd"},
				},
			},
			{
				Title:    "White / L",
				SKU:      "CREW-WHT-L",
				Quantity: 10,
				Options:  map[string]string{"Color": "White", "Size": "L"},
				Prices: []service.PriceInput{
					{Amount: 1900, Currency: "usd"},
					{Amount: 1500, Currency: "usd", Type: model.PriceSale},
				},
			},
		},
	})
	if err != nil {
		return err
	}

	logger.Info("Sample product seeded", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
