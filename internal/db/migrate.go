package db

import (
	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Product{},
		&model.ProductOption{},
		&model.ProductOptionValue{},
		&model.ProductVariant{},
		&model.ProductVariantOption{},
		&model.Price{},
		&model.ProductImage{},
		&model.Tag{},
		&model.ProductTag{},
		&model.Material{},
		&model.ProductMaterial{},
		&model.Category{},
		&model.ProductCategory{},
		&model.ShippingOption{},
		&model.ShippingOptionPrice{},
		&model.ProductShippingOption{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial lookup data to the database (optional)
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedTags(); err != nil {
		logger.Error("Failed to seed tags", err)
		return err
	}
	if err := seedMaterials(); err != nil {
		logger.Error("Failed to seed materials", err)
		return err
	}
	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedTags() error {
	var count int64
	if err := DB.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	tags := []model.Tag{
		{Value: "new-arrival"},
		{Value: "bestseller"},
		{Value: "limited-edition"},
		{Value: "sale"},
		{Value: "handmade"},
	}
	for i := range tags {
		if err := DB.Create(&tags[i]).Error; err != nil {
			logger.Error("Failed to create tag", err, map[string]interface{}{
				"tag": tags[i].Value,
			})
			return err
		}
	}

	logger.Info("Tags seeded successfully", map[string]interface{}{
		"total_tags": len(tags),
	})
	return nil
}

func seedMaterials() error {
	var count int64
	if err := DB.Model(&model.Material{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Materials already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	materials := []model.Material{
		{Value: "cotton"},
		{Value: "wool"},
		{Value: "leather"},
		{Value: "polyester"},
		{Value: "denim"},
	}
	for i := range materials {
		if err := DB.Create(&materials[i]).Error; err != nil {
			logger.Error("Failed to create material", err, map[string]interface{}{
				"material": materials[i].Value,
			})
			return err
		}
	}

	logger.Info("Materials seeded successfully", map[string]interface{}{
		"total_materials": len(materials),
	})
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	apparel := model.Category{Name: "Apparel", Slug: "apparel"}
	if err := DB.Create(&apparel).Error; err != nil {
		return err
	}

	children := []model.Category{
		{Name: "Jackets", Slug: "jackets", ParentID: &apparel.ID},
		{Name: "Shirts", Slug: "shirts", ParentID: &apparel.ID},
		{Name: "Accessories", Slug: "accessories"},
	}
	for i := range children {
		if err := DB.Create(&children[i]).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": children[i].Name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(children) + 1,
	})
	return nil
}
