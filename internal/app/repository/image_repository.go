package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type ImageRepository interface {
	CreateBatch(ctx context.Context, images []model.ProductImage) error
	// DeleteByProductID hard-deletes the product's images. Used by the
	// replace-style update.
	DeleteByProductID(ctx context.Context, productID uint) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *imageRepository) CreateBatch(ctx context.Context, images []model.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	logger.Debug("Creating product images", map[string]interface{}{
		"product_id": images[0].ProductID,
		"count":      len(images),
	})

	if err := r.conn(ctx).Create(&images).Error; err != nil {
		logger.Error("Failed to create product images", err, map[string]interface{}{
			"product_id": images[0].ProductID,
		})
		return err
	}
	return nil
}

func (r *imageRepository) DeleteByProductID(ctx context.Context, productID uint) error {
	logger.Debug("Deleting images for product", map[string]interface{}{
		"product_id": productID,
	})

	if err := r.conn(ctx).Where("product_id = ?", productID).
		Delete(&model.ProductImage{}).Error; err != nil {
		logger.Error("Failed to delete product images", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}
