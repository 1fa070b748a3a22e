package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(ctx context.Context, variant *model.ProductVariant) error
	CreateOptionLinks(ctx context.Context, links []model.ProductVariantOption) error
	// DeleteByProductID hard-deletes every variant of the product together
	// with its option links and prices. Used by the replace-style update.
	DeleteByProductID(ctx context.Context, productID uint) error
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *variantRepository) Create(ctx context.Context, variant *model.ProductVariant) error {
	logger.Debug("Creating product variant", map[string]interface{}{
		"product_id": variant.ProductID,
		"title":      variant.Title,
	})

	if err := r.conn(ctx).Omit("OptionValues", "Prices").Create(variant).Error; err != nil {
		logger.Error("Failed to create product variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"title":      variant.Title,
		})
		return err
	}
	return nil
}

func (r *variantRepository) CreateOptionLinks(ctx context.Context, links []model.ProductVariantOption) error {
	if len(links) == 0 {
		return nil
	}
	if err := r.conn(ctx).Create(&links).Error; err != nil {
		logger.Error("Failed to create variant option links", err, map[string]interface{}{
			"count": len(links),
		})
		return err
	}
	return nil
}

func (r *variantRepository) DeleteByProductID(ctx context.Context, productID uint) error {
	logger.Debug("Deleting variants for product", map[string]interface{}{
		"product_id": productID,
	})

	conn := r.conn(ctx)

	variantIDs := conn.Model(&model.ProductVariant{}).
		Select("id").Where("product_id = ?", productID)

	if err := conn.Where("variant_id IN (?)", variantIDs).
		Delete(&model.Price{}).Error; err != nil {
		logger.Error("Failed to delete variant prices", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	if err := conn.Where("product_variant_id IN (?)", variantIDs).
		Delete(&model.ProductVariantOption{}).Error; err != nil {
		logger.Error("Failed to delete variant option links", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	if err := conn.Where("product_id = ?", productID).
		Delete(&model.ProductVariant{}).Error; err != nil {
		logger.Error("Failed to delete variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}
