package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	UpdateColumns(ctx context.Context, id uint, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// conn joins the ambient transaction when one is active on ctx.
func (r *productRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	logger.Debug("Creating product row", map[string]interface{}{
		"title": product.Title,
		"slug":  product.Slug,
	})

	if err := r.conn(ctx).Omit(
		"Options", "Variants", "Images", "Tags", "Materials", "Categories", "ShippingOptions",
	).Create(product).Error; err != nil {
		logger.Error("Failed to create product row", err, map[string]interface{}{
			"title": product.Title,
			"slug":  product.Slug,
		})
		return err
	}

	logger.Debug("Product row created", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.conn(ctx).Model(&model.Product{}).
		Preload("Options.Values").
		Preload("Variants.OptionValues").
		Preload("Variants.Prices").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.rank ASC")
		}).
		Preload("Tags").
		Preload("Materials").
		Preload("Categories").
		Preload("ShippingOptions.Prices")
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery(ctx).First(&product, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by ID", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.baseQuery(ctx).Order("products.id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

// FindBySlug looks up a non-deleted product by slug. Used by the uniqueness
// check inside the write transaction.
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	if err := r.conn(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by slug", err, map[string]interface{}{
				"slug": slug,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateColumns(ctx context.Context, id uint, updates map[string]interface{}) error {
	logger.Debug("Updating product columns", map[string]interface{}{
		"product_id": id,
		"columns":    len(updates),
	})

	if err := r.conn(ctx).Model(&model.Product{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		logger.Error("Failed to update product columns", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id uint) error {
	logger.Debug("Soft-deleting product", map[string]interface{}{
		"product_id": id,
	})

	result := r.conn(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to soft-delete product", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
