package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	UpdateColumns(ctx context.Context, id uint, updates map[string]interface{}) error
	LinkProduct(ctx context.Context, productID uint, categoryIDs []uint) error
	SoftDelete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.conn(ctx).Create(category).Error; err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": category.Name,
			"slug": category.Slug,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.conn(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories", err)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.conn(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []model.Category
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories by ids", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.conn(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) UpdateColumns(ctx context.Context, id uint, updates map[string]interface{}) error {
	if err := r.conn(ctx).Model(&model.Category{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) LinkProduct(ctx context.Context, productID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]model.ProductCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, model.ProductCategory{ProductID: productID, CategoryID: categoryID})
	}
	// Re-linking an already linked category is a no-op, not a conflict.
	if err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		logger.Error("Failed to link categories to product", err, map[string]interface{}{
			"product_id": productID,
			"count":      len(categoryIDs),
		})
		return err
	}
	return nil
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&model.Category{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete category", result.Error, map[string]interface{}{
			"category_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
