package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) error
	FindAll(ctx context.Context) ([]model.Material, error)
	FindByID(ctx context.Context, id uint) (*model.Material, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Material, error)
	FindByValue(ctx context.Context, value string) (*model.Material, error)
	LinkProduct(ctx context.Context, productID uint, materialIDs []uint) error
	SoftDelete(ctx context.Context, id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *materialRepository) Create(ctx context.Context, material *model.Material) error {
	if err := r.conn(ctx).Create(material).Error; err != nil {
		logger.Error("Failed to create material", err, map[string]interface{}{
			"value": material.Value,
		})
		return err
	}
	return nil
}

func (r *materialRepository) FindAll(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	if err := r.conn(ctx).Order("id ASC").Find(&materials).Error; err != nil {
		logger.Error("Failed to list materials", err)
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) FindByID(ctx context.Context, id uint) (*model.Material, error) {
	var material model.Material
	if err := r.conn(ctx).First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var materials []model.Material
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&materials).Error; err != nil {
		logger.Error("Failed to find materials by ids", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) FindByValue(ctx context.Context, value string) (*model.Material, error) {
	var material model.Material
	if err := r.conn(ctx).Where("value = ?", value).First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) LinkProduct(ctx context.Context, productID uint, materialIDs []uint) error {
	if len(materialIDs) == 0 {
		return nil
	}
	links := make([]model.ProductMaterial, 0, len(materialIDs))
	for _, materialID := range materialIDs {
		links = append(links, model.ProductMaterial{ProductID: productID, MaterialID: materialID})
	}
	// Re-linking an already linked material is a no-op, not a conflict.
	if err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		logger.Error("Failed to link materials to product", err, map[string]interface{}{
			"product_id": productID,
			"count":      len(materialIDs),
		})
		return err
	}
	return nil
}

func (r *materialRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&model.Material{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete material", result.Error, map[string]interface{}{
			"material_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
