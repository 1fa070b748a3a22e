package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type OptionRepository interface {
	// CreateWithValues inserts the option row and all its values in one
	// batch; generated ids are written back into option and option.Values.
	CreateWithValues(ctx context.Context, option *model.ProductOption) error
	FindByProductID(ctx context.Context, productID uint) ([]model.ProductOption, error)
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *optionRepository) CreateWithValues(ctx context.Context, option *model.ProductOption) error {
	logger.Debug("Creating product option", map[string]interface{}{
		"product_id": option.ProductID,
		"name":       option.Name,
		"values":     len(option.Values),
	})

	if err := r.conn(ctx).Create(option).Error; err != nil {
		logger.Error("Failed to create product option", err, map[string]interface{}{
			"product_id": option.ProductID,
			"name":       option.Name,
		})
		return err
	}
	return nil
}

func (r *optionRepository) FindByProductID(ctx context.Context, productID uint) ([]model.ProductOption, error) {
	var options []model.ProductOption
	if err := r.conn(ctx).Where("product_id = ?", productID).
		Preload("Values").Order("id ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to find product options", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return options, nil
}
