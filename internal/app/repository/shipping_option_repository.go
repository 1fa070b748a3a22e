package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShippingOptionRepository interface {
	// Create inserts the shipping option together with its prices.
	Create(ctx context.Context, option *model.ShippingOption) error
	FindAll(ctx context.Context) ([]model.ShippingOption, error)
	FindByID(ctx context.Context, id uint) (*model.ShippingOption, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.ShippingOption, error)
	UpdateColumns(ctx context.Context, id uint, updates map[string]interface{}) error
	// ReplacePrices hard-deletes the option's prices and inserts the new set.
	ReplacePrices(ctx context.Context, id uint, prices []model.ShippingOptionPrice) error
	LinkProduct(ctx context.Context, productID uint, optionIDs []uint) error
	SoftDelete(ctx context.Context, id uint) error
}

type shippingOptionRepository struct {
	db *gorm.DB
}

func NewShippingOptionRepository(db *gorm.DB) ShippingOptionRepository {
	return &shippingOptionRepository{db: db}
}

func (r *shippingOptionRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *shippingOptionRepository) Create(ctx context.Context, option *model.ShippingOption) error {
	logger.Debug("Creating shipping option", map[string]interface{}{
		"name":   option.Name,
		"prices": len(option.Prices),
	})

	if err := r.conn(ctx).Create(option).Error; err != nil {
		logger.Error("Failed to create shipping option", err, map[string]interface{}{
			"name": option.Name,
		})
		return err
	}
	return nil
}

func (r *shippingOptionRepository) FindAll(ctx context.Context) ([]model.ShippingOption, error) {
	var options []model.ShippingOption
	if err := r.conn(ctx).Preload("Prices").Order("id ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to list shipping options", err)
		return nil, err
	}
	return options, nil
}

func (r *shippingOptionRepository) FindByID(ctx context.Context, id uint) (*model.ShippingOption, error) {
	var option model.ShippingOption
	if err := r.conn(ctx).Preload("Prices").First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *shippingOptionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.ShippingOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []model.ShippingOption
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&options).Error; err != nil {
		logger.Error("Failed to find shipping options by ids", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return options, nil
}

func (r *shippingOptionRepository) UpdateColumns(ctx context.Context, id uint, updates map[string]interface{}) error {
	if err := r.conn(ctx).Model(&model.ShippingOption{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		logger.Error("Failed to update shipping option", err, map[string]interface{}{
			"shipping_option_id": id,
		})
		return err
	}
	return nil
}

func (r *shippingOptionRepository) ReplacePrices(ctx context.Context, id uint, prices []model.ShippingOptionPrice) error {
	conn := r.conn(ctx)

	if err := conn.Where("shipping_option_id = ?", id).
		Delete(&model.ShippingOptionPrice{}).Error; err != nil {
		logger.Error("Failed to delete shipping option prices", err, map[string]interface{}{
			"shipping_option_id": id,
		})
		return err
	}
	if len(prices) == 0 {
		return nil
	}
	for i := range prices {
		prices[i].ShippingOptionID = id
	}
	if err := conn.Create(&prices).Error; err != nil {
		logger.Error("Failed to create shipping option prices", err, map[string]interface{}{
			"shipping_option_id": id,
		})
		return err
	}
	return nil
}

func (r *shippingOptionRepository) LinkProduct(ctx context.Context, productID uint, optionIDs []uint) error {
	if len(optionIDs) == 0 {
		return nil
	}
	links := make([]model.ProductShippingOption, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		links = append(links, model.ProductShippingOption{ProductID: productID, ShippingOptionID: optionID})
	}
	// Re-linking an already linked option is a no-op, not a conflict.
	if err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		logger.Error("Failed to link shipping options to product", err, map[string]interface{}{
			"product_id": productID,
			"count":      len(optionIDs),
		})
		return err
	}
	return nil
}

func (r *shippingOptionRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&model.ShippingOption{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete shipping option", result.Error, map[string]interface{}{
			"shipping_option_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
