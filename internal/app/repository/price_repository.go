package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type PriceRepository interface {
	// CreateBatch inserts the prices in one batch; generated ids are
	// written back into the slice.
	CreateBatch(ctx context.Context, prices []model.Price) ([]uint, error)
	DeleteByIDs(ctx context.Context, ids []uint) error
}

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *priceRepository) CreateBatch(ctx context.Context, prices []model.Price) ([]uint, error) {
	if len(prices) == 0 {
		return nil, nil
	}
	logger.Debug("Creating prices", map[string]interface{}{
		"count": len(prices),
	})

	if err := r.conn(ctx).Create(&prices).Error; err != nil {
		logger.Error("Failed to create prices", err, map[string]interface{}{
			"count": len(prices),
		})
		return nil, err
	}

	ids := make([]uint, 0, len(prices))
	for i := range prices {
		ids = append(ids, prices[i].ID)
	}
	return ids, nil
}

func (r *priceRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.conn(ctx).Where("id IN ?", ids).Delete(&model.Price{}).Error; err != nil {
		logger.Error("Failed to delete prices", err, map[string]interface{}{
			"count": len(ids),
		})
		return err
	}
	return nil
}
