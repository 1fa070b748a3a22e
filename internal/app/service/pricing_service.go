package service

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// PricingService owns variant prices. The variant writer calls it inside
// the product transaction, which it joins.
type PricingService interface {
	CreatePrices(ctx context.Context, variantID uint, inputs []PriceInput) ([]uint, error)
	DeletePrices(ctx context.Context, ids []uint) error
}

type pricingService struct {
	db        *gorm.DB
	priceRepo repository.PriceRepository
}

func NewPricingService(database *gorm.DB, priceRepo repository.PriceRepository) PricingService {
	return &pricingService{db: database, priceRepo: priceRepo}
}

func (s *pricingService) CreatePrices(ctx context.Context, variantID uint, inputs []PriceInput) ([]uint, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	prices := make([]model.Price, 0, len(inputs))
	for _, input := range inputs {
		priceType := input.Type
		if priceType == "" {
			priceType = model.PriceDefault
		}
		prices = append(prices, model.Price{
			VariantID: variantID,
			Amount:    input.Amount,
			Currency:  input.Currency,
			Rules:     input.Rules,
			Type:      priceType,
		})
	}

	var ids []uint
	err := db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		created, err := s.priceRepo.CreateBatch(ctx, prices)
		if err != nil {
			return err
		}
		ids = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Prices created", map[string]interface{}{
		"variant_id": variantID,
		"count":      len(ids),
	})
	return ids, nil
}

func (s *pricingService) DeletePrices(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		return s.priceRepo.DeleteByIDs(ctx, ids)
	})
}
