package service

import (
	"context"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type ShippingOptionService interface {
	Create(ctx context.Context, input CreateShippingOptionInput) (*model.ShippingOption, error)
	Update(ctx context.Context, id uint, input UpdateShippingOptionInput) error
	GetAll(ctx context.Context) ([]model.ShippingOption, error)
	GetByID(ctx context.Context, id uint) (*model.ShippingOption, error)
	Delete(ctx context.Context, id uint) error
}

type shippingOptionService struct {
	db           *gorm.DB
	shippingRepo repository.ShippingOptionRepository
}

func NewShippingOptionService(database *gorm.DB, shippingRepo repository.ShippingOptionRepository) ShippingOptionService {
	return &shippingOptionService{db: database, shippingRepo: shippingRepo}
}

func (s *shippingOptionService) Create(ctx context.Context, input CreateShippingOptionInput) (*model.ShippingOption, error) {
	if input.Name == "" {
		return nil, apperrors.Invalidf(apperrors.ValidationInvalidInput, "shipping option name is required")
	}

	option := &model.ShippingOption{
		Name:              input.Name,
		PostalCode:        input.PostalCode,
		CountryCode:       input.CountryCode,
		IsShippingProfile: input.IsShippingProfile,
	}
	for _, price := range input.Prices {
		option.Prices = append(option.Prices, model.ShippingOptionPrice{
			Amount:   price.Amount,
			Currency: price.Currency,
			Rules:    price.Rules,
		})
	}

	err := db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		return s.shippingRepo.Create(ctx, option)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Shipping option created", map[string]interface{}{
		"shipping_option_id": option.ID,
		"name":               option.Name,
	})
	return option, nil
}

func (s *shippingOptionService) Update(ctx context.Context, id uint, input UpdateShippingOptionInput) error {
	return db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		if _, err := s.shippingRepo.FindByID(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFoundf(apperrors.ShippingOptionNotFound, "shipping option with id %d not found", id)
			}
			return err
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.PostalCode != nil {
			updates["postal_code"] = *input.PostalCode
		}
		if input.CountryCode != nil {
			updates["country_code"] = *input.CountryCode
		}
		if input.IsShippingProfile != nil {
			updates["is_shipping_profile"] = *input.IsShippingProfile
		}
		if len(updates) > 0 {
			if err := s.shippingRepo.UpdateColumns(ctx, id, updates); err != nil {
				return err
			}
		}

		// Prices are a replace collection, like variant prices on products.
		if input.Prices != nil {
			prices := make([]model.ShippingOptionPrice, 0, len(input.Prices))
			for _, price := range input.Prices {
				prices = append(prices, model.ShippingOptionPrice{
					Amount:   price.Amount,
					Currency: price.Currency,
					Rules:    price.Rules,
				})
			}
			if err := s.shippingRepo.ReplacePrices(ctx, id, prices); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *shippingOptionService) GetAll(ctx context.Context) ([]model.ShippingOption, error) {
	return s.shippingRepo.FindAll(ctx)
}

func (s *shippingOptionService) GetByID(ctx context.Context, id uint) (*model.ShippingOption, error) {
	option, err := s.shippingRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf(apperrors.ShippingOptionNotFound, "shipping option with id %d not found", id)
		}
		return nil, err
	}
	return option, nil
}

func (s *shippingOptionService) Delete(ctx context.Context, id uint) error {
	if err := s.shippingRepo.SoftDelete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf(apperrors.ShippingOptionNotFound, "shipping option with id %d not found", id)
		}
		return err
	}
	logger.Info("Shipping option deleted", map[string]interface{}{
		"shipping_option_id": id,
	})
	return nil
}
