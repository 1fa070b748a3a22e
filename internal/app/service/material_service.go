package service

import (
	"context"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type MaterialService interface {
	Create(ctx context.Context, input CreateMaterialInput) (*model.Material, error)
	GetAll(ctx context.Context) ([]model.Material, error)
	GetByID(ctx context.Context, id uint) (*model.Material, error)
	Delete(ctx context.Context, id uint) error
}

type materialService struct {
	db           *gorm.DB
	materialRepo repository.MaterialRepository
}

func NewMaterialService(database *gorm.DB, materialRepo repository.MaterialRepository) MaterialService {
	return &materialService{db: database, materialRepo: materialRepo}
}

func (s *materialService) Create(ctx context.Context, input CreateMaterialInput) (*model.Material, error) {
	if input.Value == "" {
		return nil, apperrors.Invalidf(apperrors.ValidationInvalidInput, "material value is required")
	}

	existing, err := s.materialRepo.FindByValue(ctx, input.Value)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	material := &model.Material{Value: input.Value}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}

	logger.Info("Material created", map[string]interface{}{
		"material_id": material.ID,
		"value":       material.Value,
	})
	return material, nil
}

func (s *materialService) GetAll(ctx context.Context) ([]model.Material, error) {
	return s.materialRepo.FindAll(ctx)
}

func (s *materialService) GetByID(ctx context.Context, id uint) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf(apperrors.MaterialNotFound, "material with id %d not found", id)
		}
		return nil, err
	}
	return material, nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	if err := s.materialRepo.SoftDelete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf(apperrors.MaterialNotFound, "material with id %d not found", id)
		}
		return err
	}
	logger.Info("Material deleted", map[string]interface{}{
		"material_id": id,
	})
	return nil
}
