package service

import (
	"context"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type TagService interface {
	Create(ctx context.Context, input CreateTagInput) (*model.Tag, error)
	GetAll(ctx context.Context) ([]model.Tag, error)
	GetByID(ctx context.Context, id uint) (*model.Tag, error)
	Delete(ctx context.Context, id uint) error
}

type tagService struct {
	db      *gorm.DB
	tagRepo repository.TagRepository
}

func NewTagService(database *gorm.DB, tagRepo repository.TagRepository) TagService {
	return &tagService{db: database, tagRepo: tagRepo}
}

func (s *tagService) Create(ctx context.Context, input CreateTagInput) (*model.Tag, error) {
	if input.Value == "" {
		return nil, apperrors.Invalidf(apperrors.ValidationInvalidInput, "tag value is required")
	}

	existing, err := s.tagRepo.FindByValue(ctx, input.Value)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if existing != nil {
		// Creating an existing tag returns the current row.
		return existing, nil
	}

	tag := &model.Tag{Value: input.Value}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	logger.Info("Tag created", map[string]interface{}{
		"tag_id": tag.ID,
		"value":  tag.Value,
	})
	return tag, nil
}

func (s *tagService) GetAll(ctx context.Context) ([]model.Tag, error) {
	return s.tagRepo.FindAll(ctx)
}

func (s *tagService) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf(apperrors.TagNotFound, "tag with id %d not found", id)
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id uint) error {
	if err := s.tagRepo.SoftDelete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf(apperrors.TagNotFound, "tag with id %d not found", id)
		}
		return err
	}
	logger.Info("Tag deleted", map[string]interface{}{
		"tag_id": id,
	})
	return nil
}
