package service

import (
	"context"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"github.com/stackos/catalog-backend/pkg/slug"
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uint, input UpdateCategoryInput) error
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(database *gorm.DB, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{db: database, categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperrors.Invalidf(apperrors.ValidationInvalidInput, "category name is required")
	}
	if input.Slug != "" && !slug.IsValid(input.Slug) {
		return nil, apperrors.Invalidf(apperrors.ValidationInvalidSlug, "invalid slug %q", input.Slug)
	}

	var category *model.Category
	err := db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		categorySlug := input.Slug
		if categorySlug == "" {
			categorySlug = slug.Slugify(input.Name)
		}
		if err := s.ensureSlugFree(ctx, categorySlug); err != nil {
			return err
		}
		if input.ParentID != nil {
			if _, err := s.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.Invalidf(apperrors.CategoryNotFound, "parent category with id %d not found", *input.ParentID)
				}
				return err
			}
		}

		category = &model.Category{
			Name:        input.Name,
			Description: input.Description,
			Slug:        categorySlug,
			ParentID:    input.ParentID,
		}
		return s.categoryRepo.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, input UpdateCategoryInput) error {
	if input.Slug != nil && !slug.IsValid(*input.Slug) {
		return apperrors.Invalidf(apperrors.ValidationInvalidSlug, "invalid slug %q", *input.Slug)
	}

	return db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		existing, err := s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFoundf(apperrors.CategoryNotFound, "category with id %d not found", id)
			}
			return err
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Slug != nil && *input.Slug != existing.Slug {
			if err := s.ensureSlugFree(ctx, *input.Slug); err != nil {
				return err
			}
			updates["slug"] = *input.Slug
		}
		if input.ParentID != nil {
			if *input.ParentID == id {
				return apperrors.Invalidf(apperrors.ValidationInvalidInput, "category cannot be its own parent")
			}
			if _, err := s.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.Invalidf(apperrors.CategoryNotFound, "parent category with id %d not found", *input.ParentID)
				}
				return err
			}
			updates["parent_id"] = *input.ParentID
		}
		if len(updates) == 0 {
			return nil
		}
		return s.categoryRepo.UpdateColumns(ctx, id, updates)
	})
}

func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf(apperrors.CategoryNotFound, "category with id %d not found", id)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categoryRepo.SoftDelete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf(apperrors.CategoryNotFound, "category with id %d not found", id)
		}
		return err
	}
	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (s *categoryService) ensureSlugFree(ctx context.Context, slugValue string) error {
	_, err := s.categoryRepo.FindBySlug(ctx, slugValue)
	if err == nil {
		return apperrors.Invalidf(apperrors.ValidationInvalidInput, "category slug %q is already in use", slugValue)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return nil
}
