package repository

import (
	"context"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	FindAll(ctx context.Context) ([]model.Tag, error)
	FindByID(ctx context.Context, id uint) (*model.Tag, error)
	// FindByIDs returns the non-deleted tags among ids; callers compare the
	// result size against the request to detect missing ids.
	FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error)
	FindByValue(ctx context.Context, value string) (*model.Tag, error)
	LinkProduct(ctx context.Context, productID uint, tagIDs []uint) error
	SoftDelete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if err := r.conn(ctx).Create(tag).Error; err != nil {
		logger.Error("Failed to create tag", err, map[string]interface{}{
			"value": tag.Value,
		})
		return err
	}
	return nil
}

func (r *tagRepository) FindAll(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.conn(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		logger.Error("Failed to list tags", err)
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.conn(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags by ids", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByValue(ctx context.Context, value string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.conn(ctx).Where("value = ?", value).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) LinkProduct(ctx context.Context, productID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.ProductTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, model.ProductTag{ProductID: productID, TagID: tagID})
	}
	// Re-linking an already linked tag is a no-op, not a conflict.
	if err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		logger.Error("Failed to link tags to product", err, map[string]interface{}{
			"product_id": productID,
			"count":      len(tagIDs),
		})
		return err
	}
	return nil
}

func (r *tagRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&model.Tag{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete tag", result.Error, map[string]interface{}{
			"tag_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
