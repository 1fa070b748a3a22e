package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag is an independent lookup entity; its value is unique among non-deleted
// tags (checked in the write path).
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Value     string         `gorm:"size:256;index;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// ProductTag links a product to a tag.
type ProductTag struct {
	ProductID uint `gorm:"primaryKey;index" json:"product_id"`
	TagID     uint `gorm:"primaryKey;index" json:"tag_id"`
}

func (ProductTag) TableName() string {
	return "product_tags"
}
