package model

import (
	"time"

	"gorm.io/gorm"
)

// Category is an independent lookup entity with an optional parent link.
// The tree is not enforced acyclic by the data layer. The slug is unique
// among non-deleted categories.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:256;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Slug        string         `gorm:"size:256;index;not null" json:"slug"`
	ParentID    *uint          `gorm:"index" json:"parent_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// ProductCategory links a product to a category.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey;index" json:"product_id"`
	CategoryID uint `gorm:"primaryKey;index" json:"category_id"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
