package model

import (
	"time"

	"gorm.io/gorm"
)

// Material is an independent lookup entity; its value is unique among
// non-deleted materials (checked in the write path).
type Material struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Value     string         `gorm:"size:256;index;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Material) TableName() string {
	return "materials"
}

// ProductMaterial links a product to a material.
type ProductMaterial struct {
	ProductID  uint `gorm:"primaryKey;index" json:"product_id"`
	MaterialID uint `gorm:"primaryKey;index" json:"material_id"`
}

func (ProductMaterial) TableName() string {
	return "product_materials"
}
