package model

import "time"

// ProductOption is an option group ("Color") owned by one product. Options
// are only ever created as part of a product write, never standalone.
type ProductOption struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Values []ProductOptionValue `gorm:"foreignKey:ProductOptionID" json:"values,omitempty"`
}

func (ProductOption) TableName() string {
	return "product_options"
}

// ProductOptionValue is one value ("Red") of an option group.
type ProductOptionValue struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	ProductOptionID uint   `gorm:"index;not null" json:"product_option_id"`
	Value           string `gorm:"size:256;not null" json:"value"`
}

func (ProductOptionValue) TableName() string {
	return "product_option_values"
}
