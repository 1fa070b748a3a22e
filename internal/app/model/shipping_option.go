package model

import (
	"time"

	"gorm.io/gorm"
)

// ShippingOption is an independent entity with its own prices, linked to
// products many-to-many.
type ShippingOption struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Name              string         `gorm:"size:256;not null" json:"name"`
	PostalCode        string         `gorm:"size:20" json:"postal_code"`
	CountryCode       string         `gorm:"size:2" json:"country_code"`
	IsShippingProfile bool           `gorm:"not null;default:false" json:"is_shipping_profile"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Prices []ShippingOptionPrice `gorm:"foreignKey:ShippingOptionID" json:"prices,omitempty"`
}

func (ShippingOption) TableName() string {
	return "shipping_options"
}

// ShippingOptionPrice belongs to one shipping option.
type ShippingOptionPrice struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	ShippingOptionID uint      `gorm:"index;not null" json:"shipping_option_id"`
	Amount           int64     `gorm:"not null" json:"amount"`
	Currency         string    `gorm:"size:8;not null" json:"currency"`
	Rules            JSONMap   `gorm:"type:text" json:"rules"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ShippingOptionPrice) TableName() string {
	return "shipping_option_prices"
}

// ProductShippingOption links a product to a shipping option.
type ProductShippingOption struct {
	ProductID        uint `gorm:"primaryKey;index" json:"product_id"`
	ShippingOptionID uint `gorm:"primaryKey;index" json:"shipping_option_id"`
}

func (ProductShippingOption) TableName() string {
	return "product_shipping_options"
}
