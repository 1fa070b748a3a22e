package model

import "time"

// ProductVariant is a purchasable variant of a product. Its selection of
// option values is stored through ProductVariantOption rows resolved at
// write time against the product's option values.
type ProductVariant struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	SKU         string    `gorm:"size:256" json:"sku"`
	Quantity    int       `gorm:"default:0;not null" json:"quantity"`
	ManageStock bool      `gorm:"default:true;not null" json:"manage_stock"`
	Attributes  JSONMap   `gorm:"type:text" json:"attributes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OptionValues []ProductOptionValue `gorm:"many2many:product_variant_options;" json:"option_values,omitempty"`
	Prices       []Price              `gorm:"foreignKey:VariantID" json:"prices,omitempty"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductVariantOption links a variant to one chosen option value.
type ProductVariantOption struct {
	ProductVariantID     uint `gorm:"primaryKey;index" json:"product_variant_id"`
	ProductOptionValueID uint `gorm:"primaryKey;index" json:"product_option_value_id"`
}

func (ProductVariantOption) TableName() string {
	return "product_variant_options"
}
