package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductStatus string

const (
	StatusDraft     ProductStatus = "draft"
	StatusPublished ProductStatus = "published"
	StatusRejected  ProductStatus = "rejected"
	StatusProposed  ProductStatus = "proposed"
)

// Product is the aggregate root: it owns options, variants and images and
// links to the independent lookup entities. The slug is unique among
// non-deleted products (enforced in the write path, inside the transaction).
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Status        ProductStatus  `gorm:"type:varchar(20);not null;default:draft" json:"status"`
	Title         string         `gorm:"size:256;not null" json:"title"`
	Subtitle      string         `gorm:"size:256" json:"subtitle"`
	Description   string         `gorm:"type:text" json:"description"`
	Slug          string         `gorm:"size:256;index;not null" json:"slug"`
	Weight        *int           `json:"weight"`
	Height        *int           `json:"height"`
	Width         *int           `json:"width"`
	Depth         *int           `json:"depth"`
	Metadata      JSONMap        `gorm:"type:text" json:"metadata"`
	OriginCountry string         `gorm:"size:256" json:"origin_country"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Options         []ProductOption  `gorm:"foreignKey:ProductID" json:"options,omitempty"`
	Variants        []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Images          []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Tags            []Tag            `gorm:"many2many:product_tags;" json:"tags,omitempty"`
	Materials       []Material       `gorm:"many2many:product_materials;" json:"materials,omitempty"`
	Categories      []Category       `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	ShippingOptions []ShippingOption `gorm:"many2many:product_shipping_options;" json:"shipping_options,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
