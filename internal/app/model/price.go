package model

import "time"

type PriceType string

const (
	PriceDefault PriceType = "default"
	PriceSale    PriceType = "sale"
)

// Price belongs to one variant. Amount is in the smallest currency unit.
// Rules scope the price (e.g. by country) and stay an opaque mapping.
type Price struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	VariantID uint      `gorm:"index;not null" json:"variant_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Currency  string    `gorm:"size:8;not null" json:"currency"`
	Rules     JSONMap   `gorm:"type:text" json:"rules"`
	Type      PriceType `gorm:"type:varchar(10);not null;default:default" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Price) TableName() string {
	return "prices"
}
