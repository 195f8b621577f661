package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is one listing in the catalog: a single title/platform/region variant.
type Game struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	Title              string              `gorm:"type:varchar(255);not null;index:idx_title" json:"title" validate:"required,max=255"`
	Platform           string              `gorm:"type:varchar(100);not null;index:idx_platform" json:"platform" validate:"required,max=100"`
	Region             string              `gorm:"type:varchar(50);not null" json:"region" validate:"required,max=50"`
	Price              decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0"`
	OriginalPrice      decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"original_price" validate:"omitempty,gte=0"`
	DiscountPercentage *int                `json:"discount_percentage" validate:"omitempty,min=0,max=100"`
	CoverImageURL      string              `gorm:"column:cover_image_url;not null" json:"cover_image_url" validate:"required,url"`
	HasCashback        bool                `gorm:"default:false" json:"has_cashback"`
	StockStatus        *string             `gorm:"type:varchar(100)" json:"stock_status" validate:"omitempty,max=100"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"-"`
}

func (Game) TableName() string {
	return "games"
}
