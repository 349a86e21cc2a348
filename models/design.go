package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Design represents a sellable catalog item (a jewelry piece)
type Design struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	DesignCode string          `gorm:"not null" json:"design_code"`                  // free-text SKU
	DesignName string          `gorm:"not null" json:"design_name"`
	Category   string          `gorm:"not null" json:"category"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImagePath  *string         `json:"image_path"`                                   // nullable, path on local disk
	UniqueCode string          `gorm:"uniqueIndex;not null" json:"unique_code"`      // external-facing short code, generated at creation
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Design model
func (Design) TableName() string {
	return "designs"
}
