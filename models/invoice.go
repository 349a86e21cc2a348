package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice records one design sold to one customer. Amount is a snapshot of
// the design's price at the moment of sale and is never updated afterwards;
// the paid flag is the only mutable field.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	Customer      Customer        `gorm:"foreignKey:CustomerID" json:"-"`
	DesignID      uint            `gorm:"not null;index" json:"design_id"`
	Design        Design          `gorm:"foreignKey:DesignID" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	IsPaid        bool            `gorm:"not null;default:false" json:"is_paid"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// CustomerInvoiceRow is an invoice joined with its design's display fields,
// as returned by the per-customer invoice listing
type CustomerInvoiceRow struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uint            `json:"customer_id"`
	DesignID      uint            `json:"design_id"`
	Amount        decimal.Decimal `json:"amount"`
	IsPaid        bool            `json:"is_paid"`
	CreatedAt     time.Time       `json:"created_at"`
	DesignName    string          `json:"design_name"`
	DesignCode    string          `json:"design_code"`
	ImagePath     *string         `json:"image_path"`
}

// LedgerInvoiceRow is an invoice joined with both design and customer display
// fields, as returned by the global invoice ledger listing
type LedgerInvoiceRow struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uint            `json:"customer_id"`
	DesignID      uint            `json:"design_id"`
	Amount        decimal.Decimal `json:"amount"`
	IsPaid        bool            `json:"is_paid"`
	CreatedAt     time.Time       `json:"created_at"`
	DesignName    string          `json:"design_name"`
	DesignCode    string          `json:"design_code"`
	ImagePath     *string         `json:"image_path"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
}
