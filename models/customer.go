package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a contact record; the phone number doubles as the
// WhatsApp identity used by the share flow
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Email     *string   `json:"email"` // optional
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Aggregates computed per query from invoice rows, never stored.
	// Keeping them derived means the figures cannot drift from the ledger.
	InvoiceCount  int64           `gorm:"-:migration;->" json:"invoice_count"`
	PendingAmount decimal.Decimal `gorm:"-:migration;->" json:"pending_amount"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
