package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mehta-jewels/mehta-jewels-api/models"
	"github.com/mehta-jewels/mehta-jewels-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound is returned when the target customer does not exist
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDesignNotFound is returned when the target design does not exist
	ErrDesignNotFound = errors.New("design not found")
)

// InvoiceSummary is the view-model produced when a design is sold to a
// customer. It combines the persisted invoice with the customer's carry-over
// balance; downstream PDF rendering and WhatsApp sharing consume it as-is.
//
// The stored invoice amount is only the new charge. The carry-over lives in
// PreviousBalance and TotalAmount, which are display figures re-derived from
// the unpaid rows every time, never written back to the store.
type InvoiceSummary struct {
	Invoice         models.Invoice   `json:"invoice"`
	Design          models.Design    `json:"design"`
	Customer        models.Customer  `json:"customer"`
	PreviousUnpaid  []models.Invoice `json:"previous_unpaid"`
	PreviousBalance decimal.Decimal  `json:"previous_balance"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
}

// GenerateInvoice computes the customer's outstanding balance, persists a new
// unpaid invoice for the design at its current price, and returns the
// combined summary. A store failure on the insert aborts the whole flow so
// callers never share an invoice that was not written.
func GenerateInvoice(db *gorm.DB, customerID, designID uint) (*InvoiceSummary, error) {
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	var design models.Design
	if err := db.First(&design, designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("failed to load design: %w", err)
	}

	previousUnpaid, previousBalance := PendingBalance(db, customerID)

	invoice := models.Invoice{
		InvoiceNumber: NewInvoiceNumber(),
		CustomerID:    customer.ID,
		DesignID:      design.ID,
		Amount:        design.Price, // snapshot of the price at time of sale
		IsPaid:        false,
	}
	if err := db.Create(&invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &InvoiceSummary{
		Invoice:         invoice,
		Design:          design,
		Customer:        customer,
		PreviousUnpaid:  previousUnpaid,
		PreviousBalance: previousBalance,
		TotalAmount:     design.Price.Add(previousBalance),
	}, nil
}

// PendingBalance returns the customer's unpaid invoices and the sum of their
// amounts. A fetch failure is treated as a zero balance: the figure is
// informational and must not block invoice creation.
func PendingBalance(db *gorm.DB, customerID uint) ([]models.Invoice, decimal.Decimal) {
	var invoices []models.Invoice
	err := db.Where("customer_id = ? AND NOT is_paid", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		log.Printf("Failed to fetch unpaid invoices for customer %d, treating balance as zero: %v", customerID, err)
		return nil, decimal.Zero
	}

	balance := decimal.Zero
	for _, inv := range invoices {
		balance = balance.Add(inv.Amount)
	}
	return invoices, balance
}

// NewInvoiceNumber generates a business-facing invoice number from the
// current time plus a short random suffix. Collisions are unlikely enough in
// practice, and the unique index on invoice_number catches the rest.
func NewInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), utils.GenerateShortCode(6))
}
