package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateInvoiceRequest represents the request body for creating an invoice.
// The amount is the design's price captured at the time of sale; callers
// snapshot it so later catalog edits never change past invoices. It is a
// pointer so a missing field fails validation instead of defaulting to zero.
type CreateInvoiceRequest struct {
	InvoiceNumber string           `json:"invoice_number" binding:"required"`
	CustomerID    uint             `json:"customer_id" binding:"required"`
	DesignID      uint             `json:"design_id" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateInvoiceStatusRequest represents the request body for flipping the paid flag
type UpdateInvoiceStatusRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required"`
}

// CreateInvoice handles POST /api/v1/invoices - records one design sold to
// one customer, unpaid by default
func CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Both references must resolve at creation time
	var customer models.Customer
	if err := db.First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CUSTOMER_NOT_FOUND",
					"message": "Customer not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up customer",
			},
		})
		return
	}

	var design models.Design
	if err := db.First(&design, req.DesignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DESIGN_NOT_FOUND",
					"message": "Design not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up design",
			},
		})
		return
	}

	invoice := models.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		DesignID:      req.DesignID,
		Amount:        *req.Amount,
		IsPaid:        false,
	}

	if err := db.Create(&invoice).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVOICE_EXISTS",
					"message": "An invoice with this number already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create invoice",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": invoice.ID},
	})
}

// GetCustomerInvoices handles GET /api/v1/customers/:id/invoices - lists a
// customer's invoices joined with the design's display fields, newest first
func GetCustomerInvoices(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()

	rows := make([]models.CustomerInvoiceRow, 0)
	err := db.Table("invoices i").
		Select("i.id, i.invoice_number, i.customer_id, i.design_id, i.amount, i.is_paid, i.created_at, d.design_name, d.design_code, d.image_path").
		Joins("JOIN designs d ON d.id = i.design_id").
		Where("i.customer_id = ?", customerID).
		Order("i.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customer invoices",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}

// GetAllInvoices handles GET /api/v1/invoices - the global ledger view:
// every invoice joined with design and customer display fields, newest first
func GetAllInvoices(c *gin.Context) {
	db := config.GetDB()

	rows := make([]models.LedgerInvoiceRow, 0)
	err := db.Table("invoices i").
		Select("i.id, i.invoice_number, i.customer_id, i.design_id, i.amount, i.is_paid, i.created_at, d.design_name, d.design_code, d.image_path, c.name AS customer_name, c.phone AS customer_phone").
		Joins("JOIN designs d ON d.id = i.design_id").
		Joins("JOIN customers c ON c.id = i.customer_id").
		Order("i.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch invoices",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}

// UpdateInvoiceStatus handles PUT /api/v1/invoices/:id/status - flips the
// paid flag. No sibling invoices are touched; pending balances are always
// re-derived from the rows.
func UpdateInvoiceStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Model(&models.Invoice{}).Where("id = ?", id).Update("is_paid", *req.IsPaid)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update invoice status",
			},
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVOICE_NOT_FOUND",
				"message": "Invoice not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"affected_rows": result.RowsAffected},
	})
}

// DeleteInvoice handles DELETE /api/v1/invoices/:id - removes an invoice.
// Invoices are leaf entities, so there is nothing to cascade.
func DeleteInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Invoice{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete invoice",
			},
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVOICE_NOT_FOUND",
				"message": "Invoice not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"affected_rows": result.RowsAffected},
	})
}
