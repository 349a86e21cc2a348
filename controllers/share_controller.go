package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/services"
)

// GenerateInvoiceRequest represents the request body for selling a design to
// a customer
type GenerateInvoiceRequest struct {
	DesignID uint `json:"design_id" binding:"required"`
}

// GenerateInvoice handles POST /api/v1/customers/:id/invoices/generate -
// computes the customer's carry-over balance, persists a new invoice for the
// design, and returns the combined summary view-model
func GenerateInvoice(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req GenerateInvoiceRequest
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
	summary, err := services.GenerateInvoice(db, customerID, req.DesignID)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    summary,
	})
}

// ShareInvoice handles POST /api/v1/customers/:id/share - generates an
// invoice for the design and opens a WhatsApp chat with the invoice message,
// attaching a rendered PDF when the renderer answers in time
func ShareInvoice(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req GenerateInvoiceRequest
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

	cfg := config.GetConfig()
	db := config.GetDB()
	result, err := services.ShareInvoice(c.Request.Context(), db, customerID, req.DesignID, cfg.ShopName, cfg.InvoiceDir)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) || errors.Is(err, services.ErrDesignNotFound) {
			respondBillingError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHARE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// respondBillingError maps billing service errors onto the uniform envelope
func respondBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
	case errors.Is(err, services.ErrDesignNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DESIGN_NOT_FOUND",
				"message": "Design not found",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to generate invoice",
			},
		})
	}
}
