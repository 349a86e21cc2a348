package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/models"
)

// AddCustomerRequest represents the request body for adding a customer
type AddCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone" binding:"required"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone" binding:"required"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// AddCustomer handles POST /api/v1/customers - creates a contact record
func AddCustomer(c *gin.Context) {
	var req AddCustomerRequest
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

	customer := models.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create customer",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": customer.ID},
	})
}

// GetCustomers handles GET /api/v1/customers - lists all customers, newest
// first, each annotated with its invoice count and pending (unpaid) amount.
// Both aggregates come from one grouped join over the invoice rows so they
// can never drift from the ledger.
func GetCustomers(c *gin.Context) {
	db := config.GetDB()

	customers := make([]models.Customer, 0)
	err := db.Table("customers c").
		Select("c.*, COUNT(i.id) AS invoice_count, COALESCE(SUM(CASE WHEN NOT i.is_paid THEN i.amount ELSE 0 END), 0) AS pending_amount").
		Joins("LEFT JOIN invoices i ON i.customer_id = c.id").
		Group("c.id").
		Order("c.created_at DESC").
		Scan(&customers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// UpdateCustomer handles PUT /api/v1/customers/:id - replaces the mutable fields
func UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
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
	result := db.Model(&models.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":  req.Name,
		"phone": req.Phone,
		"email": req.Email,
	})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update customer",
			},
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"affected_rows": result.RowsAffected},
	})
}

// DeleteCustomer handles DELETE /api/v1/customers/:id - removes a customer.
// The delete is rejected while invoices still reference the customer.
func DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()

	var dependents int64
	if err := db.Model(&models.Invoice{}).Where("customer_id = ?", id).Count(&dependents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check customer invoices",
			},
		})
		return
	}
	if dependents > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HAS_INVOICES",
				"message": "Customer has invoices and cannot be deleted",
			},
		})
		return
	}

	result := db.Delete(&models.Customer{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete customer",
			},
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"affected_rows": result.RowsAffected},
	})
}
