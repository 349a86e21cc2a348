package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/models"
	"github.com/mehta-jewels/mehta-jewels-api/utils"
	"github.com/shopspring/decimal"
)

// AddDesignRequest represents the request body for adding a design.
// Price is a pointer so a missing field fails validation instead of
// defaulting to zero.
type AddDesignRequest struct {
	Code       string           `json:"code" binding:"required"`
	Name       string           `json:"name" binding:"required"`
	Category   string           `json:"category" binding:"required"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	ImagePath  *string          `json:"image_path"`
	UniqueCode string           `json:"unique_code"` // generated server-side when omitted
}

// UpdateDesignRequest represents the request body for updating a design
type UpdateDesignRequest struct {
	Code     string           `json:"code" binding:"required"`
	Name     string           `json:"name" binding:"required"`
	Category string           `json:"category" binding:"required"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
}

// AddDesign handles POST /api/v1/designs - adds a catalog item
func AddDesign(c *gin.Context) {
	var req AddDesignRequest
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

	uniqueCode := req.UniqueCode
	if uniqueCode == "" {
		uniqueCode = utils.GenerateShortCode(8)
	}

	design := models.Design{
		DesignCode: req.Code,
		DesignName: req.Name,
		Category:   req.Category,
		Price:      *req.Price,
		ImagePath:  req.ImagePath,
		UniqueCode: uniqueCode,
	}

	db := config.GetDB()
	if err := db.Create(&design).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DESIGN_EXISTS",
					"message": "A design with this unique code already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create design",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": design.ID},
	})
}

// GetDesigns handles GET /api/v1/designs - lists all designs, newest first
func GetDesigns(c *gin.Context) {
	db := config.GetDB()

	designs := make([]models.Design, 0)
	if err := db.Order("created_at DESC").Find(&designs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch designs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    designs,
	})
}

// UpdateDesign handles PUT /api/v1/designs/:id - replaces the mutable fields
func UpdateDesign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDesignRequest
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
	result := db.Model(&models.Design{}).Where("id = ?", id).Updates(map[string]interface{}{
		"design_code": req.Code,
		"design_name": req.Name,
		"category":    req.Category,
		"price":       *req.Price,
	})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update design",
			},
		})
		return
	}

	// Zero rows affected means the design does not exist; this is reported
	// rather than silently ignored
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DESIGN_NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"affected_rows": result.RowsAffected},
	})
}

// DeleteDesign handles DELETE /api/v1/designs/:id - removes a design.
// The delete is rejected while invoices still reference the design, so an
// invoice can never point at a missing catalog item.
func DeleteDesign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()

	var dependents int64
	if err := db.Model(&models.Invoice{}).Where("design_id = ?", id).Count(&dependents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check design invoices",
			},
		})
		return
	}
	if dependents > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HAS_INVOICES",
				"message": "Design has invoices and cannot be deleted",
			},
		})
		return
	}

	result := db.Delete(&models.Design{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete design",
			},
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DESIGN_NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"affected_rows": result.RowsAffected},
	})
}

// parseIDParam parses the :id path parameter and reports the uniform
// validation failure when it is not a positive integer
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "A numeric identifier is required",
			},
		})
		return 0, false
	}
	return uint(id), true
}
