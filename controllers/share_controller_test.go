package controllers

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/models"
	"github.com/mehta-jewels/mehta-jewels-api/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupShareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/customers/:id/invoices/generate", GenerateInvoice)
		v1.POST("/customers/:id/share", ShareInvoice)
	}
	return router
}

func seedShareFixtures(t *testing.T, db *gorm.DB) (models.Customer, models.Design) {
	t.Helper()

	design := models.Design{
		DesignCode: "SET-001", DesignName: "Bridal Set", Category: "Sets",
		Price: decimal.NewFromInt(1200), UniqueCode: "set001x",
	}
	customer := models.Customer{Name: "Asha", Phone: "999-000-1111"}
	require.NoError(t, db.Create(&design).Error)
	require.NoError(t, db.Create(&customer).Error)
	return customer, design
}

func TestGenerateInvoiceEndpoint(t *testing.T) {
	db := setupCatalogTestDB(t)
	config.SetDB(db)
	router := setupShareRouter()

	customer, design := seedShareFixtures(t, db)

	// Two prior unpaid invoices of 500 and 300
	prior := []models.Invoice{
		{InvoiceNumber: "INV-14-n", CustomerID: customer.ID, DesignID: design.ID, Amount: decimal.NewFromInt(500)},
		{InvoiceNumber: "INV-15-o", CustomerID: customer.ID, DesignID: design.ID, Amount: decimal.NewFromInt(300)},
	}
	for i := range prior {
		require.NoError(t, db.Create(&prior[i]).Error)
	}

	w := performJSON(router, "POST", "/api/v1/customers/1/invoices/generate",
		map[string]interface{}{"design_id": design.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeResponse(t, w)
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "800", data["previous_balance"])
	assert.Equal(t, "2000", data["total_amount"])

	invoice := data["invoice"].(map[string]interface{})
	assert.Equal(t, "1200", invoice["amount"], "Stored amount is only the new charge")
	assert.False(t, invoice["is_paid"].(bool))
	assert.True(t, strings.HasPrefix(invoice["invoice_number"].(string), "INV-"))

	previousUnpaid := data["previous_unpaid"].([]interface{})
	assert.Len(t, previousUnpaid, 2)

	// Three invoices persisted in total now
	var count int64
	db.Model(&models.Invoice{}).Where("customer_id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestGenerateInvoiceEndpointUnknownTargets(t *testing.T) {
	db := setupCatalogTestDB(t)
	config.SetDB(db)
	router := setupShareRouter()

	_, design := seedShareFixtures(t, db)

	t.Run("Unknown customer", func(t *testing.T) {
		w := performJSON(router, "POST", "/api/v1/customers/999/invoices/generate",
			map[string]interface{}{"design_id": design.ID})
		assert.Equal(t, http.StatusNotFound, w.Code)

		response := decodeResponse(t, w)
		errObj := response["error"].(map[string]interface{})
		assert.Equal(t, "CUSTOMER_NOT_FOUND", errObj["code"])
	})

	t.Run("Unknown design", func(t *testing.T) {
		w := performJSON(router, "POST", "/api/v1/customers/1/invoices/generate",
			map[string]interface{}{"design_id": 999})
		assert.Equal(t, http.StatusNotFound, w.Code)

		response := decodeResponse(t, w)
		errObj := response["error"].(map[string]interface{})
		assert.Equal(t, "DESIGN_NOT_FOUND", errObj["code"])

		// Nothing was written
		var count int64
		db.Model(&models.Invoice{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestShareInvoiceEndpoint(t *testing.T) {
	db := setupCatalogTestDB(t)
	config.SetDB(db)
	router := setupShareRouter()

	customer, design := seedShareFixtures(t, db)

	invoiceDir := t.TempDir()
	config.SetConfig(&config.Config{
		ShopName:             "Mehta Jewels",
		InvoiceDir:           invoiceDir,
		RenderTimeoutSeconds: 2,
	})

	dispatcher := services.NewRenderDispatcher(2 * time.Second)
	services.SetRenderDispatcher(dispatcher)
	renderer := services.NewMockRenderer([]byte("%PDF-1.4 fake"))
	renderer.Attach(dispatcher)
	defer renderer.Stop()

	opener := &services.MockURLOpener{}
	services.SetURLOpener(opener)

	w := performJSON(router, "POST", "/api/v1/customers/1/share",
		map[string]interface{}{"design_id": design.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})

	// Invoice persisted
	var count int64
	db.Model(&models.Invoice{}).Where("customer_id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// PDF saved under the invoice directory
	pdfPath := data["pdf_path"].(string)
	assert.True(t, strings.HasPrefix(pdfPath, invoiceDir))
	content, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(content))

	// WhatsApp URL targets the digits-only phone with the message pre-filled
	shareURL := data["whatsapp_url"].(string)
	assert.True(t, strings.HasPrefix(shareURL, "https://wa.me/9990001111?text="))
	require.Len(t, opener.OpenedURLs(), 1)
	assert.Equal(t, shareURL, opener.OpenedURLs()[0])

	assert.Equal(t, "WhatsApp opened and PDF generated successfully", data["message"])
}

func TestShareInvoiceEndpointRenderTimeout(t *testing.T) {
	db := setupCatalogTestDB(t)
	config.SetDB(db)
	router := setupShareRouter()

	customer, design := seedShareFixtures(t, db)

	config.SetConfig(&config.Config{
		ShopName:             "Mehta Jewels",
		InvoiceDir:           t.TempDir(),
		RenderTimeoutSeconds: 1,
	})

	// Renderer swallows jobs, forcing the timeout path
	dispatcher := services.NewRenderDispatcher(100 * time.Millisecond)
	services.SetRenderDispatcher(dispatcher)
	renderer := services.NewMockRenderer(nil)
	renderer.Silent = true
	renderer.Attach(dispatcher)
	defer renderer.Stop()

	opener := &services.MockURLOpener{}
	services.SetURLOpener(opener)

	w := performJSON(router, "POST", "/api/v1/customers/1/share",
		map[string]interface{}{"design_id": design.ID})
	assert.Equal(t, http.StatusOK, w.Code, "Share still succeeds without a PDF")

	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})

	_, hasPDF := data["pdf_path"]
	assert.False(t, hasPDF, "No PDF path when rendering timed out")
	assert.Equal(t, "WhatsApp opened successfully", data["message"])

	// The invoice write still happened; the share is best-effort on top of it
	var count int64
	db.Model(&models.Invoice{}).Where("customer_id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestShareInvoiceEndpointUnknownCustomer(t *testing.T) {
	db := setupCatalogTestDB(t)
	config.SetDB(db)
	router := setupShareRouter()

	_, design := seedShareFixtures(t, db)

	config.SetConfig(&config.Config{ShopName: "Mehta Jewels", InvoiceDir: t.TempDir(), RenderTimeoutSeconds: 1})
	services.SetRenderDispatcher(services.NewRenderDispatcher(100 * time.Millisecond))
	services.SetURLOpener(&services.MockURLOpener{})

	w := performJSON(router, "POST", "/api/v1/customers/999/share",
		map[string]interface{}{"design_id": design.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// No invoice row and no WhatsApp launch when the generate step fails
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
