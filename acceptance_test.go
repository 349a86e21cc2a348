package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServerStartup verifies the full router can be assembled
func TestServerStartup(t *testing.T) {
	router := setupRouter(t)
	assert.NotNil(t, router, "Router should be initialized")
}

// TestCarryOverBillingAcceptance walks the whole billing story: a customer
// with two unpaid invoices buys a third piece, the new invoice carries the
// previous balance forward, and a payment brings the pending amount back down
func TestCarryOverBillingAcceptance(t *testing.T) {
	router := setupRouter(t)

	// A customer with two outstanding invoices
	w := doRequest(router, "POST", "/api/v1/customers", map[string]interface{}{
		"name": "Asha", "phone": "+91 99900 01111",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, "POST", "/api/v1/designs", map[string]interface{}{
		"code": "NKL-120", "name": "Temple Necklace", "category": "Necklaces", "price": 1200,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for i, amount := range []int{500, 300} {
		w = doRequest(router, "POST", "/api/v1/invoices", map[string]interface{}{
			"invoice_number": fmt.Sprintf("INV-ACC-%03d", i),
			"customer_id":    1,
			"design_id":      1,
			"amount":         amount,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// She buys the necklace; the summary folds in her outstanding balance
	w = doRequest(router, "POST", "/api/v1/customers/1/invoices/generate", map[string]interface{}{
		"design_id": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	summary := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "800", summary["previous_balance"])
	assert.Equal(t, "2000", summary["total_amount"])

	invoice := summary["invoice"].(map[string]interface{})
	assert.Equal(t, "1200", invoice["amount"])
	assert.True(t, strings.HasPrefix(invoice["invoice_number"].(string), "INV-"))

	previousUnpaid := summary["previous_unpaid"].([]interface{})
	assert.Len(t, previousUnpaid, 2, "Only the earlier invoices count as carry-over")

	// The customer list now shows all three invoices pending
	w = doRequest(router, "GET", "/api/v1/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	customer := parseBody(t, w)["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(3), customer["invoice_count"])
	assert.Equal(t, "2000", customer["pending_amount"])

	// Paying the oldest invoice drops the pending amount by exactly 500
	w = doRequest(router, "PUT", "/api/v1/invoices/1/status", map[string]interface{}{"is_paid": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "GET", "/api/v1/customers", nil)
	customer = parseBody(t, w)["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(3), customer["invoice_count"])
	assert.Equal(t, "1500", customer["pending_amount"])
}

// TestShareWorkflowAcceptance exercises the share flow end to end with a
// renderer and opener standing in for the real PDF engine and WhatsApp
func TestShareWorkflowAcceptance(t *testing.T) {
	router := setupRouter(t)

	invoiceDir := t.TempDir()
	config.SetConfig(&config.Config{
		ShopName:   "Mehta Jewels",
		InvoiceDir: invoiceDir,
	})

	dispatcher := services.NewRenderDispatcher(2 * time.Second)
	services.SetRenderDispatcher(dispatcher)
	renderer := services.NewMockRenderer([]byte("%PDF-1.4 acceptance"))
	renderer.Attach(dispatcher)
	defer renderer.Stop()

	opener := &services.MockURLOpener{}
	services.SetURLOpener(opener)

	doRequest(router, "POST", "/api/v1/customers", map[string]interface{}{
		"name": "Asha", "phone": "999-000-1111",
	})
	doRequest(router, "POST", "/api/v1/designs", map[string]interface{}{
		"code": "BNG-055", "name": "Kada Bangle", "category": "Bangles", "price": 2500,
	})

	w := doRequest(router, "POST", "/api/v1/customers/1/share", map[string]interface{}{
		"design_id": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	result := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "WhatsApp opened and PDF generated successfully", result["message"])

	waURL := result["whatsapp_url"].(string)
	assert.True(t, strings.HasPrefix(waURL, "https://wa.me/9990001111?text="),
		"Share link targets the customer's digits-only phone number")

	opened := opener.OpenedURLs()
	require.Len(t, opened, 1)
	assert.Equal(t, waURL, opened[0])

	// The rendered PDF is saved under the invoice directory
	pdfPath := result["pdf_path"].(string)
	assert.Equal(t, invoiceDir, filepath.Dir(pdfPath))
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 acceptance", string(data))

	// The sale itself landed in the ledger
	w = doRequest(router, "GET", "/api/v1/invoices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	invoices := parseBody(t, w)["data"].([]interface{})
	require.Len(t, invoices, 1)
	assert.Equal(t, "2500", invoices[0].(map[string]interface{})["amount"])
}

// TestUnknownTargetsAcceptance verifies the billing endpoints report missing
// records instead of writing partial data
func TestUnknownTargetsAcceptance(t *testing.T) {
	router := setupRouter(t)

	doRequest(router, "POST", "/api/v1/customers", map[string]interface{}{
		"name": "Asha", "phone": "9990001111",
	})

	w := doRequest(router, "POST", "/api/v1/customers/1/invoices/generate", map[string]interface{}{
		"design_id": 42,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	response := parseBody(t, w)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "DESIGN_NOT_FOUND", response["error"].(map[string]interface{})["code"])

	w = doRequest(router, "POST", "/api/v1/customers/42/invoices/generate", map[string]interface{}{
		"design_id": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	response = parseBody(t, w)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", response["error"].(map[string]interface{})["code"])

	// Nothing was written on either failure
	w = doRequest(router, "GET", "/api/v1/invoices", nil)
	assert.Len(t, parseBody(t, w)["data"].([]interface{}), 0)
}
