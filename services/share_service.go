package services

import (
	"context"
	"fmt"
	"log"

	"github.com/mehta-jewels/mehta-jewels-api/utils"
	"gorm.io/gorm"
)

// ShareResult reports the outcome of a WhatsApp share flow. PDFPath is empty
// when rendering failed; the invoice itself is still the source of truth.
type ShareResult struct {
	Summary     *InvoiceSummary `json:"summary"`
	PDFPath     string          `json:"pdf_path,omitempty"`
	WhatsAppURL string          `json:"whatsapp_url"`
	Message     string          `json:"message"`
}

// ShareInvoice sells the design to the customer and opens a WhatsApp chat
// with the invoice message pre-filled. The invoice write must succeed before
// anything is shared; the PDF render is best-effort and its failure only
// downgrades the result, it does not undo the sale.
func ShareInvoice(ctx context.Context, db *gorm.DB, customerID, designID uint, shopName, invoiceDir string) (*ShareResult, error) {
	summary, err := GenerateInvoice(db, customerID, designID)
	if err != nil {
		return nil, err
	}

	pdfPath := ""
	if dispatcher := GetRenderDispatcher(); dispatcher != nil {
		pdf, renderErr := dispatcher.Render(ctx, summary)
		if renderErr != nil {
			log.Printf("PDF generation failed for invoice %s: %v", summary.Invoice.InvoiceNumber, renderErr)
		} else {
			saved, saveErr := utils.SavePDF(invoiceDir, summary.Invoice.InvoiceNumber, pdf)
			if saveErr != nil {
				log.Printf("Failed to save PDF for invoice %s: %v", summary.Invoice.InvoiceNumber, saveErr)
			} else {
				pdfPath = saved
			}
		}
	}

	message := BuildInvoiceMessage(shopName, summary)
	shareURL := ComposeShareURL(summary.Customer.Phone, message)

	opener := GetURLOpener()
	if opener == nil {
		return nil, fmt.Errorf("no URL opener configured")
	}
	if err := opener.OpenExternal(shareURL); err != nil {
		return nil, fmt.Errorf("failed to open WhatsApp: %w", err)
	}

	info := "WhatsApp opened successfully"
	if pdfPath != "" {
		info = "WhatsApp opened and PDF generated successfully"
	}

	return &ShareResult{
		Summary:     summary,
		PDFPath:     pdfPath,
		WhatsAppURL: shareURL,
		Message:     info,
	}, nil
}
