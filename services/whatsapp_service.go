package services

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mehta-jewels/mehta-jewels-api/models"
)

// URLOpener opens an external URL in the user's default handler
type URLOpener interface {
	OpenExternal(url string) error
}

// ShellOpener opens URLs through the operating system's default opener
type ShellOpener struct{}

// OpenExternal launches the URL with the platform opener
func (ShellOpener) OpenExternal(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open URL: %w", err)
	}
	return nil
}

var urlOpenerInstance URLOpener

// InitURLOpener initializes the URL opener used by the share flow
func InitURLOpener(opener URLOpener) URLOpener {
	urlOpenerInstance = opener
	return urlOpenerInstance
}

// GetURLOpener returns the initialized URL opener instance
func GetURLOpener() URLOpener {
	return urlOpenerInstance
}

// SetURLOpener sets the URL opener instance (primarily for testing)
func SetURLOpener(opener URLOpener) {
	urlOpenerInstance = opener
}

// BuildInvoiceMessage renders the WhatsApp text for a freshly generated
// invoice. The previous-balance line appears only when there is one.
func BuildInvoiceMessage(shopName string, s *InvoiceSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", s.Customer.Name)
	fmt.Fprintf(&b, "Here's your invoice from %s:\n\n", shopName)
	fmt.Fprintf(&b, "Design: %s\n", s.Design.DesignName)
	fmt.Fprintf(&b, "Code: %s\n", s.Design.DesignCode)
	fmt.Fprintf(&b, "Category: %s\n", s.Design.Category)
	fmt.Fprintf(&b, "Price: ₹%s\n", s.Design.Price.StringFixed(2))
	fmt.Fprintf(&b, "Invoice #: %s\n", s.Invoice.InvoiceNumber)
	if s.PreviousBalance.IsPositive() {
		fmt.Fprintf(&b, "\nPrevious Balance: ₹%s\n", s.PreviousBalance.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTOTAL AMOUNT: ₹%s\n", s.TotalAmount.StringFixed(2))
	b.WriteString("\nThank you for your business!")
	return b.String()
}

// BuildDesignMessage renders the WhatsApp text for sharing a catalog item
// without a sale
func BuildDesignMessage(shopName string, customer models.Customer, design models.Design) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", customer.Name)
	fmt.Fprintf(&b, "A new piece from %s, picked for you:\n\n", shopName)
	fmt.Fprintf(&b, "Design: %s\n", design.DesignName)
	fmt.Fprintf(&b, "Code: %s\n", design.DesignCode)
	fmt.Fprintf(&b, "Category: %s\n", design.Category)
	fmt.Fprintf(&b, "Price: ₹%s\n", design.Price.StringFixed(2))
	b.WriteString("\nWould you like to know more about this piece?")
	return b.String()
}

// ComposeShareURL builds the wa.me URL that opens a chat with the customer
// and the message pre-filled
func ComposeShareURL(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", sanitizePhone(phone), url.QueryEscape(message))
}

// sanitizePhone strips everything but digits; wa.me expects the number in
// international format without punctuation
func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
