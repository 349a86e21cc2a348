package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PDFFileError represents a PDF persistence validation error
type PDFFileError struct {
	Code    string
	Message string
}

func (e *PDFFileError) Error() string {
	return e.Message
}

// SavePDF writes rendered PDF bytes to the invoice directory as
// Invoice_<number>.pdf and returns the full path
func SavePDF(dir, invoiceNumber string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &PDFFileError{
			Code:    "EMPTY_PDF",
			Message: "Rendered PDF is empty",
		}
	}
	if invoiceNumber == "" {
		return "", &PDFFileError{
			Code:    "MISSING_INVOICE_NUMBER",
			Message: "Invoice number is required to name the PDF file",
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	fileName := fmt.Sprintf("Invoice_%s.pdf", sanitizeFileName(invoiceNumber))
	fullPath := filepath.Join(dir, fileName)

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save PDF: %w", err)
	}

	return fullPath, nil
}

// sanitizeFileName strips path separators and other characters that have no
// business in a file name derived from user-visible data
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		" ", "_",
	)
	return replacer.Replace(name)
}
