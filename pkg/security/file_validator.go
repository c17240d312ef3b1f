package security

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfMagic is the %PDF header every PDF starts with
var pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrNotPDF          = errors.New("only PDF files are supported")
	ErrContentMismatch = errors.New("file content does not match extension")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrUnreadablePDF   = errors.New("PDF file is damaged or unreadable")
	ErrTooManyPages    = errors.New("PDF has too many pages")
)

func init() {
	// pdfcpu otherwise creates a config directory under the user's home
	api.DisableConfigDir()
}

// PDFRules bounds what a resume upload may look like
type PDFRules struct {
	MaxBytes int64
	MaxPages int
}

// PDFValidationResult describes an accepted file
type PDFValidationResult struct {
	DetectedMIME string
	Pages        int
}

// ValidatePDFExtension is the cheap check done before reading the body
func ValidatePDFExtension(filename string) error {
	if filename == "" {
		return ErrNoFile
	}
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return ErrNotPDF
	}
	return nil
}

// ValidatePDF performs layered validation of a resume upload:
// 1. Extension must be .pdf
// 2. Size within rules.MaxBytes
// 3. %PDF magic bytes and sniffed MIME type application/pdf
// 4. pdfcpu can read the page tree; page count within rules.MaxPages
func ValidatePDF(filename string, data []byte, rules PDFRules) (*PDFValidationResult, error) {
	if err := ValidatePDFExtension(filename); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}
	if rules.MaxBytes > 0 && int64(len(data)) > rules.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes allowed", ErrFileTooLarge, rules.MaxBytes)
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, ErrContentMismatch
	}
	detected := mimetype.Detect(data)
	if !detected.Is("application/pdf") {
		return nil, ErrContentMismatch
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pages, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	if rules.MaxPages > 0 && pages > rules.MaxPages {
		return nil, fmt.Errorf("%w: %d pages allowed", ErrTooManyPages, rules.MaxPages)
	}

	return &PDFValidationResult{
		DetectedMIME: detected.String(),
		Pages:        pages,
	}, nil
}
