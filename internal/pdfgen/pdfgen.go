// Package pdfgen builds the downloadable two-page PDF version of a pass
// and the wallet pass payload.
package pdfgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	// Letter page in points.
	pageWidth  = 612.0
	pageHeight = 792.0
	inch       = 72.0

	// Card images are placed 6 inches wide at their native aspect ratio.
	imageWidth  = 6 * inch
	imageHeight = imageWidth * (757.0 / 1200.0)
)

// CreatePassPDF writes a two-page PDF (front, back) to outputPath. A card
// image that cannot be read degrades to a placeholder line instead of
// failing the document.
func CreatePassPDF(frontImagePath, backImagePath, outputPath, memberName, passNumber string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create pdf dir: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	title := passNumber
	if title == "" {
		title = "Inner Circle"
	}
	subject := memberName
	if subject == "" {
		subject = "VIP Member"
	}
	pdf.SetTitle("Legacy Pass - "+title, true)
	pdf.SetAuthor("Paige's Inner Circle", true)
	pdf.SetSubject("Legacy Pass for "+subject, true)

	// Page 1: front
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(inch, inch, "Paige's Inner Circle - Legacy Pass")
	placeImage(pdf, frontImagePath, "Front")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(inch, pageHeight-inch, "Present this pass at the event entrance for verification.")

	// Page 2: back
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(inch, inch, "Legacy Pass - Back")
	placeImage(pdf, backImagePath, "Back")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(inch, pageHeight-1.5*inch, "Scan the QR code at the event for quick entry.")
	pdf.Text(inch, pageHeight-inch, "This pass is non-transferable and valid only for the registered member.")

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func placeImage(pdf *gofpdf.Fpdf, imagePath, side string) {
	if _, err := os.Stat(imagePath); err != nil {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(inch, 3*inch, fmt.Sprintf("[%s image unavailable]", side))
		return
	}
	x := (pageWidth - imageWidth) / 2
	y := 2.5 * inch
	pdf.ImageOptions(imagePath, x, y, imageWidth, imageHeight, false,
		gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}, 0, "")
}

// GeneratePassPDF renders the PDF under staticDir/legacy_passes/pdf and
// returns its path.
func GeneratePassPDF(staticDir, frontPath, backPath, passNumber, memberName string) (string, error) {
	safe := strings.NewReplacer("/", "-", "\\", "-", "#", "").Replace(passNumber)
	outputPath := filepath.Join(staticDir, "legacy_passes", "pdf", safe+".pdf")
	if err := CreatePassPDF(frontPath, backPath, outputPath, memberName, passNumber); err != nil {
		return "", err
	}
	return outputPath, nil
}

// WalletPassData is the Apple/Google wallet payload for a pass. Building
// the signed .pkpass bundle is left to the wallet pipeline.
func WalletPassData(passNumber, memberName, eventName, eventDate, venue, qrData string) map[string]any {
	return map[string]any{
		"formatVersion":      1,
		"passTypeIdentifier": "pass.com.paigeinnercircle.legacy",
		"serialNumber":       passNumber,
		"teamIdentifier":     "PAIGE",
		"organizationName":   "Paige's Inner Circle",
		"description":        "Legacy Pass for " + memberName,
		"logoText":           "Paige's Inner Circle",
		"foregroundColor":    "rgb(245, 245, 245)",
		"backgroundColor":    "rgb(10, 10, 10)",
		"labelColor":         "rgb(212, 175, 55)",
		"eventTicket": map[string]any{
			"primaryFields": []map[string]string{
				{"key": "member", "label": "MEMBER", "value": memberName},
			},
			"secondaryFields": []map[string]string{
				{"key": "event", "label": "EVENT", "value": eventName},
			},
			"auxiliaryFields": []map[string]string{
				{"key": "date", "label": "DATE", "value": eventDate},
				{"key": "venue", "label": "VENUE", "value": venue},
			},
			"backFields": []map[string]string{
				{"key": "passNumber", "label": "PASS NUMBER", "value": passNumber},
				{"key": "terms", "label": "TERMS", "value": "This pass is non-transferable and valid only for the registered member."},
			},
		},
		"barcode": map[string]string{
			"message":         qrData,
			"format":          "PKBarcodeFormatQR",
			"messageEncoding": "iso-8859-1",
		},
	}
}
