// Package qrcode renders the pass QR codes in the club's gold-on-black
// styling and defines the payload embedded in them.
package qrcode

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	qr "github.com/skip2/go-qrcode"
)

const (
	// PassDataType tags every pass payload; scanners reject anything else.
	PassDataType    = "paige_inner_circle_pass"
	PassDataVersion = "1.0"

	boxSize = 10 // pixels per module
)

var (
	// Gold on near-black, matching the printed cards.
	Foreground = color.RGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF}
	Background = color.RGBA{R: 0x0A, G: 0x0A, B: 0x0A, A: 0xFF}
)

// PassData is the JSON payload encoded into each pass QR code.
type PassData struct {
	PassNumber string `json:"pass_number"`
	Member     string `json:"member"`
	EventID    string `json:"event_id"`
	Token      string `json:"token"`
	Type       string `json:"type"`
	Version    string `json:"version"`
	EventDate  string `json:"event_date,omitempty"`
}

// EncodePassData builds the compact JSON payload for a pass QR code.
func EncodePassData(passNumber, memberName, eventID, token, eventDate string) (string, error) {
	data := PassData{
		PassNumber: passNumber,
		Member:     memberName,
		EventID:    eventID,
		Token:      token,
		Type:       PassDataType,
		Version:    PassDataVersion,
		EventDate:  eventDate,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodePassData parses a scanned payload back into PassData.
func DecodePassData(raw string) (*PassData, error) {
	data := &PassData{}
	if err := json.Unmarshal([]byte(raw), data); err != nil {
		return nil, fmt.Errorf("invalid QR data format: %w", err)
	}
	return data, nil
}

// Validate checks that a decoded payload carries every required field and
// the expected type tag.
func (d *PassData) Validate() error {
	switch {
	case d.PassNumber == "":
		return errors.New("missing pass_number")
	case d.Member == "":
		return errors.New("missing member")
	case d.EventID == "":
		return errors.New("missing event_id")
	case d.Token == "":
		return errors.New("missing token")
	case d.Type != PassDataType:
		return fmt.Errorf("unexpected payload type %q", d.Type)
	}
	return nil
}

// Style selects how modules are drawn.
type Style int

const (
	StylePlain  Style = iota // square modules
	StyleLuxury              // rounded modules
)

// Generate renders data as a QR code PNG at outputPath, creating parent
// directories as needed. High error correction keeps codes scannable on
// textured card stock.
func Generate(data, outputPath string, style Style) error {
	code, err := qr.New(data, qr.Highest)
	if err != nil {
		return fmt.Errorf("encode QR data: %w", err)
	}
	code.ForegroundColor = Foreground
	code.BackgroundColor = Background

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create QR output dir: %w", err)
	}

	if style == StylePlain {
		size := len(code.Bitmap()) * boxSize
		return code.WriteFile(size, outputPath)
	}
	return renderLuxury(code, outputPath)
}

// renderLuxury draws each module as a rounded gold square on black. The
// bitmap already includes the quiet zone border.
func renderLuxury(code *qr.QRCode, outputPath string) error {
	bitmap := code.Bitmap()
	size := len(bitmap) * boxSize

	dc := gg.NewContext(size, size)
	dc.SetColor(Background)
	dc.Clear()

	dc.SetColor(Foreground)
	radius := float64(boxSize) * 0.35
	for y, row := range bitmap {
		for x, set := range row {
			if !set {
				continue
			}
			dc.DrawRoundedRectangle(float64(x*boxSize), float64(y*boxSize),
				float64(boxSize), float64(boxSize), radius)
			dc.Fill()
		}
	}
	return dc.SavePNG(outputPath)
}

// Result carries the payload and where SaveQRCode wrote the image.
type Result struct {
	Data      string
	ImagePath string
	ImageURL  string
}

// SaveQRCode encodes the pass payload and writes the styled QR image under
// staticDir/qr_codes.
func SaveQRCode(staticDir, passNumber, memberName, eventID, token, eventDate string) (*Result, error) {
	data, err := EncodePassData(passNumber, memberName, eventID, token, eventDate)
	if err != nil {
		return nil, err
	}

	filename := sanitizeFilename(passNumber) + ".png"
	outputPath := filepath.Join(staticDir, "qr_codes", filename)
	if err := Generate(data, outputPath, StyleLuxury); err != nil {
		return nil, err
	}

	return &Result{
		Data:      data,
		ImagePath: outputPath,
		ImageURL:  "/static/qr_codes/" + filename,
	}, nil
}

// VerificationQR writes a simpler QR carrying just the verification URL,
// used by door staff scanners.
func VerificationQR(staticDir, token, verificationURL string) (string, error) {
	outputPath := filepath.Join(staticDir, "qr_codes", "verification", token+".png")
	if err := Generate(verificationURL, outputPath, StyleLuxury); err != nil {
		return "", err
	}
	return outputPath, nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}
