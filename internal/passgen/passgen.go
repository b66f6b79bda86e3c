// Package passgen composes the legacy pass card images: front, back, and
// the blurred pre-payment previews.
package passgen

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Credit card ratio (3.370" x 2.125"), scaled up.
const (
	PassWidth  = 1200
	PassHeight = 757

	borderWidth = 8
	blurSigma   = 25
)

var (
	colorBlack     = color.RGBA{0x0A, 0x0A, 0x0A, 0xFF}
	colorGold      = color.RGBA{0xD4, 0xAF, 0x37, 0xFF}
	colorChampagne = color.RGBA{0xF7, 0xE7, 0xCE, 0xFF}
	colorOffWhite  = color.RGBA{0xF5, 0xF5, 0xF5, 0xFF}
	colorDarkGold  = color.RGBA{0x8B, 0x73, 0x28, 0xFF}
)

type Generator struct {
	fonts     *FontSet
	staticDir string
}

func NewGenerator(staticDir, fontDir string) *Generator {
	return &Generator{
		fonts:     LoadFonts(fontDir),
		staticDir: staticDir,
	}
}

// newCard returns a black canvas with the gold border and diagonal texture
// shared by both card faces.
func (g *Generator) newCard() *gg.Context {
	dc := gg.NewContext(PassWidth, PassHeight)
	dc.SetColor(colorBlack)
	dc.Clear()

	// Diagonal texture lines
	dc.SetColor(colorDarkGold)
	dc.SetLineWidth(1)
	for i := 0; i < PassWidth+PassHeight; i += 40 {
		dc.DrawLine(float64(i), 0, float64(i-PassHeight), PassHeight)
		dc.Stroke()
	}

	// Gold border
	dc.SetColor(colorGold)
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(borderWidth, borderWidth, PassWidth-2*borderWidth, PassHeight-2*borderWidth)
	dc.Stroke()

	return dc
}

func (g *Generator) drawCentered(dc *gg.Context, text string, y float64, size float64, bold, serif bool, c color.Color) {
	dc.SetFontFace(g.fonts.Face(size, bold, serif))
	dc.SetColor(c)
	dc.DrawStringAnchored(text, PassWidth/2, y, 0.5, 1)
}

// CreateFront renders the front face of a pass.
func (g *Generator) CreateFront(memberName, passNumber, membershipTier, outputPath string) error {
	dc := g.newCard()

	g.drawCentered(dc, "PAIGE'S INNER CIRCLE", 128, 48, true, true, colorGold)
	g.drawCentered(dc, "Legacy Pass", 178, 28, false, true, colorChampagne)
	g.drawCentered(dc, strings.ToUpper(memberName), 372, 52, true, false, colorOffWhite)
	g.drawCentered(dc, passNumber, 424, 24, false, false, colorChampagne)

	tierLabel := fmt.Sprintf("∴ %s ∴", strings.ToUpper(strings.ReplaceAll(membershipTier, "_", " ")))
	g.drawCentered(dc, tierLabel, 540, 20, true, false, colorGold)

	if strings.Contains(strings.ToLower(membershipTier), "founding") {
		g.drawCentered(dc, "Founding Member", 588, 18, false, true, colorChampagne)
	}

	// Signature block, bottom left
	dc.SetColor(colorGold)
	dc.SetLineWidth(2)
	dc.DrawLine(90, 645, 320, 645)
	dc.Stroke()
	dc.SetFontFace(g.fonts.Face(22, false, true))
	dc.DrawString("Paige", 100, 672)

	return savePNG(dc, outputPath)
}

// CreateBack renders the back face: QR code, scan prompt and event details.
func (g *Generator) CreateBack(passNumber, eventName, eventDate, venueName, token, qrCodePath, outputPath string) error {
	dc := g.newCard()

	// QR code, centered in the top portion. A missing QR image is skipped
	// rather than failing the whole card.
	if qrImg, err := imaging.Open(qrCodePath); err == nil {
		const qrSize = 280
		resized := imaging.Resize(qrImg, qrSize, qrSize, imaging.Lanczos)
		dc.DrawImage(resized, (PassWidth-qrSize)/2, 60)
	}

	g.drawCentered(dc, "SCAN FOR ENTRY", 384, 24, true, false, colorGold)

	detailsY := 430.0
	label := func(text string, y float64) {
		dc.SetFontFace(g.fonts.Face(20, true, false))
		dc.SetColor(colorGold)
		dc.DrawString(text, 100, y)
	}
	value := func(text string, y float64) {
		dc.SetFontFace(g.fonts.Face(20, false, false))
		dc.SetColor(colorOffWhite)
		dc.DrawString(text, 100, y)
	}
	label("EVENT:", detailsY+20)
	value(eventName, detailsY+50)
	label("DATE:", detailsY+100)
	value(eventDate, detailsY+130)
	label("VENUE:", detailsY+180)
	value(venueName, detailsY+210)

	// Pass number and truncated token, bottom right
	shortToken := token
	if len(shortToken) > 16 {
		shortToken = shortToken[:16] + "..."
	}
	dc.SetFontFace(g.fonts.Face(12, false, false))
	dc.SetColor(colorChampagne)
	dc.DrawString("Pass: "+passNumber, PassWidth-350, PassHeight-40)
	dc.DrawString("Token: "+shortToken, PassWidth-350, PassHeight-20)

	g.drawCentered(dc, "NOT TRANSFERABLE", PassHeight-22, 14, true, false, colorGold)

	return savePNG(dc, outputPath)
}

// CreateBlurredPreview blurs a rendered card, darkens it and stamps the
// payment watermark across the middle.
func (g *Generator) CreateBlurredPreview(originalPath, outputPath string) error {
	img, err := imaging.Open(originalPath)
	if err != nil {
		return fmt.Errorf("open pass image: %w", err)
	}

	blurred := imaging.Blur(img, blurSigma)

	// 50% black overlay
	bounds := blurred.Bounds()
	shade := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{0, 0, 0, 255})
	dimmed := imaging.Overlay(blurred, shade, image.Pt(0, 0), 0.5)

	dc := gg.NewContextForImage(dimmed)
	dc.SetFontFace(g.fonts.Face(60, true, false))
	const watermark = "PAYMENT REQUIRED"
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2

	// Outline pass for legibility over the blur
	dc.SetColor(colorBlack)
	for dx := -3; dx <= 3; dx++ {
		for dy := -3; dy <= 3; dy++ {
			dc.DrawStringAnchored(watermark, cx+float64(dx), cy+float64(dy), 0.5, 0.5)
		}
	}
	dc.SetColor(colorGold)
	dc.DrawStringAnchored(watermark, cx, cy, 0.5, 0.5)

	return savePNG(dc, outputPath)
}

// Assets holds every image path produced for one pass.
type Assets struct {
	FrontPath        string
	BackPath         string
	BlurredFrontPath string
	BlurredBackPath  string
	FrontURL         string
	BackURL          string
	BlurredFrontURL  string
	BlurredBackURL   string
}

// SaveAssets renders the full image set for a pass under
// staticDir/legacy_passes.
func (g *Generator) SaveAssets(memberName, passNumber, membershipTier, eventName, eventDate, venueName, token, qrCodePath string) (*Assets, error) {
	dir := filepath.Join(g.staticDir, "legacy_passes")
	safe := SanitizePassNumber(passNumber)

	a := &Assets{
		FrontPath:        filepath.Join(dir, safe+"_front.png"),
		BackPath:         filepath.Join(dir, safe+"_back.png"),
		BlurredFrontPath: filepath.Join(dir, safe+"_front_blurred.png"),
		BlurredBackPath:  filepath.Join(dir, safe+"_back_blurred.png"),
		FrontURL:         "/static/legacy_passes/" + safe + "_front.png",
		BackURL:          "/static/legacy_passes/" + safe + "_back.png",
		BlurredFrontURL:  "/static/legacy_passes/" + safe + "_front_blurred.png",
		BlurredBackURL:   "/static/legacy_passes/" + safe + "_back_blurred.png",
	}

	if err := g.CreateFront(memberName, passNumber, membershipTier, a.FrontPath); err != nil {
		return nil, fmt.Errorf("render front: %w", err)
	}
	if err := g.CreateBack(passNumber, eventName, eventDate, venueName, token, qrCodePath, a.BackPath); err != nil {
		return nil, fmt.Errorf("render back: %w", err)
	}
	if err := g.CreateBlurredPreview(a.FrontPath, a.BlurredFrontPath); err != nil {
		return nil, fmt.Errorf("render blurred front: %w", err)
	}
	if err := g.CreateBlurredPreview(a.BackPath, a.BlurredBackPath); err != nil {
		return nil, fmt.Errorf("render blurred back: %w", err)
	}
	return a, nil
}

// SanitizePassNumber strips characters that do not belong in filenames.
func SanitizePassNumber(passNumber string) string {
	s := strings.ReplaceAll(passNumber, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, "#", "")
	return s
}

func savePNG(dc *gg.Context, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return dc.SavePNG(outputPath)
}
