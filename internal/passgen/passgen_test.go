package passgen

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGenerator uses an empty font dir so rendering falls back to the
// built-in face and tests stay hermetic.
func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(t.TempDir(), t.TempDir())
}

func assertCardDimensions(t *testing.T, path string) {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, PassWidth, img.Bounds().Dx())
	assert.Equal(t, PassHeight, img.Bounds().Dy())
}

func TestCreateFront(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "front.png")

	err := g.CreateFront("Elena Vasquez", "INNER-CIRCLE-#014", "founding_member", out)
	require.NoError(t, err)
	assertCardDimensions(t, out)
}

func TestCreateBack(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "back.png")

	// No QR image at the given path; the card should still render.
	err := g.CreateBack("INNER-CIRCLE-#014", "The Inner Circle Gala", "December 12, 2026",
		"The Grand Meridian", "tok-a-very-long-token-value", filepath.Join(t.TempDir(), "missing.png"), out)
	require.NoError(t, err)
	assertCardDimensions(t, out)
}

func TestCreateBlurredPreview(t *testing.T) {
	g := newTestGenerator(t)
	dir := t.TempDir()
	front := filepath.Join(dir, "front.png")
	blurred := filepath.Join(dir, "front_blurred.png")

	require.NoError(t, g.CreateFront("James Okafor", "INNER-CIRCLE-#042", "inner_circle", front))
	require.NoError(t, g.CreateBlurredPreview(front, blurred))
	assertCardDimensions(t, blurred)

	// The preview must destroy legible text: after the blur the mean edge
	// gradient collapses compared to the sharp card, watermark included.
	srcImg, err := imaging.Open(front)
	require.NoError(t, err)
	blurImg, err := imaging.Open(blurred)
	require.NoError(t, err)

	srcGrad := meanEdgeGradient(srcImg)
	blurGrad := meanEdgeGradient(blurImg)
	assert.Greater(t, srcGrad, 0.0)
	assert.Less(t, blurGrad, srcGrad*0.5)
}

// meanEdgeGradient averages the absolute horizontal luminance difference of
// neighboring pixels, a rough sharpness measure.
func meanEdgeGradient(img image.Image) float64 {
	bounds := img.Bounds()
	var sum float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		prev := luminance(img.At(bounds.Min.X, y))
		for x := bounds.Min.X + 1; x < bounds.Max.X; x++ {
			cur := luminance(img.At(x, y))
			sum += math.Abs(cur - prev)
			prev = cur
			count++
		}
	}
	return sum / float64(count)
}

func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func TestCreateBlurredPreviewMissingSource(t *testing.T) {
	g := newTestGenerator(t)

	err := g.CreateBlurredPreview(filepath.Join(t.TempDir(), "nope.png"), filepath.Join(t.TempDir(), "out.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open pass image")
}

func TestSaveAssets(t *testing.T) {
	staticDir := t.TempDir()
	g := NewGenerator(staticDir, t.TempDir())

	assets, err := g.SaveAssets("Sofia Lindqvist", "INNER-CIRCLE-#077", "vip",
		"The Inner Circle Gala", "December 12, 2026", "The Grand Meridian",
		"tok-77", filepath.Join(staticDir, "qr_codes", "missing.png"))
	require.NoError(t, err)

	for _, path := range []string{assets.FrontPath, assets.BackPath, assets.BlurredFrontPath, assets.BlurredBackPath} {
		assert.FileExists(t, path)
	}
	assert.Equal(t, "/static/legacy_passes/INNER-CIRCLE-077_front.png", assets.FrontURL)
	assert.Equal(t, "/static/legacy_passes/INNER-CIRCLE-077_back_blurred.png", assets.BlurredBackURL)
}

func TestSanitizePassNumber(t *testing.T) {
	assert.Equal(t, "INNER-CIRCLE-001", SanitizePassNumber("INNER-CIRCLE-#001"))
	assert.Equal(t, "a-b-c", SanitizePassNumber(`a/b\c`))
}
