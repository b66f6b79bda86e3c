package passgen

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontSet loads the card fonts from disk, falling back to a builtin face
// when the TTFs are not installed so generation never hard-fails.
type FontSet struct {
	serif     *opentype.Font
	serifBold *opentype.Font
	sans      *opentype.Font
	sansBold  *opentype.Font
}

func LoadFonts(dir string) *FontSet {
	fs := &FontSet{
		serif:     parseFont(filepath.Join(dir, "luxury-serif.ttf")),
		serifBold: parseFont(filepath.Join(dir, "luxury-serif-bold.ttf")),
		sans:      parseFont(filepath.Join(dir, "elegant-sans.ttf")),
		sansBold:  parseFont(filepath.Join(dir, "elegant-sans-bold.ttf")),
	}
	if fs.serif == nil && fs.sans == nil {
		log.Printf("[PassGen] ⚠️ No card fonts found in %s, using builtin fallback", dir)
	}
	return fs
}

func parseFont(path string) *opentype.Font {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	fnt, err := opentype.Parse(raw)
	if err != nil {
		log.Printf("[PassGen] ⚠️ Failed to parse font %s: %v", path, err)
		return nil
	}
	return fnt
}

// Face returns a rendering face at the given size. Bold falls back to the
// regular weight, and both fall back to the builtin bitmap face.
func (f *FontSet) Face(size float64, bold, serif bool) font.Face {
	var fnt *opentype.Font
	if serif {
		fnt = f.serifBold
		if !bold || fnt == nil {
			if f.serif != nil {
				fnt = f.serif
			}
		}
	} else {
		fnt = f.sansBold
		if !bold || fnt == nil {
			if f.sans != nil {
				fnt = f.sans
			}
		}
	}
	if fnt == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
