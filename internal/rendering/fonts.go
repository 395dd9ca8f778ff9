package rendering

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"
)

// fontSans is the family name the embedded DejaVu Sans Condensed faces are
// registered under. Every layout draws its PDF text with it.
const fontSans = "DejaVu"

//go:embed fonts/DejaVuSansCondensed.ttf
var sansRegular []byte

//go:embed fonts/DejaVuSansCondensed-Bold.ttf
var sansBold []byte

//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
var sansOblique []byte

type face struct {
	style string
	data  []byte
}

var faces = []face{
	{style: "", data: sansRegular},
	{style: "B", data: sansBold},
	{style: "I", data: sansOblique},
}

// registerFonts adds the embedded faces to f as UTF-8 fonts.
func registerFonts(f *fpdf.Fpdf) {
	for _, fc := range faces {
		f.AddUTF8FontFromBytes(fontSans, fc.style, fc.data)
	}
}

var parsedFaces = sync.OnceValues(func() ([]*sfnt.Font, error) {
	out := make([]*sfnt.Font, 0, len(faces))
	for _, fc := range faces {
		font, err := sfnt.Parse(fc.data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded font %q: %w", fc.style, err)
		}
		out = append(out, font)
	}
	return out, nil
})

// checkGlyphs reports the first character in texts that one of the embedded
// faces cannot draw. Whitespace and control characters are not drawn and are
// skipped. The PDF writer keeps glyph widths for the Basic Multilingual Plane
// only, so runes above it are rejected as well.
func checkGlyphs(texts []string) error {
	fonts, err := parsedFaces()
	if err != nil {
		return err
	}
	var buf sfnt.Buffer
	seen := make(map[rune]bool)
	for _, text := range texts {
		for _, r := range text {
			if seen[r] || unicode.IsSpace(r) || unicode.IsControl(r) {
				continue
			}
			seen[r] = true
			if r > 0xFFFF || r == unicode.ReplacementChar {
				return &UnsupportedCharError{Char: r, Text: text}
			}
			for _, font := range fonts {
				idx, err := font.GlyphIndex(&buf, r)
				if err != nil {
					return fmt.Errorf("glyph lookup for %U: %w", r, err)
				}
				if idx == 0 {
					return &UnsupportedCharError{Char: r, Text: text}
				}
			}
		}
	}
	return nil
}
