package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// glyphlessFonts forces the vector fallbacks.
type glyphlessFonts struct {
	FontProvider
}

func (glyphlessFonts) HasGlyph(rune) bool { return false }

// countingFonts records face requests.
type countingFonts struct {
	FontProvider
	sizes []float64
}

func (c *countingFonts) Face(size float64) font.Face {
	c.sizes = append(c.sizes, size)
	return c.FontProvider.Face(size)
}

func (c *countingFonts) HasGlyph(rune) bool { return true }

func renderMotif(fonts FontProvider, kind Motif) []byte {
	dc := gg.NewContext(120, 120)
	DrawMotif(dc, fonts, kind, 40, 40, 30, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	return dc.Image().(*image.RGBA).Pix
}

func inked(pix []byte) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestNormalizeMotif(t *testing.T) {
	tests := map[string]Motif{
		"snow":      MotifSnow,
		" Star ":    MotifStar,
		"MOON":      MotifMoon,
		"flower\n":  MotifFlower,
		"abstract":  MotifAbstract,
		"sun":       MotifAbstract,
		"leaf":      MotifAbstract,
		"":          MotifAbstract,
		"starlight": MotifAbstract,
	}
	for in, want := range tests {
		if got := NormalizeMotif(in); got != want {
			t.Errorf("NormalizeMotif(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDrawMotif_UnknownMatchesAbstract(t *testing.T) {
	fonts := DefaultFontProvider()
	want := renderMotif(fonts, MotifAbstract)
	if inked(want) == 0 {
		t.Fatal("abstract motif drew nothing")
	}

	for _, kind := range []Motif{"sun", "bird", "", "???", "  cloud "} {
		t.Run(string(kind), func(t *testing.T) {
			if got := renderMotif(fonts, kind); !bytes.Equal(got, want) {
				t.Errorf("motif %q differs from abstract", kind)
			}
		})
	}
}

func TestDrawMotif_AllKindsDraw(t *testing.T) {
	fonts := glyphlessFonts{DefaultFontProvider()}
	abstract := renderMotif(fonts, MotifAbstract)

	for _, kind := range []Motif{MotifSnow, MotifStar, MotifMoon, MotifFlower} {
		t.Run(string(kind), func(t *testing.T) {
			pix := renderMotif(fonts, kind)
			if inked(pix) == 0 {
				t.Fatalf("motif %q drew nothing", kind)
			}
			if bytes.Equal(pix, abstract) {
				t.Errorf("motif %q drew the abstract shape", kind)
			}
		})
	}
}

func TestDrawMotif_GlyphUsesPaddedFace(t *testing.T) {
	fonts := &countingFonts{FontProvider: DefaultFontProvider()}
	renderMotif(fonts, MotifStar)
	renderMotif(fonts, MotifFlower)

	if len(fonts.sizes) != 2 || fonts.sizes[0] != 40 || fonts.sizes[1] != 40 {
		t.Errorf("face sizes = %v, want [40 40]", fonts.sizes)
	}
}

func TestDrawMotif_NilFontsFallsBackToVector(t *testing.T) {
	if inked(renderMotif(nil, MotifStar)) == 0 {
		t.Error("star without fonts drew nothing")
	}
}
