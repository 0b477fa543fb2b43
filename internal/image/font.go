package imagepkg

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontPath is the conventional location of a custom card font.
const DefaultFontPath = "font.ttf"

// FontProvider resolves a glyph source for a requested point size.
//
// Faces returned by Face are not safe for concurrent use; callers ask for a
// fresh face per render.
type FontProvider interface {
	Face(size float64) font.Face
	HasGlyph(r rune) bool
}

// TrueTypeProvider serves faces from one parsed TrueType font. The parsed font
// is read-only and shared.
type TrueTypeProvider struct {
	font *truetype.Font
	name string
}

// NewFontProvider loads the font at path. A missing or unparsable file falls
// back to the embedded Go Regular font.
func NewFontProvider(path string, log *slog.Logger) *TrueTypeProvider {
	if log == nil {
		log = slog.Default()
	}
	if path != "" {
		f, err := loadFontFile(path)
		if err == nil {
			return &TrueTypeProvider{font: f, name: path}
		}
		log.Warn("custom font unavailable, using default", "path", path, "err", err)
	}
	return DefaultFontProvider()
}

// DefaultFontProvider serves the embedded Go Regular font.
func DefaultFontProvider() *TrueTypeProvider {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Errorf("parse embedded font: %w", err))
	}
	return &TrueTypeProvider{font: f, name: "goregular"}
}

func loadFontFile(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func (p *TrueTypeProvider) Face(size float64) font.Face {
	return truetype.NewFace(p.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// HasGlyph reports whether the font maps r to a real glyph rather than .notdef.
func (p *TrueTypeProvider) HasGlyph(r rune) bool {
	return p.font.Index(r) != 0
}

func (p *TrueTypeProvider) Name() string {
	return p.name
}
