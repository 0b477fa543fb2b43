package imagepkg

import (
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Motif identifies a decorative mark scattered over the card.
type Motif string

const (
	MotifSnow     Motif = "snow"
	MotifStar     Motif = "star"
	MotifMoon     Motif = "moon"
	MotifFlower   Motif = "flower"
	MotifAbstract Motif = "abstract"
)

const (
	starGlyph   = '✦'
	flowerGlyph = '❀'
	// glyph motifs are set a little larger than the nominal size
	glyphPad = 10
)

// NormalizeMotif trims and lower-cases s. Unknown identifiers become MotifAbstract.
func NormalizeMotif(s string) Motif {
	m := Motif(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MotifSnow, MotifStar, MotifMoon, MotifFlower:
		return m
	}
	return MotifAbstract
}

// DrawMotif draws one motif anchored at (x, y).
func DrawMotif(dc *gg.Context, fonts FontProvider, kind Motif, x, y, size float64, c color.Color) {
	dc.SetColor(c)
	switch NormalizeMotif(string(kind)) {
	case MotifSnow:
		dc.SetLineWidth(2)
		dc.DrawLine(x-size, y, x+size, y)
		dc.Stroke()
		dc.DrawLine(x, y-size, x, y+size)
		dc.Stroke()
	case MotifStar:
		if !drawGlyph(dc, fonts, starGlyph, x, y, size+glyphPad) {
			drawStar(dc, x, y, size+glyphPad)
		}
	case MotifMoon:
		r := size / 2
		dc.DrawEllipticalArc(x+r, y+r, r, r, gg.Radians(30), gg.Radians(330))
		dc.ClosePath()
		dc.Fill()
	case MotifFlower:
		if !drawGlyph(dc, fonts, flowerGlyph, x, y, size+glyphPad) {
			drawFlower(dc, x, y, size+glyphPad)
		}
	default:
		r := size / 4
		dc.DrawCircle(x+r, y+r, r)
		dc.Fill()
	}
}

func drawGlyph(dc *gg.Context, fonts FontProvider, r rune, x, y, size float64) bool {
	if fonts == nil || !fonts.HasGlyph(r) {
		return false
	}
	dc.SetFontFace(fonts.Face(size))
	dc.DrawStringAnchored(string(r), x, y, 0, 1)
	return true
}

// drawStar is the vector stand-in for the four-pointed star glyph, filling the
// size x size box whose top-left corner is (x, y).
func drawStar(dc *gg.Context, x, y, size float64) {
	cx, cy := x+size/2, y+size/2
	outer := size / 2
	inner := outer * 0.28
	for i := 0; i < 8; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/4 - math.Pi/2
		px, py := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.Fill()
}

// drawFlower is the vector stand-in for the flower glyph: five round petals.
func drawFlower(dc *gg.Context, x, y, size float64) {
	cx, cy := x+size/2, y+size/2
	petal := size / 5
	ring := size/2 - petal
	for i := 0; i < 5; i++ {
		a := float64(i)*2*math.Pi/5 - math.Pi/2
		dc.DrawCircle(cx+ring*math.Cos(a), cy+ring*math.Sin(a), petal)
		dc.Fill()
	}
}
