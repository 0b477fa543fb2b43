package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// VisualParameters are the analysis-derived accent color and motif set for one card.
type VisualParameters struct {
	AccentColor RGB
	Motifs      []Motif
}

// DefaultVisualParameters is what a failed or malformed analysis degrades to.
func DefaultVisualParameters() VisualParameters {
	return VisualParameters{AccentColor: FallbackColor, Motifs: []Motif{MotifAbstract}}
}

// NewVisualParameters builds parameters from raw analysis output, applying the
// color and motif fallbacks.
func NewVisualParameters(colorHex string, motifs []string) VisualParameters {
	p := VisualParameters{AccentColor: ParseHexColor(colorHex)}
	for _, m := range motifs {
		p.Motifs = append(p.Motifs, NormalizeMotif(m))
	}
	if len(p.Motifs) == 0 {
		p.Motifs = []Motif{MotifAbstract}
	}
	return p
}

// RenderedCard is a finished poem card.
type RenderedCard struct {
	Image  *image.NRGBA
	Layout Layout
}

func (c *RenderedCard) Width() int  { return c.Image.Bounds().Dx() }
func (c *RenderedCard) Height() int { return c.Image.Bounds().Dy() }

func (c *RenderedCard) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image)
}

// EncodePNG returns the card as PNG bytes.
func (c *RenderedCard) EncodePNG() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.WritePNG(buf); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// Composer renders poem cards with a fixed configuration. It holds no mutable
// state and may be shared between goroutines.
type Composer struct {
	cfg     CardConfig
	fonts   FontProvider
	newRand func() *rand.Rand
}

type Option func(*Composer)

func WithFontProvider(p FontProvider) Option {
	return func(c *Composer) {
		if p != nil {
			c.fonts = p
		}
	}
}

// WithSeed makes every render use the same random sequence, so identical
// inputs produce identical pixels.
func WithSeed(seed int64) Option {
	return func(c *Composer) {
		c.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
}

// WithRandFactory sets the per-render random source constructor.
func WithRandFactory(f func() *rand.Rand) Option {
	return func(c *Composer) {
		if f != nil {
			c.newRand = f
		}
	}
}

func NewComposer(cfg CardConfig, opts ...Option) *Composer {
	c := &Composer{
		cfg: cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(rand.Int63()))
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fonts == nil {
		c.fonts = DefaultFontProvider()
	}
	return c
}

func (c *Composer) Config() CardConfig {
	return c.cfg
}

// Layout computes the geometry Render would use, without drawing.
func (c *Composer) Layout(lines []string, reflection string, includeReflection bool, params VisualParameters) Layout {
	return BuildLayout(c.cfg, lines, reflection, includeReflection, params.AccentColor)
}

// Render composes a card. Inputs are not modified. The only error is a
// non-positive canvas size, which the minimum poem height rules out for sane
// configurations.
func (c *Composer) Render(lines []string, reflection string, includeReflection bool, params VisualParameters) (*RenderedCard, error) {
	layout := c.Layout(lines, reflection, includeReflection, params)
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("invalid card size %dx%d", layout.Width, layout.Height)
	}

	rnd := c.newRand()
	accent := params.AccentColor
	canvas := PaintBackground(layout.Width, layout.Height, accent, c.cfg, rnd)

	dc := gg.NewContextForImage(canvas)
	c.scatterMotifs(dc, layout, params, rnd)
	c.drawText(dc, layout)

	return &RenderedCard{Image: imaging.Clone(dc.Image()), Layout: layout}, nil
}

func (c *Composer) scatterMotifs(dc *gg.Context, layout Layout, params VisualParameters, rnd *rand.Rand) {
	motifs := params.Motifs
	if len(motifs) == 0 {
		motifs = []Motif{MotifAbstract}
	}
	margin := c.cfg.MotifMargin
	for i := 0; i < c.cfg.MotifCount; i++ {
		kind := motifs[rnd.Intn(len(motifs))]
		x := randInt(rnd, margin, layout.Width-margin)
		y := randInt(rnd, margin, layout.Height-margin)
		col := white
		if rnd.Float64() > 0.5 {
			col = params.AccentColor
		}
		size := randInt(rnd, c.cfg.MotifMinSize, c.cfg.MotifMaxSize)
		DrawMotif(dc, c.fonts, kind, float64(x), float64(y), float64(size), col.NRGBA(0xff))
	}
}

func (c *Composer) drawText(dc *gg.Context, layout Layout) {
	faces := map[FontTier]font.Face{
		TierTitle: c.fonts.Face(c.cfg.TitleSize),
		TierBody:  c.fonts.Face(c.cfg.BodySize),
		TierSmall: c.fonts.Face(c.cfg.SmallSize),
	}
	for _, op := range layout.Ops {
		dc.SetColor(op.Color.NRGBA(0xff))
		switch op.Kind {
		case OpRule:
			dc.SetLineWidth(1)
			dc.DrawLine(op.X, op.Y, op.X2, op.Y)
			dc.Stroke()
		case OpText:
			dc.SetFontFace(faces[op.Tier])
			dc.DrawStringAnchored(op.Text, op.X, op.Y, 0, 1)
		}
	}
}
