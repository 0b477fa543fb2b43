package imagepkg

import (
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// PaintBackground returns a new width x height canvas: a flat paper fill, a blurred
// ink wash of translucent accent ellipses, then a fine noise stipple.
func PaintBackground(width, height int, accent RGB, cfg CardConfig, rnd *rand.Rand) *image.NRGBA {
	canvas := imaging.New(width, height, cfg.Paper.NRGBA(0xff))

	wash := paintWash(width, height, accent, cfg.Wash, rnd)
	canvas = imaging.Overlay(canvas, wash, image.Pt(0, 0), 1.0)

	noise := paintNoise(width, height, cfg.Noise, rnd)
	canvas = imaging.Overlay(canvas, noise, image.Pt(0, 0), 1.0)

	return canvas
}

func paintWash(width, height int, accent RGB, cfg WashConfig, rnd *rand.Rand) *image.NRGBA {
	dc := gg.NewContext(width, height)
	for i := 0; i < cfg.Ellipses; i++ {
		x := randInt(rnd, 0, width)
		y := randInt(rnd, 0, height)
		radius := randInt(rnd, cfg.MinRadius, cfg.MaxRadius)
		alpha := randInt(rnd, cfg.MinAlpha, cfg.MaxAlpha)

		dc.SetRGBA255(int(accent.R), int(accent.G), int(accent.B), alpha)
		dc.DrawEllipse(float64(x), float64(y), float64(radius), float64(radius))
		dc.Fill()
	}
	return blurLayer(imaging.Clone(dc.Image()), cfg.Blur, cfg.Downscale)
}

// blurLayer blurs at a reduced resolution and scales back; a sigma of ~100px at
// full size would otherwise dominate render time.
func blurLayer(layer *image.NRGBA, sigma float64, downscale int) *image.NRGBA {
	if sigma <= 0 {
		return layer
	}
	if downscale <= 1 {
		return imaging.Blur(layer, sigma)
	}
	b := layer.Bounds()
	w := max(1, b.Dx()/downscale)
	h := max(1, b.Dy()/downscale)

	small := imaging.Resize(layer, w, h, imaging.Linear)
	small = imaging.Blur(small, sigma/float64(downscale))
	return imaging.Resize(small, b.Dx(), b.Dy(), imaging.Linear)
}

func paintNoise(width, height int, cfg NoiseConfig, rnd *rand.Rand) *image.NRGBA {
	layer := image.NewNRGBA(image.Rect(0, 0, width, height))
	c := cfg.Color.NRGBA(cfg.Alpha)
	for i := 0; i < cfg.Points; i++ {
		layer.SetNRGBA(rnd.Intn(width), rnd.Intn(height), c)
	}
	return layer
}

// randInt returns a value in [lo, hi], both inclusive.
func randInt(rnd *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}
