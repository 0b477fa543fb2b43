package imagepkg

import "strings"

// Locale holds the per-language card strings and the reflection wrap width.
type Locale struct {
	Tag              string
	Title            string
	ReflectionHeader string
	Footer           string
	CharsPerLine     int
}

var (
	LocaleEnglish = Locale{
		Tag:              "en",
		Title:            "LumenPoem",
		ReflectionHeader: "My Reflection:",
		Footer:           "Created with LumenPoem",
		CharsPerLine:     45,
	}
	LocaleChinese = Locale{
		Tag:              "zh",
		Title:            "LumenPoem",
		ReflectionHeader: "我的感悟：",
		Footer:           "由 LumenPoem 创作",
		CharsPerLine:     25,
	}
)

// LocaleFor maps a base language tag ("en", "zh-Hans", ...) to a card locale.
// Unknown tags get English.
func LocaleFor(tag string) Locale {
	base := strings.ToLower(tag)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	if base == LocaleChinese.Tag {
		return LocaleChinese
	}
	return LocaleEnglish
}

type WashConfig struct {
	Ellipses  int
	MinRadius int
	MaxRadius int
	MinAlpha  int
	MaxAlpha  int
	// Blur is the gaussian sigma applied to the ellipse layer.
	Blur float64
	// Downscale shrinks the layer before blurring; the result is scaled back up.
	Downscale int
}

type NoiseConfig struct {
	Points int
	Color  RGB
	Alpha  uint8
}

// CardConfig is the full geometry and theme of a poem card.
type CardConfig struct {
	Width int

	TitleHeight      int
	LineHeight       int
	MinPoemHeight    int
	ReflectionHeader int
	WrapLineHeight   int
	FooterMargin     int

	TitleX, TitleY float64
	BodyX          float64
	PoemTop        float64
	RuleX1, RuleX2 float64
	RuleGap        float64
	HeaderGap      float64
	FooterOffsetX  float64
	FooterOffsetY  float64

	TitleSize float64
	BodySize  float64
	SmallSize float64

	Paper           RGB
	TitleColor      RGB
	LineColor       RGB
	RuleColor       RGB
	ReflectionColor RGB
	FooterColor     RGB

	Wash  WashConfig
	Noise NoiseConfig

	MotifCount   int
	MotifMargin  int
	MotifMinSize int
	MotifMaxSize int

	Locale Locale
}

func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width: 700,

		TitleHeight:      100,
		LineHeight:       55,
		MinPoemHeight:    150,
		ReflectionHeader: 80,
		WrapLineHeight:   40,
		FooterMargin:     80,

		TitleX:        60,
		TitleY:        50,
		BodyX:         80,
		PoemTop:       150,
		RuleX1:        60,
		RuleX2:        640,
		RuleGap:       30,
		HeaderGap:     40,
		FooterOffsetX: 240,
		FooterOffsetY: 40,

		TitleSize: 48,
		BodySize:  28,
		SmallSize: 18,

		Paper:           RGB{R: 0xfd, G: 0xfd, B: 0xfd},
		TitleColor:      RGB{R: 0x33, G: 0x33, B: 0x33},
		LineColor:       RGB{R: 0x11, G: 0x11, B: 0x11},
		RuleColor:       RGB{R: 0x88, G: 0x88, B: 0x88},
		ReflectionColor: RGB{R: 0x44, G: 0x44, B: 0x44},
		FooterColor:     RGB{R: 0x88, G: 0x88, B: 0x88},

		Wash: WashConfig{
			Ellipses:  4,
			MinRadius: 200,
			MaxRadius: 500,
			MinAlpha:  20,
			MaxAlpha:  60,
			Blur:      100,
			Downscale: 4,
		},
		Noise: NoiseConfig{
			Points: 15000,
			Color:  RGB{R: 100, G: 100, B: 100},
			Alpha:  40,
		},

		MotifCount:   6,
		MotifMargin:  20,
		MotifMinSize: 20,
		MotifMaxSize: 40,

		Locale: LocaleEnglish,
	}
}

// WithLocale returns a copy of the config using the given locale.
func (c CardConfig) WithLocale(l Locale) CardConfig {
	c.Locale = l
	return c
}
