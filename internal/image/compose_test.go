package imagepkg

import (
	"bytes"
	"image/png"
	"math/rand"
	"reflect"
	"testing"
)

func TestNewVisualParameters(t *testing.T) {
	tests := []struct {
		name   string
		color  string
		motifs []string
		want   VisualParameters
	}{
		{
			name:   "well formed",
			color:  "#123456",
			motifs: []string{"star", "moon"},
			want:   VisualParameters{AccentColor: RGB{R: 0x12, G: 0x34, B: 0x56}, Motifs: []Motif{MotifStar, MotifMoon}},
		},
		{
			name:   "malformed color and unknown motif",
			color:  "blue-ish",
			motifs: []string{" Snow", "bird"},
			want:   VisualParameters{AccentColor: FallbackColor, Motifs: []Motif{MotifSnow, MotifAbstract}},
		},
		{
			name:   "empty motifs",
			color:  "#000000",
			motifs: nil,
			want:   VisualParameters{AccentColor: RGB{}, Motifs: []Motif{MotifAbstract}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVisualParameters(tt.color, tt.motifs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewVisualParameters() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComposer_RenderScenario(t *testing.T) {
	c := NewComposer(DefaultCardConfig())
	lines := []string{"Light falls softly", "on the quiet page"}
	params := NewVisualParameters("#123456", []string{"star", "moon"})

	card, err := c.Render(lines, "I feel calm.", true, params)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if card.Width() != 700 || card.Height() != 450 {
		t.Fatalf("size = %dx%d, want 700x450", card.Width(), card.Height())
	}
	if got := len(card.Layout.TextOps(RolePoemLine)); got != 2 {
		t.Errorf("poem line ops = %d, want 2", got)
	}
	if got := len(card.Layout.TextOps(RoleReflectionLine)); got != 1 {
		t.Errorf("reflection line ops = %d, want 1", got)
	}

	b, err := card.EncodePNG()
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds() != card.Image.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), card.Image.Bounds())
	}
}

func TestComposer_EmptyPoem(t *testing.T) {
	c := NewComposer(DefaultCardConfig())

	card, err := c.Render(nil, "", false, VisualParameters{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if card.Height() != 330 {
		t.Errorf("height = %d, want 330", card.Height())
	}
}

func TestComposer_GeometryIsStable(t *testing.T) {
	c := NewComposer(DefaultCardConfig())
	lines := []string{"one", "two", "three", "four"}
	params := NewVisualParameters("#ff8800", []string{"flower"})

	a, err := c.Render(lines, "a reflection that is long enough to wrap onto a second line", true, params)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Render(lines, "a reflection that is long enough to wrap onto a second line", true, params)
	if err != nil {
		t.Fatal(err)
	}
	if a.Image.Bounds() != b.Image.Bounds() {
		t.Errorf("bounds differ: %v vs %v", a.Image.Bounds(), b.Image.Bounds())
	}
	if !reflect.DeepEqual(a.Layout, b.Layout) {
		t.Error("layouts differ for identical inputs")
	}
}

func TestComposer_SeedPinsPixels(t *testing.T) {
	c := NewComposer(DefaultCardConfig(), WithSeed(11))
	params := NewVisualParameters("#336699", []string{"snow", "moon", "abstract"})

	a, err := c.Render([]string{"frost on glass"}, "", false, params)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Render([]string{"frost on glass"}, "", false, params)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("seeded renders differ")
	}
}

func TestComposer_RandFactoryIsUsedPerRender(t *testing.T) {
	calls := 0
	c := NewComposer(DefaultCardConfig(), WithRandFactory(func() *rand.Rand {
		calls++
		return rand.New(rand.NewSource(int64(calls)))
	}))

	for i := 0; i < 2; i++ {
		if _, err := c.Render([]string{"x"}, "", false, DefaultVisualParameters()); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 2 {
		t.Errorf("rand factory calls = %d, want 2", calls)
	}
}

func TestComposer_DoesNotMutateInputs(t *testing.T) {
	c := NewComposer(DefaultCardConfig())
	lines := []string{"  keep  ", "these"}
	motifs := []Motif{"STAR", "unknown"}
	params := VisualParameters{AccentColor: FallbackColor, Motifs: motifs}

	if _, err := c.Render(lines, "r", true, params); err != nil {
		t.Fatal(err)
	}
	if lines[0] != "  keep  " || lines[1] != "these" {
		t.Errorf("lines mutated: %q", lines)
	}
	if motifs[0] != "STAR" || motifs[1] != "unknown" {
		t.Errorf("motifs mutated: %q", motifs)
	}
}

func TestComposer_InvalidSize(t *testing.T) {
	cfg := DefaultCardConfig()
	cfg.Width = 0
	if _, err := NewComposer(cfg).Render([]string{"x"}, "", false, DefaultVisualParameters()); err == nil {
		t.Error("Render() with zero width: want error")
	}
}

func TestComposer_LocaleChangesWrapOnly(t *testing.T) {
	reflection := "一二三四五六七八九十一二三四五六七八九十一二三四五六"
	en := NewComposer(DefaultCardConfig())
	zh := NewComposer(DefaultCardConfig().WithLocale(LocaleChinese))

	le := en.Layout([]string{"a"}, reflection, true, DefaultVisualParameters())
	lz := zh.Layout([]string{"a"}, reflection, true, DefaultVisualParameters())

	if got := len(le.TextOps(RoleReflectionLine)); got != 1 {
		t.Errorf("en chunks = %d, want 1", got)
	}
	if got := len(lz.TextOps(RoleReflectionLine)); got != 2 {
		t.Errorf("zh chunks = %d, want 2", got)
	}
	if lz.Height-le.Height != 40 {
		t.Errorf("height difference = %d, want 40", lz.Height-le.Height)
	}
}
