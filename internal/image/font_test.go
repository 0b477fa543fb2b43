package imagepkg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFontProvider_MissingFileFallsBack(t *testing.T) {
	p := NewFontProvider(filepath.Join(t.TempDir(), "font.ttf"), nil)
	if p.Name() != "goregular" {
		t.Errorf("Name() = %q, want goregular", p.Name())
	}
	if p.Face(28) == nil {
		t.Error("Face() returned nil")
	}
}

func TestNewFontProvider_GarbageFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p := NewFontProvider(path, nil); p.Name() != "goregular" {
		t.Errorf("Name() = %q, want goregular", p.Name())
	}
}

func TestTrueTypeProvider_HasGlyph(t *testing.T) {
	p := DefaultFontProvider()
	if !p.HasGlyph('A') {
		t.Error("HasGlyph('A') = false")
	}
	if p.HasGlyph('\U0010FFFD') {
		t.Error("HasGlyph(private use) = true")
	}
}

func TestTrueTypeProvider_FreshFaces(t *testing.T) {
	p := DefaultFontProvider()
	if p.Face(18) == p.Face(18) {
		t.Error("Face() returned a shared face")
	}
}
