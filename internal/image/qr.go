package imagepkg

import (
	"bytes"
	"fmt"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinQRSize     = 128
	MaxQRSize     = 1024
	DefaultQRSize = 400

	// above this many bytes the share code drops to low error correction to fit
	qrLowRecoveryThreshold = 1200
)

// GenerateQRPNG returns PNG bytes of a QR code carrying text, typically the
// plain-text export of a poem. size is clamped to [MinQRSize, MaxQRSize].
func GenerateQRPNG(text string, size int) ([]byte, error) {
	size = min(max(size, MinQRSize), MaxQRSize)

	level := qrcode.Medium
	if len(text) > qrLowRecoveryThreshold {
		level = qrcode.Low
	}
	pngBytes, err := qrcode.Encode(text, level, size)
	if err != nil {
		return nil, fmt.Errorf("encode share code: %w", err)
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, fmt.Errorf("decode share code: %w", err)
	}
	return pngBytes, nil
}
