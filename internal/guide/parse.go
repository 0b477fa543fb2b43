package guide

import (
	"strings"

	imagepkg "github.com/youruser/lumenpoem/internal/image"
)

var quoteStripper = strings.NewReplacer(`"`, "", "“", "", "”", "")

// CleanGuidance trims model output and removes quotation marks.
func CleanGuidance(raw string) string {
	return strings.TrimSpace(quoteStripper.Replace(strings.TrimSpace(raw)))
}

// ParseVisuals reads "COLOR:#hex|ELEMENTS:a,b". Output without a "|" keeps the
// defaults; a bad color or unknown element degrades through the card fallbacks.
func ParseVisuals(raw string) imagepkg.VisualParameters {
	content := strings.TrimSpace(raw)
	colorHex := imagepkg.FallbackColor.Hex()
	elements := []string{string(imagepkg.MotifAbstract)}

	if strings.Contains(content, "|") {
		for _, part := range strings.Split(content, "|") {
			if strings.Contains(part, "COLOR:") {
				colorHex = strings.TrimSpace(strings.ReplaceAll(part, "COLOR:", ""))
			}
			if strings.Contains(part, "ELEMENTS:") {
				elements = strings.Split(strings.TrimSpace(strings.ReplaceAll(part, "ELEMENTS:", "")), ",")
			}
		}
	}
	return imagepkg.NewVisualParameters(colorHex, elements)
}
