package guide

import (
	"context"
	"errors"
	"log/slog"

	imagepkg "github.com/youruser/lumenpoem/internal/image"
)

// Guide produces writing prompts and card visuals. Model failures never reach
// the caller: they become the locale fallback prompt or the default visuals.
type Guide struct {
	llm LLMClient
	log *slog.Logger
}

func New(llm LLMClient, log *slog.Logger) (*Guide, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Guide{llm: llm, log: log}, nil
}

// NextPrompt asks for the next writing prompt given the poem so far. retry
// requests a different angle than the last one.
func (g *Guide) NextPrompt(ctx context.Context, locale string, lines []string, retry bool) string {
	raw, err := g.llm.Complete(ctx, BuildGuidancePrompt(locale, lines, retry))
	if err != nil {
		g.log.Warn("guidance call failed", "locale", locale, "lines", len(lines), "err", err)
		return FallbackGuidance(locale)
	}
	text := CleanGuidance(raw)
	if text == "" {
		return FallbackGuidance(locale)
	}
	return text
}

// AnalyzeVisuals derives the card accent color and motifs from the poem.
func (g *Guide) AnalyzeVisuals(ctx context.Context, lines []string) imagepkg.VisualParameters {
	raw, err := g.llm.Complete(ctx, BuildVisualsPrompt(lines))
	if err != nil {
		g.log.Warn("visual analysis failed", "lines", len(lines), "err", err)
		return imagepkg.DefaultVisualParameters()
	}
	return ParseVisuals(raw)
}
