package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/youruser/lumenpoem/internal/guide"
	imagepkg "github.com/youruser/lumenpoem/internal/image"
	"github.com/youruser/lumenpoem/internal/session"
)

// supported card locales, index-aligned with localeTags
var (
	supportedTags = []language.Tag{language.English, language.Chinese}
	localeTags    = []string{imagepkg.LocaleEnglish.Tag, imagepkg.LocaleChinese.Tag}
)

// ErrTooLarge marks input beyond the server's line or reflection limits.
var ErrTooLarge = errors.New("poem too large")

// Options wires a Server. Store and Guide are required.
type Options struct {
	Store *session.Store
	Guide *guide.Guide

	// Composers maps a locale tag to its card composer. Missing locales get a
	// default composer over Fonts.
	Composers map[string]*imagepkg.Composer
	Fonts     imagepkg.FontProvider

	DefaultLocale string
	AITimeout     time.Duration
	// CardOutputDir, when set, receives a copy of every rendered draft card.
	CardOutputDir string
	Logger        *slog.Logger

	// Limits on poem size and request bodies. Zero picks the defaults below.
	MaxLines           int
	MaxReflectionRunes int
	MaxBodyBytes       int64
}

const (
	DefaultMaxLines           = 100
	DefaultMaxReflectionRunes = 2000
	DefaultMaxBodyBytes       = 64 << 10
)

// Server holds the handlers' shared state.
type Server struct {
	store         *session.Store
	guide         *guide.Guide
	composers     map[string]*imagepkg.Composer
	matcher       language.Matcher
	defaultLocale string
	aiTimeout     time.Duration
	outputDir     string
	log           *slog.Logger

	maxLines           int
	maxReflectionRunes int
	maxBodyBytes       int64
}

func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Guide == nil {
		return nil, errors.New("guide is required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	fonts := opts.Fonts
	if fonts == nil {
		fonts = imagepkg.DefaultFontProvider()
	}

	composers := make(map[string]*imagepkg.Composer, len(localeTags))
	for tag, c := range opts.Composers {
		composers[tag] = c
	}
	for _, l := range []imagepkg.Locale{imagepkg.LocaleEnglish, imagepkg.LocaleChinese} {
		if _, ok := composers[l.Tag]; !ok {
			cfg := imagepkg.DefaultCardConfig().WithLocale(l)
			composers[l.Tag] = imagepkg.NewComposer(cfg, imagepkg.WithFontProvider(fonts))
		}
	}

	def := imagepkg.LocaleFor(opts.DefaultLocale).Tag
	if opts.DefaultLocale == "" {
		def = imagepkg.LocaleEnglish.Tag
	}

	return &Server{
		store:         opts.Store,
		guide:         opts.Guide,
		composers:     composers,
		matcher:       language.NewMatcher(supportedTags),
		defaultLocale: def,
		aiTimeout:     opts.AITimeout,
		outputDir:     opts.CardOutputDir,
		log:           log,

		maxLines:           orDefault(opts.MaxLines, DefaultMaxLines),
		maxReflectionRunes: orDefault(opts.MaxReflectionRunes, DefaultMaxReflectionRunes),
		maxBodyBytes:       orDefault(opts.MaxBodyBytes, DefaultMaxBodyBytes),
	}, nil
}

func orDefault[T int | int64](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// limitBody caps how much of a request body handlers may read.
func (s *Server) limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	}
	c.Next()
}

// checkSize rejects poems whose card would exceed the configured bounds.
func (s *Server) checkSize(lineCount int, reflection string) error {
	if lineCount > s.maxLines {
		return fmt.Errorf("%w: %d lines, at most %d", ErrTooLarge, lineCount, s.maxLines)
	}
	if n := utf8.RuneCountInString(reflection); n > s.maxReflectionRunes {
		return fmt.Errorf("%w: reflection of %d characters, at most %d", ErrTooLarge, n, s.maxReflectionRunes)
	}
	return nil
}

// resolveLocale prefers an explicit locale, then the Accept-Language header,
// then the configured default.
func (s *Server) resolveLocale(requested, acceptLanguage string) string {
	if requested != "" {
		return imagepkg.LocaleFor(requested).Tag
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := s.matcher.Match(tags...)
			if conf != language.No {
				return localeTags[idx]
			}
		}
	}
	return s.defaultLocale
}

func (s *Server) composer(locale string) *imagepkg.Composer {
	if c, ok := s.composers[imagepkg.LocaleFor(locale).Tag]; ok {
		return c
	}
	return s.composers[s.defaultLocale]
}

// aiContext bounds one model call by the configured timeout.
func (s *Server) aiContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.aiTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), s.aiTimeout)
}

func (s *Server) nextPrompt(c *gin.Context, d session.Draft, retry bool) string {
	ctx, cancel := s.aiContext(c)
	defer cancel()
	return s.guide.NextPrompt(ctx, d.Locale, d.Lines, retry)
}

// visuals returns the cached analysis for the draft's current lines, running
// the analysis on a miss.
func (s *Server) visuals(c *gin.Context, d session.Draft) imagepkg.VisualParameters {
	if d.Visuals != nil {
		return *d.Visuals
	}
	ctx, cancel := s.aiContext(c)
	defer cancel()
	v := s.guide.AnalyzeVisuals(ctx, d.Lines)
	if err := s.store.SetVisuals(d.ID, d.Revision, v); err != nil {
		s.log.Debug("visuals not cached", "draft_id", d.ID, "err", err)
	}
	return v
}
