package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	imagepkg "github.com/youruser/lumenpoem/internal/image"
	"github.com/youruser/lumenpoem/internal/poem"
	"github.com/youruser/lumenpoem/internal/session"
	"github.com/youruser/lumenpoem/internal/util"
)

const cardFilename = "LumenPoem.png"

func sendPNG(c *gin.Context, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", cardFilename))
	c.Data(http.StatusOK, "image/png", data)
}

// draftCard renders the draft's card, analysing the poem once per revision.
func (s *Server) draftCard(c *gin.Context) {
	d, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(d.Lines) == 0 {
		s.fail(c, session.ErrNoLines)
		return
	}

	if err := s.checkSize(len(d.Lines), reflectionShown(d.Reflection, d.IncludeReflection)); err != nil {
		s.fail(c, err)
		return
	}

	params := s.visuals(c, d)
	card, err := s.composer(d.Locale).Render(d.Lines, d.Reflection, d.IncludeReflection, params)
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := card.EncodePNG()
	if err != nil {
		s.fail(c, err)
		return
	}

	if s.outputDir != "" {
		name := fmt.Sprintf("lumenpoem-%s-r%d.png", d.ID, d.Revision)
		if path, err := util.SaveFile(s.outputDir, name, data); err != nil {
			s.log.Warn("card not saved", "draft_id", d.ID, "err", err)
		} else {
			s.log.Info("card saved", "draft_id", d.ID, "path", path)
		}
	}
	sendPNG(c, data)
}

// reflectionShown is the reflection text that contributes to card height.
func reflectionShown(text string, include bool) string {
	if !include {
		return ""
	}
	return text
}

func draftPoem(d session.Draft) poem.Poem {
	return poem.New(d.Lines, d.Reflection, d.IncludeReflection, d.Locale)
}

func (s *Server) export(c *gin.Context) {
	d, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	p := draftPoem(d)

	switch format := c.DefaultQuery("format", "text"); format {
	case "text", "txt":
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(poem.ExportText(p)))
	case "md", "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(poem.ExportMarkdown(p)))
	case "html":
		out, err := poem.ExportHTML(p)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
	default:
		badRequest(c, fmt.Errorf("unknown export format %q", format))
	}
}

// shareCode returns a QR code carrying the plain-text poem.
func (s *Server) shareCode(c *gin.Context) {
	size := imagepkg.DefaultQRSize
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, errors.New("size must be an integer"))
			return
		}
		size = n
	}

	d, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(d.Lines) == 0 {
		s.fail(c, session.ErrNoLines)
		return
	}

	data, err := imagepkg.GenerateQRPNG(poem.ExportText(draftPoem(d)), size)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

type cardRequest struct {
	Lines             []string `json:"lines"`
	Reflection        string   `json:"reflection"`
	IncludeReflection bool     `json:"include_reflection"`
	Color             string   `json:"color"`
	Motifs            []string `json:"motifs"`
	Locale            string   `json:"locale"`
}

// renderCard draws a card without a draft. With neither color nor motifs
// given, a non-empty poem is analysed first.
func (s *Server) renderCard(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.checkSize(len(req.Lines), reflectionShown(req.Reflection, req.IncludeReflection)); err != nil {
		s.fail(c, err)
		return
	}
	locale := s.resolveLocale(req.Locale, c.GetHeader("Accept-Language"))

	var params imagepkg.VisualParameters
	if req.Color == "" && len(req.Motifs) == 0 && len(req.Lines) > 0 {
		ctx, cancel := s.aiContext(c)
		params = s.guide.AnalyzeVisuals(ctx, req.Lines)
		cancel()
	} else {
		params = imagepkg.NewVisualParameters(req.Color, req.Motifs)
	}

	card, err := s.composer(locale).Render(req.Lines, req.Reflection, req.IncludeReflection, params)
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := card.EncodePNG()
	if err != nil {
		s.fail(c, err)
		return
	}
	sendPNG(c, data)
}
