package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/lumenpoem/internal/guide"
	"github.com/youruser/lumenpoem/internal/session"
)

// statusFor maps store errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrEmptyLine), errors.Is(err, session.ErrLineIndex),
		errors.Is(err, ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoLines):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "drafts": s.store.Len()})
}

type createDraftRequest struct {
	Locale string `json:"locale"`
}

func (s *Server) createDraft(c *gin.Context) {
	var req createDraftRequest
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	locale := s.resolveLocale(req.Locale, c.GetHeader("Accept-Language"))
	d := s.store.Create(locale, guide.InitialGuidance(locale))
	s.log.Info("draft created", "draft_id", d.ID, "locale", locale)
	c.JSON(http.StatusCreated, d)
}

func (s *Server) getDraft(c *gin.Context) {
	d, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) deleteDraft(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type lineRequest struct {
	Text string `json:"text"`
}

// addLine appends a line and refreshes the guidance for the next one.
func (s *Server) addLine(c *gin.Context) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	d, err := s.store.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.checkSize(len(d.Lines)+1, ""); err != nil {
		s.fail(c, err)
		return
	}
	d, err = s.store.AddLine(id, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err = s.store.SetGuidance(id, s.nextPrompt(c, d, false))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) editLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, errors.New("line index must be an integer"))
		return
	}
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := s.store.EditLine(c.Param("id"), index, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// newPrompt asks for a different prompt than the current one.
func (s *Server) newPrompt(c *gin.Context) {
	id := c.Param("id")
	d, err := s.store.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err = s.store.SetGuidance(id, s.nextPrompt(c, d, true))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) finish(c *gin.Context) {
	d, err := s.store.Finish(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) back(c *gin.Context) {
	d, err := s.store.Back(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type reflectionRequest struct {
	Text    string `json:"text"`
	Include bool   `json:"include"`
}

func (s *Server) setReflection(c *gin.Context) {
	var req reflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.checkSize(0, req.Text); err != nil {
		s.fail(c, err)
		return
	}
	d, err := s.store.SetReflection(c.Param("id"), req.Text, req.Include)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
