package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api", s.limitBody)
	{
		api.GET("/health", s.health)
		api.POST("/card", s.renderCard)

		drafts := api.Group("/drafts")
		drafts.POST("", s.createDraft)
		drafts.GET("/:id", s.getDraft)
		drafts.DELETE("/:id", s.deleteDraft)
		drafts.POST("/:id/lines", s.addLine)
		drafts.PUT("/:id/lines/:index", s.editLine)
		drafts.POST("/:id/prompt", s.newPrompt)
		drafts.POST("/:id/finish", s.finish)
		drafts.POST("/:id/back", s.back)
		drafts.PUT("/:id/reflection", s.setReflection)
		drafts.GET("/:id/card", s.draftCard)
		drafts.GET("/:id/export", s.export)
		drafts.GET("/:id/qr", s.shareCode)
	}
}

// RequestLogger logs one line per request through slog.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
