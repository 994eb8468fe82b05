package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
)

type PipelineHandler struct {
	log      *logger.Logger
	pipeline services.PipelineStatusService
}

func NewPipelineHandler(log *logger.Logger, pipeline services.PipelineStatusService) *PipelineHandler {
	return &PipelineHandler{
		log:      log.With("handler", "PipelineHandler"),
		pipeline: pipeline,
	}
}

// GET /api/courses/:courseNumber/pipeline-status
func (h *PipelineHandler) GetStatus(c *gin.Context) {
	status, err := h.pipeline.Get(c.Request.Context(), c.Param("courseNumber"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": status})
}

// POST /api/courses/:courseNumber/pipeline-status/retry
func (h *PipelineHandler) Retry(c *gin.Context) {
	courseNumber := c.Param("courseNumber")
	status, err := h.pipeline.Retry(c.Request.Context(), courseNumber)
	if err != nil {
		h.log.Error("Pipeline retry failed", "course_number", courseNumber, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": status})
}
