package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type EnrichmentHandler struct {
	log        *logger.Logger
	enrichment services.EnrichmentService
}

func NewEnrichmentHandler(log *logger.Logger, enrichment services.EnrichmentService) *EnrichmentHandler {
	return &EnrichmentHandler{
		log:        log.With("handler", "EnrichmentHandler"),
		enrichment: enrichment,
	}
}

// POST /api/courses/:courseNumber/enrich
func (h *EnrichmentHandler) EnrichCourse(c *gin.Context) {
	courseNumber := c.Param("courseNumber")
	run, err := h.enrichment.EnrichCourse(c.Request.Context(), courseNumber, types.EnrichmentTriggerSingle)
	if err != nil {
		h.log.Error("EnrichCourse failed", "course_number", courseNumber, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"run": run})
}

// POST /api/enrich-all
func (h *EnrichmentHandler) EnrichAll(c *gin.Context) {
	result, err := h.enrichment.EnrichAll(c.Request.Context())
	if err != nil {
		h.log.Error("EnrichAll failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/courses/:courseNumber/enrichment-runs/latest
func (h *EnrichmentHandler) LatestRun(c *gin.Context) {
	run, err := h.enrichment.LatestRun(c.Request.Context(), c.Param("courseNumber"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"run": run})
}
