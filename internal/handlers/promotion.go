package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
)

type PromotionHandler struct {
	log       *logger.Logger
	promotion services.PromotionService
}

func NewPromotionHandler(log *logger.Logger, promotion services.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		log:       log.With("handler", "PromotionHandler"),
		promotion: promotion,
	}
}

// POST /api/courses/:courseNumber/promote
func (h *PromotionHandler) PromoteCourse(c *gin.Context) {
	courseNumber := c.Param("courseNumber")
	result, err := h.promotion.PromoteCourse(c.Request.Context(), courseNumber)
	if err != nil {
		h.log.Error("PromoteCourse failed", "course_number", courseNumber, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/promote-all
func (h *PromotionHandler) PromoteAll(c *gin.Context) {
	result, err := h.promotion.PromoteAll(c.Request.Context())
	if err != nil {
		h.log.Error("PromoteAll failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
