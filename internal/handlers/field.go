package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/requestdata"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
)

type FieldHandler struct {
	log       *logger.Logger
	registry  *fieldmap.Registry
	fieldEdit services.FieldEditService
}

func NewFieldHandler(log *logger.Logger, registry *fieldmap.Registry, fieldEdit services.FieldEditService) *FieldHandler {
	return &FieldHandler{
		log:       log.With("handler", "FieldHandler"),
		registry:  registry,
		fieldEdit: fieldEdit,
	}
}

// GET /api/fields
func (h *FieldHandler) ListFields(c *gin.Context) {
	fields := h.registry.CanonicalFields()
	out := make([]gin.H, 0, len(fields))
	for _, f := range fields {
		out = append(out, gin.H{"name": f, "type": h.registry.TypeOf(f)})
	}
	RespondOK(c, gin.H{"fields": out})
}

// PATCH /api/courses/:courseNumber/fields/:field
func (h *FieldHandler) SetField(c *gin.Context) {
	var body struct {
		Value any `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	record, err := h.fieldEdit.SetFieldManually(c.Request.Context(), c.Param("courseNumber"), c.Param("field"), body.Value)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		h.log.Info("Manual field edit", "subject", rd.Subject, "course_number", c.Param("courseNumber"), "field", c.Param("field"))
	}
	RespondOK(c, gin.H{"primary": record})
}

// DELETE /api/courses/:courseNumber/fields/:field/override
func (h *FieldHandler) ClearOverride(c *gin.Context) {
	record, err := h.fieldEdit.ClearManualOverride(c.Request.Context(), c.Param("courseNumber"), c.Param("field"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		h.log.Info("Cleared manual override", "subject", rd.Subject, "course_number", c.Param("courseNumber"), "field", c.Param("field"))
	}
	RespondOK(c, gin.H{"primary": record})
}
