package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
	fieldEdit     services.FieldEditService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService, fieldEdit services.FieldEditService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
		fieldEdit:     fieldEdit,
	}
}

// GET /api/courses?q=&limit=&offset=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.courseService.ListCourses(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, list)
}

// GET /api/courses/:courseNumber
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseNumber := c.Param("courseNumber")
	detail, err := h.courseService.GetCourse(c.Request.Context(), courseNumber)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

// GET /api/courses/:courseNumber/sources/:table
func (h *CourseHandler) GetSourceRow(c *gin.Context) {
	row, err := h.courseService.GetSourceRow(c.Request.Context(), c.Param("courseNumber"), c.Param("table"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"row": row})
}

// PUT /api/courses/:courseNumber/tees
func (h *CourseHandler) ReplaceTees(c *gin.Context) {
	courseNumber := c.Param("courseNumber")
	var body struct {
		Tees []*types.CourseTee `json:"tees"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	for _, tee := range body.Tees {
		tee.CourseNumber = courseNumber
	}
	if err := h.fieldEdit.ReplaceTees(c.Request.Context(), courseNumber, body.Tees); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"replaced": len(body.Tees)})
}

// PUT /api/courses/:courseNumber/pars
func (h *CourseHandler) ReplacePars(c *gin.Context) {
	courseNumber := c.Param("courseNumber")
	var body struct {
		Pars []*types.CoursePar `json:"pars"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	for _, par := range body.Pars {
		par.CourseNumber = courseNumber
	}
	if err := h.fieldEdit.ReplacePars(c.Request.Context(), courseNumber, body.Pars); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"replaced": len(body.Pars)})
}
