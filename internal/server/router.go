package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/fairwaylabs/coursedesk-backend/internal/handlers"
	"github.com/fairwaylabs/coursedesk-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins []string
	TracingOn    bool

	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	CourseHandler     *handlers.CourseHandler
	FieldHandler      *handlers.FieldHandler
	PromotionHandler  *handlers.PromotionHandler
	EnrichmentHandler *handlers.EnrichmentHandler
	PipelineHandler   *handlers.PipelineHandler
	SSEHandler        *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingOn {
		router.Use(otelgin.Middleware("coursedesk-backend"))
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/connect", cfg.AuthHandler.Connect)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Courses
	api.GET("/courses", cfg.CourseHandler.ListCourses)
	api.GET("/courses/:courseNumber", cfg.CourseHandler.GetCourse)
	api.GET("/courses/:courseNumber/sources/:table", cfg.CourseHandler.GetSourceRow)
	api.PUT("/courses/:courseNumber/tees", cfg.CourseHandler.ReplaceTees)
	api.PUT("/courses/:courseNumber/pars", cfg.CourseHandler.ReplacePars)

	// Field edits
	api.GET("/fields", cfg.FieldHandler.ListFields)
	api.PATCH("/courses/:courseNumber/fields/:field", cfg.FieldHandler.SetField)
	api.DELETE("/courses/:courseNumber/fields/:field/override", cfg.FieldHandler.ClearOverride)

	// Promotion
	api.POST("/courses/:courseNumber/promote", cfg.PromotionHandler.PromoteCourse)
	api.POST("/promote-all", cfg.PromotionHandler.PromoteAll)

	// Enrichment pipeline
	api.POST("/courses/:courseNumber/enrich", cfg.EnrichmentHandler.EnrichCourse)
	api.POST("/enrich-all", cfg.EnrichmentHandler.EnrichAll)
	api.GET("/courses/:courseNumber/enrichment-runs/latest", cfg.EnrichmentHandler.LatestRun)
	api.GET("/courses/:courseNumber/pipeline-status", cfg.PipelineHandler.GetStatus)
	api.POST("/courses/:courseNumber/pipeline-status/retry", cfg.PipelineHandler.Retry)

	// Events
	api.GET("/events/stream", cfg.SSEHandler.Stream)

	return router
}

// SplitOrigins parses a comma-separated CORS_ALLOW_ORIGINS value.
func SplitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
