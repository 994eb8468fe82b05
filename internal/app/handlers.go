package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/handlers"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/middleware"
	"github.com/fairwaylabs/coursedesk-backend/internal/server"
	"github.com/fairwaylabs/coursedesk-backend/internal/sse"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Course     *handlers.CourseHandler
	Field      *handlers.FieldHandler
	Promotion  *handlers.PromotionHandler
	Enrichment *handlers.EnrichmentHandler
	Pipeline   *handlers.PipelineHandler
	SSE        *handlers.SSEHandler
}

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireHandlers(log *logger.Logger, registry *fieldmap.Registry, serviceset Services, sseHub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(log, serviceset.Auth),
		Course:     handlers.NewCourseHandler(log, serviceset.Course, serviceset.FieldEdit),
		Field:      handlers.NewFieldHandler(log, registry, serviceset.FieldEdit),
		Promotion:  handlers.NewPromotionHandler(log, serviceset.Promotion),
		Enrichment: handlers.NewEnrichmentHandler(log, serviceset.Enrichment),
		Pipeline:   handlers.NewPipelineHandler(log, serviceset.Pipeline),
		SSE:        handlers.NewSSEHandler(log, sseHub),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:      cfg.CORSAllowOrigins,
		TracingOn:         cfg.OtelEnabled,
		AuthMiddleware:    middlewareset.Auth,
		AuthHandler:       handlerset.Auth,
		CourseHandler:     handlerset.Course,
		FieldHandler:      handlerset.Field,
		PromotionHandler:  handlerset.Promotion,
		EnrichmentHandler: handlerset.Enrichment,
		PipelineHandler:   handlerset.Pipeline,
		SSEHandler:        handlerset.SSE,
	})
}
