package app

import (
	"context"
	"fmt"

	temporalsdkclient "go.temporal.io/sdk/client"
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/clients/enrich"
	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
	"github.com/fairwaylabs/coursedesk-backend/internal/sse"
	"github.com/fairwaylabs/coursedesk-backend/internal/temporalx"
	"github.com/fairwaylabs/coursedesk-backend/internal/temporalx/temporalworker"
)

type Services struct {
	Auth       services.AuthService
	Course     services.CourseService
	FieldEdit  services.FieldEditService
	Promotion  services.PromotionService
	Pipeline   services.PipelineStatusService
	Enrichment services.EnrichmentService

	Notifier services.Notifier
	Bus      services.SSEBus
	Temporal temporalsdkclient.Client
	Worker   *temporalworker.Runner
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	registry *fieldmap.Registry,
	reposet Repos,
	sseHub *sse.SSEHub,
) (Services, error) {
	log.Info("Wiring services...")

	// Events fan out over redis when configured, otherwise straight to
	// the in-process hub.
	var emitter services.SSEEmitter = &services.HubEmitter{Hub: sseHub}
	bus, busErr := services.NewRedisSSEBus(log)
	if busErr != nil {
		log.Warn("Redis SSE bus disabled", "reason", busErr)
		bus = nil
	} else {
		emitter = &services.RedisEmitter{Bus: bus}
		if err := bus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
			return Services{}, fmt.Errorf("start redis forwarder: %w", err)
		}
	}
	notifier := services.NewSSENotifier(emitter)

	authService, err := services.NewAuthService(
		log,
		cfg.AdminUsername,
		cfg.AdminPassword,
		cfg.AdminPasswordHash,
		cfg.JWTSecretKey,
		cfg.SessionTTL,
	)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	promotionService := services.NewPromotionService(db, log, registry, reposet.Sources, reposet.Primary, notifier)
	pipelineService := services.NewPipelineStatusService(log, reposet.Statuses, notifier)
	fieldEditService := services.NewFieldEditService(db, log, registry, reposet.Primary, reposet.Tees, reposet.Pars)
	courseService := services.NewCourseService(log, registry, reposet.Primary, reposet.Sources, reposet.Statuses, reposet.Runs, reposet.Tees, reposet.Pars)

	enrichClient, err := enrich.NewFromEnv(log)
	if err != nil {
		log.Warn("Enrichment client disabled", "reason", err)
		enrichClient = nil
	}

	temporalClient, err := temporalx.NewClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init temporal client: %w", err)
	}

	enrichmentService := services.NewEnrichmentService(
		log,
		enrichClient,
		pipelineService,
		promotionService,
		reposet.Runs,
		reposet.Sources,
		registry.SeedTable(),
		notifier,
		temporalClient,
	)

	var workerRunner *temporalworker.Runner
	if temporalClient != nil {
		workerRunner, err = temporalworker.NewRunner(log, temporalClient, enrichmentService)
		if err != nil {
			return Services{}, fmt.Errorf("init temporal worker: %w", err)
		}
	}

	return Services{
		Auth:       authService,
		Course:     courseService,
		FieldEdit:  fieldEditService,
		Promotion:  promotionService,
		Pipeline:   pipelineService,
		Enrichment: enrichmentService,
		Notifier:   notifier,
		Bus:        bus,
		Temporal:   temporalClient,
		Worker:     workerRunner,
	}, nil
}
