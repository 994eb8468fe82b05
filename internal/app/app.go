package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/db"
	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/observability"
	"github.com/fairwaylabs/coursedesk-backend/internal/sse"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Registry *fieldmap.Registry
	Repos    Repos
	Services Services
	SSEHub   *sse.SSEHub

	cancel       context.CancelFunc
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	registry, err := fieldmap.Default()
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load field registry: %w", err)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "coursedesk-backend",
		Environment: cfg.AppEnv,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	sseHub := sse.NewSSEHub(log)

	reposet := wireRepos(theDB, log, registry)

	serviceset, err := wireServices(theDB, log, cfg, registry, reposet, sseHub)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, registry, serviceset, sseHub)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Registry:     registry,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       sseHub,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background pieces: the Temporal worker when one is
// configured. The HTTP listener is started separately via Run.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.Worker != nil {
		go func() {
			if err := a.Services.Worker.Start(ctx); err != nil {
				a.Log.Error("Temporal worker exited", "error", err)
			}
		}()
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Services.Bus != nil {
		_ = a.Services.Bus.Close()
	}
	if a.Services.Temporal != nil {
		a.Services.Temporal.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
