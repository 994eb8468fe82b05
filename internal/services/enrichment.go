package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	temporalsdkclient "go.temporal.io/sdk/client"
	"gorm.io/datatypes"

	"github.com/fairwaylabs/coursedesk-backend/internal/clients/enrich"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
	"github.com/fairwaylabs/coursedesk-backend/internal/temporalx"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// BulkEnrichResult summarizes an enrich-all dispatch. Courses whose
// pipeline is already running or complete are skipped rather than failed;
// a course whose dispatch errors is counted and the batch continues.
type BulkEnrichResult struct {
	Dispatched int `json:"dispatched"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// EnrichmentService triggers the 13-step enrichment pipeline for a course
// and reconciles after every step. Runs execute as Temporal workflows when
// a client is configured, otherwise inline in a goroutine. BeginRun,
// ExecuteStep, CompleteRun and FailRun are the shared step primitives both
// execution paths drive.
type EnrichmentService interface {
	EnrichCourse(ctx context.Context, courseNumber, trigger string) (*types.EnrichmentRun, error)
	EnrichAll(ctx context.Context) (*BulkEnrichResult, error)
	LatestRun(ctx context.Context, courseNumber string) (*types.EnrichmentRun, error)

	BeginRun(ctx context.Context, courseNumber string) error
	ExecuteStep(ctx context.Context, courseNumber string, step int) error
	CompleteRun(ctx context.Context, runID uuid.UUID, courseNumber string) error
	FailRun(ctx context.Context, runID uuid.UUID, courseNumber, errorMessage string) error
}

type enrichmentService struct {
	log       *logger.Logger
	client    enrich.Client
	pipeline  PipelineStatusService
	promotion PromotionService
	runs      repos.EnrichmentRunRepo
	sources   repos.SourceRepo
	seedTable string
	notifier  Notifier
	temporal  temporalsdkclient.Client
}

func NewEnrichmentService(
	baseLog *logger.Logger,
	client enrich.Client,
	pipeline PipelineStatusService,
	promotion PromotionService,
	runs repos.EnrichmentRunRepo,
	sources repos.SourceRepo,
	seedTable string,
	notifier Notifier,
	temporal temporalsdkclient.Client,
) EnrichmentService {
	return &enrichmentService{
		log:       baseLog.With("service", "EnrichmentService"),
		client:    client,
		pipeline:  pipeline,
		promotion: promotion,
		runs:      runs,
		sources:   sources,
		seedTable: seedTable,
		notifier:  notifier,
		temporal:  temporal,
	}
}

func (s *enrichmentService) EnrichCourse(ctx context.Context, courseNumber, trigger string) (*types.EnrichmentRun, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: enrichment endpoint not configured", pkgerrors.ErrNotConnected)
	}
	if trigger != types.EnrichmentTriggerSingle && trigger != types.EnrichmentTriggerBulk {
		return nil, fmt.Errorf("%w: unknown trigger %q", pkgerrors.ErrInvalidArgument, trigger)
	}

	status, err := s.pipeline.Initialize(ctx, courseNumber)
	if err != nil {
		return nil, err
	}
	switch status.Status {
	case types.PipelineStatusRunning:
		return nil, fmt.Errorf("%w: pipeline already running for %s", pkgerrors.ErrInvalidTransition, courseNumber)
	case types.PipelineStatusComplete:
		return nil, fmt.Errorf("%w: pipeline already complete for %s", pkgerrors.ErrInvalidTransition, courseNumber)
	case types.PipelineStatusError:
		if _, err := s.pipeline.Retry(ctx, courseNumber); err != nil {
			return nil, err
		}
	}

	run, err := s.runs.Create(ctx, nil, &types.EnrichmentRun{
		CourseNumber: courseNumber,
		Trigger:      trigger,
		Status:       types.EnrichmentRunRunning,
		StartedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create enrichment run: %w", err)
	}

	if s.notifier != nil {
		s.notifier.EnrichmentStarted(courseNumber, run)
	}

	if s.temporal != nil {
		cfg := temporalx.LoadConfig()
		opts := temporalsdkclient.StartWorkflowOptions{
			ID:        "enrich_run-" + run.ID.String(),
			TaskQueue: cfg.TaskQueue,
		}
		// Keep literal to avoid import cycle with enrichrun.
		if _, err := s.temporal.ExecuteWorkflow(ctx, opts, "enrich_run", run.ID.String(), courseNumber); err != nil {
			msg := err.Error()
			_ = s.runs.Finish(ctx, nil, run.ID, types.EnrichmentRunError, &msg)
			return nil, fmt.Errorf("start enrichment workflow: %w", err)
		}
		s.log.Info("Enrichment workflow started", "course_number", courseNumber, "run_id", run.ID)
		return run, nil
	}

	go s.runInline(run.ID, courseNumber)
	s.log.Info("Enrichment started inline", "course_number", courseNumber, "run_id", run.ID)
	return run, nil
}

// runInline drives the whole pipeline in-process when Temporal is not
// configured. Detached from the request context on purpose: the run
// outlives the triggering HTTP call.
func (s *enrichmentService) runInline(runID uuid.UUID, courseNumber string) {
	ctx := context.Background()

	if err := s.BeginRun(ctx, courseNumber); err != nil {
		_ = s.FailRun(ctx, runID, courseNumber, err.Error())
		return
	}
	for step := 1; step <= types.PipelineStepCount; step++ {
		if err := s.ExecuteStep(ctx, courseNumber, step); err != nil {
			_ = s.FailRun(ctx, runID, courseNumber, err.Error())
			return
		}
	}
	if err := s.CompleteRun(ctx, runID, courseNumber); err != nil {
		s.log.Error("Failed to finalize enrichment run", "run_id", runID, "error", err)
	}
}

func (s *enrichmentService) BeginRun(ctx context.Context, courseNumber string) error {
	_, err := s.pipeline.Start(ctx, courseNumber)
	return err
}

// ExecuteStep invokes one enrichment script endpoint, records the step
// advance, and reconciles whatever the step wrote into the source tables.
// A promotion failure does not fail the step; the next step or a later
// run picks the data up.
func (s *enrichmentService) ExecuteStep(ctx context.Context, courseNumber string, step int) error {
	result, err := s.client.RunStep(ctx, step, courseNumber)
	if err != nil {
		return fmt.Errorf("step %d (%s): %w", step, enrich.StepName(step), err)
	}

	details := stepDetails(result)
	if _, err := s.pipeline.AdvanceStep(ctx, courseNumber, step, details); err != nil {
		return fmt.Errorf("record step %d: %w", step, err)
	}

	if _, err := s.promotion.PromoteCourse(ctx, courseNumber); err != nil {
		s.log.Warn("Promotion after step failed",
			"course_number", courseNumber, "step", step, "error", err)
	}
	return nil
}

func stepDetails(result *enrich.StepResult) datatypes.JSON {
	if result == nil {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func (s *enrichmentService) CompleteRun(ctx context.Context, runID uuid.UUID, courseNumber string) error {
	if _, err := s.pipeline.Complete(ctx, courseNumber); err != nil {
		return err
	}
	return s.runs.Finish(ctx, nil, runID, types.EnrichmentRunComplete, nil)
}

func (s *enrichmentService) FailRun(ctx context.Context, runID uuid.UUID, courseNumber, errorMessage string) error {
	if _, err := s.pipeline.Fail(ctx, courseNumber, errorMessage); err != nil {
		s.log.Error("Failed to record pipeline error", "course_number", courseNumber, "error", err)
	}
	return s.runs.Finish(ctx, nil, runID, types.EnrichmentRunError, &errorMessage)
}

func (s *enrichmentService) EnrichAll(ctx context.Context) (*BulkEnrichResult, error) {
	numbers, err := s.sources.ListCourseNumbers(ctx, nil, s.seedTable)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	out := &BulkEnrichResult{}
	for _, courseNumber := range numbers {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		if _, err := s.EnrichCourse(ctx, courseNumber, types.EnrichmentTriggerBulk); err != nil {
			if errors.Is(err, pkgerrors.ErrInvalidTransition) {
				out.Skipped++
				continue
			}
			out.Failed++
			s.log.Error("Course dispatch failed; continuing batch",
				"course_number", courseNumber, "error", err)
			continue
		}
		out.Dispatched++
	}
	s.log.Info("Bulk enrichment dispatched",
		"dispatched", out.Dispatched, "skipped", out.Skipped, "failed", out.Failed)
	return out, nil
}

func (s *enrichmentService) LatestRun(ctx context.Context, courseNumber string) (*types.EnrichmentRun, error) {
	return s.runs.GetLatestByCourseNumber(ctx, nil, courseNumber)
}
