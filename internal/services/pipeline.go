package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// PipelineStatusService owns the per-course enrichment state machine.
// Valid transitions: pending->running on start, running->running per step,
// running->complete, running->error, and error->pending when an operator
// retries. Anything else is rejected with ErrInvalidTransition.
type PipelineStatusService interface {
	Initialize(ctx context.Context, courseNumber string) (*types.PipelineStatus, error)
	Get(ctx context.Context, courseNumber string) (*types.PipelineStatus, error)
	Start(ctx context.Context, courseNumber string) (*types.PipelineStatus, error)
	AdvanceStep(ctx context.Context, courseNumber string, step int, details datatypes.JSON) (*types.PipelineStatus, error)
	Complete(ctx context.Context, courseNumber string) (*types.PipelineStatus, error)
	Fail(ctx context.Context, courseNumber string, errorMessage string) (*types.PipelineStatus, error)
	Retry(ctx context.Context, courseNumber string) (*types.PipelineStatus, error)
}

type pipelineStatusService struct {
	log      *logger.Logger
	statuses repos.PipelineStatusRepo
	notifier Notifier
}

func NewPipelineStatusService(baseLog *logger.Logger, statuses repos.PipelineStatusRepo, notifier Notifier) PipelineStatusService {
	return &pipelineStatusService{
		log:      baseLog.With("service", "PipelineStatusService"),
		statuses: statuses,
		notifier: notifier,
	}
}

var validTransitions = map[string]map[string]bool{
	types.PipelineStatusPending: {types.PipelineStatusRunning: true},
	types.PipelineStatusRunning: {
		types.PipelineStatusRunning:  true,
		types.PipelineStatusComplete: true,
		types.PipelineStatusError:    true,
	},
	types.PipelineStatusError: {types.PipelineStatusPending: true},
}

func checkTransition(from, to string) error {
	if !validTransitions[from][to] {
		return fmt.Errorf("%w: %s -> %s", pkgerrors.ErrInvalidTransition, from, to)
	}
	return nil
}

func (s *pipelineStatusService) Initialize(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	status, created, err := s.statuses.Initialize(ctx, nil, courseNumber)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("Pipeline status initialized", "course_number", courseNumber)
	}
	return status, nil
}

func (s *pipelineStatusService) Get(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	status, err := s.statuses.GetByCourseNumber(ctx, nil, courseNumber)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, fmt.Errorf("%w: no pipeline status for %s", pkgerrors.ErrNotFound, courseNumber)
	}
	return status, nil
}

func (s *pipelineStatusService) transition(ctx context.Context, courseNumber, to string, extra map[string]any) (*types.PipelineStatus, error) {
	current, err := s.statuses.GetByCourseNumber(ctx, nil, courseNumber)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: no pipeline status for %s", pkgerrors.ErrNotFound, courseNumber)
	}
	if err := checkTransition(current.Status, to); err != nil {
		return nil, err
	}

	fields := map[string]any{"status": to}
	for k, v := range extra {
		fields[k] = v
	}
	if err := s.statuses.UpdateFields(ctx, nil, courseNumber, fields); err != nil {
		return nil, err
	}
	return s.statuses.GetByCourseNumber(ctx, nil, courseNumber)
}

func (s *pipelineStatusService) Start(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	status, err := s.transition(ctx, courseNumber, types.PipelineStatusRunning, map[string]any{
		"current_step":     1,
		"progress_percent": 0,
		"error_message":    nil,
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.PipelineProgress(courseNumber, status)
	}
	return status, nil
}

func (s *pipelineStatusService) AdvanceStep(ctx context.Context, courseNumber string, step int, details datatypes.JSON) (*types.PipelineStatus, error) {
	if step < 1 || step > types.PipelineStepCount {
		return nil, fmt.Errorf("%w: step %d out of range 1..%d", pkgerrors.ErrInvalidArgument, step, types.PipelineStepCount)
	}
	extra := map[string]any{
		"current_step":     step,
		"progress_percent": step * 100 / types.PipelineStepCount,
	}
	if details != nil {
		extra["step_details"] = details
	}
	status, err := s.transition(ctx, courseNumber, types.PipelineStatusRunning, extra)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.PipelineProgress(courseNumber, status)
	}
	return status, nil
}

func (s *pipelineStatusService) Complete(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	status, err := s.transition(ctx, courseNumber, types.PipelineStatusComplete, map[string]any{
		"current_step":     types.PipelineStepCount,
		"progress_percent": 100,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Pipeline complete", "course_number", courseNumber)
	if s.notifier != nil {
		s.notifier.PipelineCompleted(courseNumber, status)
	}
	return status, nil
}

func (s *pipelineStatusService) Fail(ctx context.Context, courseNumber string, errorMessage string) (*types.PipelineStatus, error) {
	status, err := s.transition(ctx, courseNumber, types.PipelineStatusError, map[string]any{
		"error_message": errorMessage,
	})
	if err != nil {
		return nil, err
	}
	s.log.Error("Pipeline failed", "course_number", courseNumber, "error", errorMessage)
	if s.notifier != nil {
		s.notifier.PipelineFailed(courseNumber, status, errorMessage)
	}
	return status, nil
}

// Retry clears a failed run back to pending so the operator can start the
// pipeline again.
func (s *pipelineStatusService) Retry(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	status, err := s.transition(ctx, courseNumber, types.PipelineStatusPending, map[string]any{
		"current_step":     1,
		"progress_percent": 0,
		"error_message":    nil,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Pipeline reset for retry", "course_number", courseNumber)
	if s.notifier != nil {
		s.notifier.PipelineProgress(courseNumber, status)
	}
	return status, nil
}
