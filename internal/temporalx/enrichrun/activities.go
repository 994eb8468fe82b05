package enrichrun

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/services"
)

// Activities adapt the enrichment step primitives for Temporal workers.
type Activities struct {
	Log        *logger.Logger
	Enrichment services.EnrichmentService
}

func (a *Activities) Begin(ctx context.Context, in RunInput) error {
	if a == nil || a.Enrichment == nil {
		return fmt.Errorf("enrichrun: activity not configured")
	}
	return a.Enrichment.BeginRun(ctx, in.CourseNumber)
}

func (a *Activities) RunStep(ctx context.Context, in StepInput) error {
	if a == nil || a.Enrichment == nil {
		return fmt.Errorf("enrichrun: activity not configured")
	}
	return a.Enrichment.ExecuteStep(ctx, in.CourseNumber, in.Step)
}

func (a *Activities) Complete(ctx context.Context, in RunInput) error {
	if a == nil || a.Enrichment == nil {
		return fmt.Errorf("enrichrun: activity not configured")
	}
	runID, err := uuid.Parse(in.RunID)
	if err != nil {
		return fmt.Errorf("enrichrun: invalid run_id %q", in.RunID)
	}
	return a.Enrichment.CompleteRun(ctx, runID, in.CourseNumber)
}

func (a *Activities) Fail(ctx context.Context, in FailInput) error {
	if a == nil || a.Enrichment == nil {
		return fmt.Errorf("enrichrun: activity not configured")
	}
	runID, err := uuid.Parse(in.RunID)
	if err != nil {
		return fmt.Errorf("enrichrun: invalid run_id %q", in.RunID)
	}
	return a.Enrichment.FailRun(ctx, runID, in.CourseNumber, in.ErrorMessage)
}
