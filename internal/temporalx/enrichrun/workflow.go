package enrichrun

import (
	"fmt"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// Workflow drives one enrichment run: begin, thirteen sequential step
// activities, then completion. Activities do not retry; a failed step is
// terminal for the run and an operator retry starts a fresh one.
func Workflow(ctx workflow.Context, runID string, courseNumber string) error {
	runID = strings.TrimSpace(runID)
	courseNumber = strings.TrimSpace(courseNumber)
	if runID == "" || courseNumber == "" {
		return fmt.Errorf("enrichrun: missing run_id or course_number")
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    60 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	in := RunInput{RunID: runID, CourseNumber: courseNumber}

	if err := workflow.ExecuteActivity(ctx, ActivityBegin, in).Get(ctx, nil); err != nil {
		return failRun(ctx, in, err)
	}

	for step := 1; step <= types.PipelineStepCount; step++ {
		stepIn := StepInput{RunID: runID, CourseNumber: courseNumber, Step: step}
		if err := workflow.ExecuteActivity(ctx, ActivityStep, stepIn).Get(ctx, nil); err != nil {
			return failRun(ctx, in, err)
		}
	}

	if err := workflow.ExecuteActivity(ctx, ActivityComplete, in).Get(ctx, nil); err != nil {
		return failRun(ctx, in, err)
	}
	return nil
}

func failRun(ctx workflow.Context, in RunInput, cause error) error {
	fail := FailInput{
		RunID:        in.RunID,
		CourseNumber: in.CourseNumber,
		ErrorMessage: cause.Error(),
	}
	if err := workflow.ExecuteActivity(ctx, ActivityFail, fail).Get(ctx, nil); err != nil {
		workflow.GetLogger(ctx).Error("enrichrun: failed to record run failure",
			"run_id", in.RunID, "error", err)
	}
	return cause
}
