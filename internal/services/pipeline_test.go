package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type fakeStatusRepo struct {
	status *types.PipelineStatus
}

func (f *fakeStatusRepo) Initialize(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PipelineStatus, bool, error) {
	if f.status != nil {
		return f.status, false, nil
	}
	f.status = &types.PipelineStatus{
		CourseNumber:    courseNumber,
		CurrentStep:     1,
		ProgressPercent: 0,
		Status:          types.PipelineStatusPending,
		LastUpdated:     time.Now().UTC(),
	}
	return f.status, true, nil
}

func (f *fakeStatusRepo) GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PipelineStatus, error) {
	return f.status, nil
}

func (f *fakeStatusRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error {
	if f.status == nil {
		return pkgerrors.ErrNotFound
	}
	if v, ok := fields["status"]; ok {
		f.status.Status = v.(string)
	}
	if v, ok := fields["current_step"]; ok {
		f.status.CurrentStep = v.(int)
	}
	if v, ok := fields["progress_percent"]; ok {
		f.status.ProgressPercent = v.(int)
	}
	if v, ok := fields["error_message"]; ok {
		if v == nil {
			f.status.ErrorMessage = nil
		} else {
			msg := v.(string)
			f.status.ErrorMessage = &msg
		}
	}
	f.status.LastUpdated = time.Now().UTC()
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) EnrichmentStarted(courseNumber string, run *types.EnrichmentRun) {
	f.events = append(f.events, "started")
}

func (f *fakeNotifier) PipelineProgress(courseNumber string, status *types.PipelineStatus) {
	f.events = append(f.events, "progress")
}

func (f *fakeNotifier) PipelineCompleted(courseNumber string, status *types.PipelineStatus) {
	f.events = append(f.events, "completed")
}

func (f *fakeNotifier) PipelineFailed(courseNumber string, status *types.PipelineStatus, errorMessage string) {
	f.events = append(f.events, "failed")
}

func (f *fakeNotifier) PromotionCompleted(courseNumber string, result PromoteResult) {
	f.events = append(f.events, "promoted")
}

func newTestPipeline(t *testing.T) (PipelineStatusService, *fakeStatusRepo, *fakeNotifier) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	repo := &fakeStatusRepo{}
	notifier := &fakeNotifier{}
	return NewPipelineStatusService(log, repo, notifier), repo, notifier
}

func TestPipelineHappyPath(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newTestPipeline(t)

	if _, err := svc.Initialize(ctx, "US-1001"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, err := svc.Start(ctx, "US-1001"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for step := 2; step <= types.PipelineStepCount; step++ {
		status, err := svc.AdvanceStep(ctx, "US-1001", step, nil)
		if err != nil {
			t.Fatalf("AdvanceStep %d: %v", step, err)
		}
		if status.CurrentStep != step {
			t.Fatalf("CurrentStep = %d, want %d", status.CurrentStep, step)
		}
	}

	status, err := svc.Complete(ctx, "US-1001")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if status.Status != types.PipelineStatusComplete || status.ProgressPercent != 100 {
		t.Fatalf("final status = %s/%d%%", status.Status, status.ProgressPercent)
	}
	last := notifier.events[len(notifier.events)-1]
	if last != "completed" {
		t.Errorf("last event = %q, want completed", last)
	}
}

func TestPipelineInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		from string
		call func(svc PipelineStatusService) error
	}{
		{"advance while pending", types.PipelineStatusPending, func(svc PipelineStatusService) error {
			_, err := svc.AdvanceStep(ctx, "US-1001", 2, nil)
			return err
		}},
		{"complete while pending", types.PipelineStatusPending, func(svc PipelineStatusService) error {
			_, err := svc.Complete(ctx, "US-1001")
			return err
		}},
		{"retry while running", types.PipelineStatusRunning, func(svc PipelineStatusService) error {
			_, err := svc.Retry(ctx, "US-1001")
			return err
		}},
		{"start while complete", types.PipelineStatusComplete, func(svc PipelineStatusService) error {
			_, err := svc.Start(ctx, "US-1001")
			return err
		}},
		{"retry while complete", types.PipelineStatusComplete, func(svc PipelineStatusService) error {
			_, err := svc.Retry(ctx, "US-1001")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newTestPipeline(t)
			if _, err := svc.Initialize(ctx, "US-1001"); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			repo.status.Status = tc.from

			err := tc.call(svc)
			if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestPipelineFailAndRetry(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestPipeline(t)

	if _, err := svc.Initialize(ctx, "US-1001"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, err := svc.Start(ctx, "US-1001"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	status, err := svc.Fail(ctx, "US-1001", "step 7: scrape timeout")
	if err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if status.Status != types.PipelineStatusError {
		t.Fatalf("status = %s, want error", status.Status)
	}
	if status.ErrorMessage == nil || *status.ErrorMessage != "step 7: scrape timeout" {
		t.Fatalf("error_message = %v", status.ErrorMessage)
	}

	status, err = svc.Retry(ctx, "US-1001")
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if status.Status != types.PipelineStatusPending || status.ErrorMessage != nil || status.CurrentStep != 1 {
		t.Fatalf("after retry: %+v", status)
	}

	if _, err := svc.Start(ctx, "US-1001"); err != nil {
		t.Fatalf("Start after retry: %v", err)
	}
}

func TestPipelineAdvanceStepOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestPipeline(t)

	if _, err := svc.Initialize(ctx, "US-1001"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, err := svc.Start(ctx, "US-1001"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.AdvanceStep(ctx, "US-1001", types.PipelineStepCount+1, nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.AdvanceStep(ctx, "US-1001", 0, nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
