package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/clients/enrich"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type fakeEnrichClient struct {
	mu       sync.Mutex
	calls    []int
	failStep int
}

func (f *fakeEnrichClient) RunStep(ctx context.Context, step int, courseNumber string) (*enrich.StepResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, step)
	f.mu.Unlock()
	if f.failStep != 0 && step == f.failStep {
		return nil, errors.New("script exploded")
	}
	return &enrich.StepResult{Step: step, Name: enrich.StepName(step)}, nil
}

type fakePipelineService struct {
	status   *types.PipelineStatus
	advanced []int
}

func (f *fakePipelineService) Initialize(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	if f.status == nil {
		f.status = &types.PipelineStatus{CourseNumber: courseNumber, Status: types.PipelineStatusPending, CurrentStep: 1}
	}
	return f.status, nil
}

func (f *fakePipelineService) Get(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	return f.status, nil
}

func (f *fakePipelineService) Start(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.status.Status = types.PipelineStatusRunning
	return f.status, nil
}

func (f *fakePipelineService) AdvanceStep(ctx context.Context, courseNumber string, step int, details datatypes.JSON) (*types.PipelineStatus, error) {
	f.advanced = append(f.advanced, step)
	f.status.CurrentStep = step
	return f.status, nil
}

func (f *fakePipelineService) Complete(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.status.Status = types.PipelineStatusComplete
	return f.status, nil
}

func (f *fakePipelineService) Fail(ctx context.Context, courseNumber string, errorMessage string) (*types.PipelineStatus, error) {
	f.status.Status = types.PipelineStatusError
	f.status.ErrorMessage = &errorMessage
	return f.status, nil
}

func (f *fakePipelineService) Retry(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.status.Status = types.PipelineStatusPending
	f.status.ErrorMessage = nil
	return f.status, nil
}

type fakePromotionService struct {
	mu       sync.Mutex
	promoted []string
}

func (f *fakePromotionService) PromoteCourse(ctx context.Context, courseNumber string) (PromoteResult, error) {
	f.mu.Lock()
	f.promoted = append(f.promoted, courseNumber)
	f.mu.Unlock()
	return PromoteResult{FieldsUpdated: 1}, nil
}

func (f *fakePromotionService) PromoteAll(ctx context.Context) (BatchResult, error) {
	return BatchResult{}, nil
}

type fakeRunRepo struct {
	repos.EnrichmentRunRepo
	mu          sync.Mutex
	creates     int
	failCreates int
	finished    map[uuid.UUID]string
}

func (f *fakeRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.EnrichmentRun) (*types.EnrichmentRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failCreates > 0 {
		f.failCreates--
		return nil, errors.New("transient insert failure")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	return run, nil
}

func (f *fakeRunRepo) Finish(ctx context.Context, tx *gorm.DB, runID uuid.UUID, status string, errorMessage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished == nil {
		f.finished = make(map[uuid.UUID]string)
	}
	f.finished[runID] = status
	return nil
}

func newTestEnrichment(t *testing.T, client enrich.Client, pipeline PipelineStatusService, promotion PromotionService, runs repos.EnrichmentRunRepo) EnrichmentService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return NewEnrichmentService(log, client, pipeline, promotion, runs, nil, "initial_course_upload", nil, nil)
}

func TestExecuteStepAdvancesAndPromotes(t *testing.T) {
	ctx := context.Background()
	client := &fakeEnrichClient{}
	pipeline := &fakePipelineService{status: &types.PipelineStatus{Status: types.PipelineStatusRunning}}
	promotion := &fakePromotionService{}
	svc := newTestEnrichment(t, client, pipeline, promotion, &fakeRunRepo{})

	for step := 1; step <= 3; step++ {
		if err := svc.ExecuteStep(ctx, "US-1001", step); err != nil {
			t.Fatalf("ExecuteStep %d: %v", step, err)
		}
	}
	if len(pipeline.advanced) != 3 || pipeline.advanced[2] != 3 {
		t.Fatalf("advanced = %v", pipeline.advanced)
	}
	if len(promotion.promoted) != 3 {
		t.Fatalf("promotions = %d, want one per step", len(promotion.promoted))
	}
}

func TestExecuteStepFailurePropagates(t *testing.T) {
	ctx := context.Background()
	client := &fakeEnrichClient{failStep: 2}
	pipeline := &fakePipelineService{status: &types.PipelineStatus{Status: types.PipelineStatusRunning}}
	promotion := &fakePromotionService{}
	svc := newTestEnrichment(t, client, pipeline, promotion, &fakeRunRepo{})

	if err := svc.ExecuteStep(ctx, "US-1001", 2); err == nil {
		t.Fatalf("expected step failure")
	}
	if len(pipeline.advanced) != 0 {
		t.Fatalf("failed step must not advance status: %v", pipeline.advanced)
	}
	if len(promotion.promoted) != 0 {
		t.Fatalf("failed step must not promote")
	}
}

func TestEnrichCourseRejectsRunningPipeline(t *testing.T) {
	ctx := context.Background()
	pipeline := &fakePipelineService{status: &types.PipelineStatus{
		CourseNumber: "US-1001",
		Status:       types.PipelineStatusRunning,
	}}
	svc := newTestEnrichment(t, &fakeEnrichClient{}, pipeline, &fakePromotionService{}, &fakeRunRepo{})

	_, err := svc.EnrichCourse(ctx, "US-1001", types.EnrichmentTriggerSingle)
	if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

// bulkPipeline keeps one status per course so bulk dispatch decisions are
// independent; locked because inline runs advance it from goroutines.
type bulkPipeline struct {
	mu       sync.Mutex
	statuses map[string]*types.PipelineStatus
}

func (f *bulkPipeline) get(courseNumber string) *types.PipelineStatus {
	if f.statuses == nil {
		f.statuses = make(map[string]*types.PipelineStatus)
	}
	st, ok := f.statuses[courseNumber]
	if !ok {
		st = &types.PipelineStatus{CourseNumber: courseNumber, Status: types.PipelineStatusPending, CurrentStep: 1}
		f.statuses[courseNumber] = st
	}
	return st
}

func (f *bulkPipeline) Initialize(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.get(courseNumber)
	return &types.PipelineStatus{CourseNumber: st.CourseNumber, Status: st.Status, CurrentStep: st.CurrentStep}, nil
}

func (f *bulkPipeline) Get(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	return f.Initialize(ctx, courseNumber)
}

func (f *bulkPipeline) Start(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.get(courseNumber)
	st.Status = types.PipelineStatusRunning
	return st, nil
}

func (f *bulkPipeline) AdvanceStep(ctx context.Context, courseNumber string, step int, details datatypes.JSON) (*types.PipelineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.get(courseNumber)
	st.CurrentStep = step
	return st, nil
}

func (f *bulkPipeline) Complete(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.get(courseNumber)
	st.Status = types.PipelineStatusComplete
	return st, nil
}

func (f *bulkPipeline) Fail(ctx context.Context, courseNumber string, errorMessage string) (*types.PipelineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.get(courseNumber)
	st.Status = types.PipelineStatusError
	st.ErrorMessage = &errorMessage
	return st, nil
}

func (f *bulkPipeline) Retry(ctx context.Context, courseNumber string) (*types.PipelineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.get(courseNumber)
	st.Status = types.PipelineStatusPending
	st.ErrorMessage = nil
	return st, nil
}

func TestEnrichAllContinuesPastCourseFailure(t *testing.T) {
	ctx := context.Background()
	sources := &fakeSourceRepo{numbers: []string{"US-1001", "US-1002", "US-1003"}}
	runs := &fakeRunRepo{failCreates: 1}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	svc := NewEnrichmentService(log, &fakeEnrichClient{}, &bulkPipeline{}, &fakePromotionService{}, runs, sources, "initial_course_upload", nil, nil)

	out, err := svc.EnrichAll(ctx)
	if err != nil {
		t.Fatalf("EnrichAll: %v", err)
	}
	if out.Failed != 1 {
		t.Fatalf("failed = %d, want 1", out.Failed)
	}
	if out.Dispatched != 2 {
		t.Fatalf("dispatched = %d, want 2", out.Dispatched)
	}
	if out.Skipped != 0 {
		t.Fatalf("skipped = %d, want 0", out.Skipped)
	}

	runs.mu.Lock()
	creates := runs.creates
	runs.mu.Unlock()
	if creates != 3 {
		t.Fatalf("run creates = %d, want one attempt per course", creates)
	}
}

func TestEnrichCourseRejectsUnknownTrigger(t *testing.T) {
	ctx := context.Background()
	svc := newTestEnrichment(t, &fakeEnrichClient{}, &fakePipelineService{}, &fakePromotionService{}, &fakeRunRepo{})

	_, err := svc.EnrichCourse(ctx, "US-1001", "cron")
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
