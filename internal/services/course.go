package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// CourseDetail is the console's per-course view: the canonical row with
// provenance columns, every source table's row, the pipeline status, the
// latest enrichment run, and the structured tee/par sheets.
type CourseDetail struct {
	CourseNumber   string                    `json:"course_number"`
	Primary        map[string]any            `json:"primary"`
	Sources        map[string]map[string]any `json:"sources"`
	PipelineStatus *types.PipelineStatus     `json:"pipeline_status,omitempty"`
	LatestRun      *types.EnrichmentRun      `json:"latest_run,omitempty"`
	Tees           []*types.CourseTee        `json:"tees"`
	Pars           []*types.CoursePar        `json:"pars"`
}

type CourseList struct {
	Courses []*types.PrimaryData `json:"courses"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

type CourseService interface {
	ListCourses(ctx context.Context, query string, limit, offset int) (*CourseList, error)
	GetCourse(ctx context.Context, courseNumber string) (*CourseDetail, error)
	GetSourceRow(ctx context.Context, courseNumber, table string) (map[string]any, error)
}

type courseService struct {
	log      *logger.Logger
	registry *fieldmap.Registry
	primary  repos.PrimaryDataRepo
	sources  repos.SourceRepo
	statuses repos.PipelineStatusRepo
	runs     repos.EnrichmentRunRepo
	tees     repos.CourseTeeRepo
	pars     repos.CourseParRepo
}

func NewCourseService(
	baseLog *logger.Logger,
	registry *fieldmap.Registry,
	primary repos.PrimaryDataRepo,
	sources repos.SourceRepo,
	statuses repos.PipelineStatusRepo,
	runs repos.EnrichmentRunRepo,
	tees repos.CourseTeeRepo,
	pars repos.CourseParRepo,
) CourseService {
	return &courseService{
		log:      baseLog.With("service", "CourseService"),
		registry: registry,
		primary:  primary,
		sources:  sources,
		statuses: statuses,
		runs:     runs,
		tees:     tees,
		pars:     pars,
	}
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func (s *courseService) ListCourses(ctx context.Context, query string, limit, offset int) (*CourseList, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	courses, total, err := s.primary.Search(ctx, nil, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return &CourseList{
		Courses: courses,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseNumber string) (*CourseDetail, error) {
	if courseNumber == "" {
		return nil, fmt.Errorf("%w: missing course number", pkgerrors.ErrInvalidArgument)
	}

	detail := &CourseDetail{
		CourseNumber: courseNumber,
		Sources:      make(map[string]map[string]any),
		Tees:         []*types.CourseTee{},
		Pars:         []*types.CoursePar{},
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		row, err := s.primary.GetRow(gctx, nil, courseNumber)
		if err != nil {
			return fmt.Errorf("read primary_data: %w", err)
		}
		detail.Primary = row
		return nil
	})
	for _, table := range s.registry.PriorityOrder() {
		g.Go(func() error {
			row, err := s.sources.GetRow(gctx, nil, table, courseNumber)
			if err != nil {
				return fmt.Errorf("read %s: %w", table, err)
			}
			if row != nil {
				mu.Lock()
				detail.Sources[table] = row
				mu.Unlock()
			}
			return nil
		})
	}
	g.Go(func() error {
		status, err := s.statuses.GetByCourseNumber(gctx, nil, courseNumber)
		if err != nil {
			return fmt.Errorf("read pipeline status: %w", err)
		}
		detail.PipelineStatus = status
		return nil
	})
	g.Go(func() error {
		run, err := s.runs.GetLatestByCourseNumber(gctx, nil, courseNumber)
		if err != nil {
			return fmt.Errorf("read latest run: %w", err)
		}
		detail.LatestRun = run
		return nil
	})
	g.Go(func() error {
		tees, err := s.tees.GetByCourseNumber(gctx, nil, courseNumber)
		if err != nil {
			return fmt.Errorf("read tees: %w", err)
		}
		if tees != nil {
			detail.Tees = tees
		}
		return nil
	})
	g.Go(func() error {
		pars, err := s.pars.GetByCourseNumber(gctx, nil, courseNumber)
		if err != nil {
			return fmt.Errorf("read pars: %w", err)
		}
		if pars != nil {
			detail.Pars = pars
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if detail.Primary == nil && len(detail.Sources) == 0 {
		return nil, fmt.Errorf("%w: course %s", pkgerrors.ErrNotFound, courseNumber)
	}
	return detail, nil
}

func (s *courseService) GetSourceRow(ctx context.Context, courseNumber, table string) (map[string]any, error) {
	if !s.registry.KnownTable(table) {
		return nil, fmt.Errorf("%w: unknown source table %q", pkgerrors.ErrInvalidArgument, table)
	}
	row, err := s.sources.GetRow(ctx, nil, table, courseNumber)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: no %s row for %s", pkgerrors.ErrNotFound, table, courseNumber)
	}
	return row, nil
}
