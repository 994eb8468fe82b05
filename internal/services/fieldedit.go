package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// FieldEditService applies operator edits to primary_data. A manual edit
// stamps the field's _source as manual, which pins it against automated
// promotion until the override is cleared. Tee and par sheets are
// replaced wholesale rather than patched row by row.
type FieldEditService interface {
	SetFieldManually(ctx context.Context, courseNumber, field string, value any) (*types.PrimaryData, error)
	ClearManualOverride(ctx context.Context, courseNumber, field string) (*types.PrimaryData, error)
	ReplaceTees(ctx context.Context, courseNumber string, tees []*types.CourseTee) error
	ReplacePars(ctx context.Context, courseNumber string, pars []*types.CoursePar) error
}

type fieldEditService struct {
	db       *gorm.DB
	log      *logger.Logger
	registry *fieldmap.Registry
	primary  repos.PrimaryDataRepo
	tees     repos.CourseTeeRepo
	pars     repos.CourseParRepo
}

func NewFieldEditService(
	db *gorm.DB,
	baseLog *logger.Logger,
	registry *fieldmap.Registry,
	primary repos.PrimaryDataRepo,
	tees repos.CourseTeeRepo,
	pars repos.CourseParRepo,
) FieldEditService {
	return &fieldEditService{
		db:       db,
		log:      baseLog.With("service", "FieldEditService"),
		registry: registry,
		primary:  primary,
		tees:     tees,
		pars:     pars,
	}
}

func (s *fieldEditService) SetFieldManually(ctx context.Context, courseNumber, field string, value any) (*types.PrimaryData, error) {
	if !s.registry.IsCanonical(field) {
		return nil, fmt.Errorf("%w: unknown field %q", pkgerrors.ErrInvalidArgument, field)
	}

	val, err := fieldmap.Convert(s.registry.TypeOf(field), value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrValidation, err)
	}
	if err := fieldmap.Validate(field, val); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	fields := map[string]any{
		field:                 val,
		field + "_source":     fieldmap.SourceManual,
		field + "_updated_at": now,
	}
	if err := s.primary.UpdateFields(ctx, nil, courseNumber, fields); err != nil {
		return nil, err
	}
	s.log.Info("Field manually set", "course_number", courseNumber, "field", field)
	return s.primary.GetByCourseNumber(ctx, nil, courseNumber)
}

// ClearManualOverride drops the manual marker but keeps the value; the
// field becomes eligible again on the next promotion run.
func (s *fieldEditService) ClearManualOverride(ctx context.Context, courseNumber, field string) (*types.PrimaryData, error) {
	if !s.registry.IsCanonical(field) {
		return nil, fmt.Errorf("%w: unknown field %q", pkgerrors.ErrInvalidArgument, field)
	}

	row, err := s.primary.GetRow(ctx, nil, courseNumber)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, pkgerrors.ErrNotFound
	}
	if src, _ := row[field+"_source"].(string); src != fieldmap.SourceManual {
		return nil, fmt.Errorf("%w: field %q is not manually overridden", pkgerrors.ErrInvalidArgument, field)
	}

	fields := map[string]any{
		field + "_source":     nil,
		field + "_updated_at": time.Now().UTC(),
	}
	if err := s.primary.UpdateFields(ctx, nil, courseNumber, fields); err != nil {
		return nil, err
	}
	s.log.Info("Manual override cleared", "course_number", courseNumber, "field", field)
	return s.primary.GetByCourseNumber(ctx, nil, courseNumber)
}

func (s *fieldEditService) ReplaceTees(ctx context.Context, courseNumber string, tees []*types.CourseTee) error {
	if courseNumber == "" {
		return fmt.Errorf("%w: missing course number", pkgerrors.ErrInvalidArgument)
	}
	for _, tee := range tees {
		if tee.CourseNumber != courseNumber {
			return fmt.Errorf("%w: tee row for %q in replace of %q", pkgerrors.ErrInvalidArgument, tee.CourseNumber, courseNumber)
		}
		if tee.HoleNumber < 1 || tee.HoleNumber > 18 {
			return fmt.Errorf("%w: hole number %d out of range", pkgerrors.ErrValidation, tee.HoleNumber)
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.tees.ReplaceForCourse(ctx, tx, courseNumber, tees)
	})
}

func (s *fieldEditService) ReplacePars(ctx context.Context, courseNumber string, pars []*types.CoursePar) error {
	if courseNumber == "" {
		return fmt.Errorf("%w: missing course number", pkgerrors.ErrInvalidArgument)
	}
	for _, par := range pars {
		if par.CourseNumber != courseNumber {
			return fmt.Errorf("%w: par row for %q in replace of %q", pkgerrors.ErrInvalidArgument, par.CourseNumber, courseNumber)
		}
		if par.HoleNumber < 1 || par.HoleNumber > 18 {
			return fmt.Errorf("%w: hole number %d out of range", pkgerrors.ErrValidation, par.HoleNumber)
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.pars.ReplaceForCourse(ctx, tx, courseNumber, pars)
	})
}
